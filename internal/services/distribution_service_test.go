package services

import (
	"context"
	"testing"

	"aid-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeCourier(id int) models.Courier {
	return models.Courier{
		ID:                     id,
		Name:                   "Courier",
		Status:                 models.CourierActive,
		IsHumanitarianApproved: true,
		ServiceAreas:           []string{"Gaza", "Khan Younis"},
	}
}

func verifiedBeneficiary(id int, governorate string) models.Beneficiary {
	return models.Beneficiary{
		ID:             id,
		Name:           "Beneficiary",
		Governorate:    governorate,
		City:           "City",
		District:       "District",
		IdentityStatus: models.IdentityVerified,
	}
}

type distFixture struct {
	svc           *DistributionService
	requests      *fakeRequestStore
	tasks         *fakeTaskStore
	beneficiaries *fakeBeneficiaryStore
	templates     *fakeTemplateStore
	couriers      *fakeCourierStore
	events        *recordingPublisher
}

func newDistFixture(t *testing.T, beneficiaries []models.Beneficiary, couriers []models.Courier) *distFixture {
	t.Helper()
	f := &distFixture{
		requests: newFakeRequestStore(),
		tasks:    newFakeTaskStore(),
		beneficiaries: newFakeBeneficiaryStore(beneficiaries...),
		templates: newFakeTemplateStore(models.PackageTemplate{
			ID: 1, Name: "Food Parcel", Category: models.CategoryFood,
			EstimatedCost: 25, IsActive: true,
		}),
		couriers: newFakeCourierStore(couriers...),
		events:   &recordingPublisher{},
	}
	f.svc = NewDistributionService(
		f.requests, f.tasks, f.beneficiaries, f.templates, f.couriers, noopAlerts{}, f.events)
	return f
}

func individualRequest(quantity int, beneficiaryIDs ...int) *models.CreateDistributionRequest {
	return &models.CreateDistributionRequest{
		RequesterID:       1,
		RequesterType:     models.RequesterOrganization,
		RequesterName:     "Relief Org",
		Type:              models.RequestIndividual,
		Priority:          models.PriorityNormal,
		PackageTemplateID: 1,
		RequestedQuantity: quantity,
		BeneficiaryIDs:    beneficiaryIDs,
	}
}

func TestCreateRequestValidation(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreateDistributionRequest
	}{
		{"zero quantity", individualRequest(0, 1)},
		{"negative quantity", individualRequest(-3, 1)},
		{"unknown type", &models.CreateDistributionRequest{
			RequesterType: models.RequesterAdmin, RequesterName: "x",
			Type: "wholesale", PackageTemplateID: 1, RequestedQuantity: 1,
		}},
		{"no beneficiaries", individualRequest(2)},
		{"unresolved beneficiary", individualRequest(2, 1, 99)},
		{"bulk without area", &models.CreateDistributionRequest{
			RequesterType: models.RequesterAdmin, RequesterName: "x",
			Type: models.RequestBulk, PackageTemplateID: 1, RequestedQuantity: 5,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateRequestUnknownTemplate(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, nil)
	req := individualRequest(1, 1)
	req.PackageTemplateID = 42

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRequestInactiveTemplate(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, nil)
	f.templates.templates[1].IsActive = false

	_, err := f.svc.Create(context.Background(), individualRequest(1, 1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequestEstimates(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{
		verifiedBeneficiary(1, "Gaza"), verifiedBeneficiary(2, "Gaza"), verifiedBeneficiary(3, "Gaza"),
	}, nil)

	req := individualRequest(3, 3, 1, 2)
	req.Priority = models.PriorityUrgent
	created, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, created.Status)
	assert.Equal(t, 75.0, created.EstimatedCost)
	assert.Equal(t, "6-12 hours", created.EstimatedDelivery)
	// beneficiary ids are stored deduplicated ascending
	assert.Equal(t, []int{1, 2, 3}, created.BeneficiaryIDs)
	assert.Equal(t, 1, f.templates.usage[1])
	assert.Contains(t, f.events.events, "request_created")
}

func TestCreateRequestDeliveryWindows(t *testing.T) {
	windows := map[string]string{
		models.PriorityUrgent: "6-12 hours",
		models.PriorityHigh:   "1-2 days",
		models.PriorityNormal: "2-3 days",
		models.PriorityLow:    "3-5 days",
	}
	for priority, window := range windows {
		f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, nil)
		req := individualRequest(1, 1)
		req.Priority = priority
		created, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, window, created.EstimatedDelivery, priority)
	}
}

func TestApproveGeneratesTasksAscending(t *testing.T) {
	beneficiaries := []models.Beneficiary{
		verifiedBeneficiary(5, "Gaza"), verifiedBeneficiary(2, "Gaza"),
		verifiedBeneficiary(9, "Gaza"), verifiedBeneficiary(7, "Gaza"),
	}
	f := newDistFixture(t, beneficiaries, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(4, 5, 2, 9, 7))
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{
		ApprovedQuantity: 3, CourierID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestApproved, approved.Status)
	require.NotNil(t, approved.ApprovedQuantity)
	assert.Equal(t, 3, *approved.ApprovedQuantity)

	tasks, err := f.svc.ListTasksByRequest(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	// approvedQuantity caps the batch over ascending beneficiary ids
	assert.Equal(t, 2, tasks[0].BeneficiaryID)
	assert.Equal(t, 5, tasks[1].BeneficiaryID)
	assert.Equal(t, 7, tasks[2].BeneficiaryID)
	for _, task := range tasks {
		assert.Equal(t, models.TaskAssigned, task.Status)
		assert.Equal(t, 1, task.CourierID)
	}

	courier, _ := f.couriers.Get(ctx, 1)
	assert.Equal(t, models.CourierBusy, courier.Status)
}

func TestApproveBulkTargetsVerifiedInArea(t *testing.T) {
	unverified := verifiedBeneficiary(3, "Gaza")
	unverified.IdentityStatus = models.IdentityPending
	f := newDistFixture(t, []models.Beneficiary{
		verifiedBeneficiary(1, "Gaza"),
		verifiedBeneficiary(2, "Rafah"),
		unverified,
		verifiedBeneficiary(4, "Gaza"),
	}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, &models.CreateDistributionRequest{
		RequesterID: 1, RequesterType: models.RequesterAdmin, RequesterName: "Ops",
		Type: models.RequestBulk, Priority: models.PriorityHigh,
		PackageTemplateID: 1, RequestedQuantity: 10, TargetGovernorate: "Gaza",
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{
		ApprovedQuantity: 10, CourierID: 1,
	})
	require.NoError(t, err)

	tasks, _ := f.svc.ListTasksByRequest(ctx, created.ID)
	// only verified beneficiaries inside the target governorate
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].BeneficiaryID)
	assert.Equal(t, 4, tasks[1].BeneficiaryID)

	// the stored quantity clamps to what was actually generated
	require.NotNil(t, approved.ApprovedQuantity)
	assert.Equal(t, len(tasks), *approved.ApprovedQuantity)
}

func TestApprovedQuantityMatchesGeneratedTasks(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{
		verifiedBeneficiary(1, "Gaza"), verifiedBeneficiary(2, "Gaza"),
	}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(5, 1, 2))
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{
		ApprovedQuantity: 4, CourierID: 1,
	})
	require.NoError(t, err)

	tasks, err := f.svc.ListTasksByRequest(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedQuantity)
	assert.Equal(t, len(tasks), *approved.ApprovedQuantity)
	assert.Equal(t, 2, *approved.ApprovedQuantity, "only two beneficiaries resolve")
}

func TestApprovePreconditions(t *testing.T) {
	offline := activeCourier(2)
	offline.Status = models.CourierOffline
	unapproved := activeCourier(3)
	unapproved.IsHumanitarianApproved = false
	outOfArea := activeCourier(4)
	outOfArea.ServiceAreas = []string{"Rafah"}

	f := newDistFixture(t,
		[]models.Beneficiary{verifiedBeneficiary(1, "Gaza")},
		[]models.Courier{activeCourier(1), offline, unapproved, outOfArea})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(5, 1))
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 0, CourierID: 1})
	assert.ErrorIs(t, err, ErrValidation, "zero approved quantity")

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 6, CourierID: 1})
	assert.ErrorIs(t, err, ErrValidation, "over requested quantity")

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 99})
	assert.ErrorIs(t, err, ErrNotFound, "unknown courier")

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 2})
	assert.ErrorIs(t, err, ErrValidation, "offline courier")

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 3})
	assert.ErrorIs(t, err, ErrValidation, "not humanitarian approved")

	bulk, err := f.svc.Create(ctx, &models.CreateDistributionRequest{
		RequesterID: 1, RequesterType: models.RequesterAdmin, RequesterName: "Ops",
		Type: models.RequestBulk, PackageTemplateID: 1, RequestedQuantity: 2,
		TargetGovernorate: "Gaza",
	})
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, bulk.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 4})
	assert.ErrorIs(t, err, ErrValidation, "courier outside target area")

	// a district-only target still gates courier coverage
	districtOnly, err := f.svc.Create(ctx, &models.CreateDistributionRequest{
		RequesterID: 1, RequesterType: models.RequesterAdmin, RequesterName: "Ops",
		Type: models.RequestBulk, PackageTemplateID: 1, RequestedQuantity: 2,
		TargetDistrict: "Khan Younis",
	})
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, districtOnly.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 4})
	assert.ErrorIs(t, err, ErrValidation, "courier outside target district")
}

func TestApproveOnlyPending(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(1, 1))
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 1})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 1})
	assert.ErrorIs(t, err, ErrStateConflict)

	_, err = f.svc.Reject(ctx, created.ID, 10, &models.RejectDistributionRequest{RejectionReason: "late"})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRejectRequest(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, nil)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(1, 1))
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, created.ID, 10, &models.RejectDistributionRequest{})
	assert.ErrorIs(t, err, ErrValidation, "empty reason")

	rejected, err := f.svc.Reject(ctx, created.ID, 10, &models.RejectDistributionRequest{RejectionReason: "duplicate request"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "duplicate request", *rejected.RejectionReason)

	// rejected is terminal
	_, err = f.svc.Reject(ctx, created.ID, 10, &models.RejectDistributionRequest{RejectionReason: "again"})
	assert.ErrorIs(t, err, ErrStateConflict)

	_, err = f.svc.Reject(ctx, 404, 10, &models.RejectDistributionRequest{RejectionReason: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskProgression(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{
		verifiedBeneficiary(1, "Gaza"), verifiedBeneficiary(2, "Gaza"),
	}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(2, 1, 2))
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 2, CourierID: 1})
	require.NoError(t, err)

	tasks, _ := f.svc.ListTasksByRequest(ctx, created.ID)
	require.Len(t, tasks, 2)

	// first task moving puts the request in progress
	_, err = f.svc.UpdateTaskStatus(ctx, tasks[0].ID, &models.UpdateTaskStatusRequest{Status: models.TaskInProgress})
	require.NoError(t, err)
	request, _ := f.svc.Get(ctx, created.ID)
	assert.Equal(t, models.RequestInProgress, request.Status)

	// delivery bumps beneficiary and courier counters
	_, err = f.svc.UpdateTaskStatus(ctx, tasks[0].ID, &models.UpdateTaskStatusRequest{Status: models.TaskDelivered})
	require.NoError(t, err)
	assert.Equal(t, 1, f.beneficiaries.deliveries[1])
	assert.Equal(t, 1, f.couriers.completed[1])

	request, _ = f.svc.Get(ctx, created.ID)
	assert.Equal(t, models.RequestInProgress, request.Status, "not all tasks delivered yet")

	// last delivery completes the request and frees the courier
	_, err = f.svc.UpdateTaskStatus(ctx, tasks[1].ID, &models.UpdateTaskStatusRequest{Status: models.TaskDelivered})
	require.NoError(t, err)
	request, _ = f.svc.Get(ctx, created.ID)
	assert.Equal(t, models.RequestCompleted, request.Status)
	courier, _ := f.couriers.Get(ctx, 1)
	assert.Equal(t, models.CourierActive, courier.Status)
}

func TestTaskTransitionGuards(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, individualRequest(1, 1))
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, created.ID, 10, &models.ApproveDistributionRequest{ApprovedQuantity: 1, CourierID: 1})
	require.NoError(t, err)

	tasks, _ := f.svc.ListTasksByRequest(ctx, created.ID)
	taskID := tasks[0].ID

	_, err = f.svc.UpdateTaskStatus(ctx, taskID, &models.UpdateTaskStatusRequest{Status: "teleported"})
	assert.ErrorIs(t, err, ErrStateConflict)

	_, err = f.svc.UpdateTaskStatus(ctx, taskID, &models.UpdateTaskStatusRequest{Status: models.TaskFailed})
	require.NoError(t, err)

	// failed is terminal and triggers nothing
	_, err = f.svc.UpdateTaskStatus(ctx, taskID, &models.UpdateTaskStatusRequest{Status: models.TaskDelivered})
	assert.ErrorIs(t, err, ErrStateConflict)
	assert.Empty(t, f.beneficiaries.deliveries)
	request, _ := f.svc.Get(ctx, created.ID)
	assert.Equal(t, models.RequestApproved, request.Status)
}

func TestRequestStats(t *testing.T) {
	f := newDistFixture(t, []models.Beneficiary{verifiedBeneficiary(1, "Gaza")}, []models.Courier{activeCourier(1)})
	ctx := context.Background()

	first, err := f.svc.Create(ctx, individualRequest(1, 1))
	require.NoError(t, err)
	second := individualRequest(1, 1)
	second.Priority = models.PriorityUrgent
	_, err = f.svc.Create(ctx, second)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, first.ID, 10, &models.RejectDistributionRequest{RejectionReason: "no stock"})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.RequestPending])
	assert.Equal(t, 1, stats.ByStatus[models.RequestRejected])
	assert.Equal(t, 1, stats.ByPriority[models.PriorityNormal])
	assert.Equal(t, 1, stats.ByPriority[models.PriorityUrgent])
}
