package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"aid-backend/internal/metrics"
	"aid-backend/internal/models"
)

// Estimated delivery windows by priority. Fixed table, not a computation.
var deliveryTimeByPriority = map[string]string{
	models.PriorityUrgent: "6-12 hours",
	models.PriorityHigh:   "1-2 days",
	models.PriorityNormal: "2-3 days",
	models.PriorityLow:    "3-5 days",
}

type requestStore interface {
	Create(ctx context.Context, req *models.DistributionRequest) error
	Get(ctx context.Context, id int) (*models.DistributionRequest, error)
	List(ctx context.Context, f models.RequestFilter) ([]models.DistributionRequest, error)
	Approve(ctx context.Context, id int, approvedQuantity, courierID, approvedBy int, adminNotes string) (bool, error)
	Reject(ctx context.Context, id int, reason string, rejectedBy int) (bool, error)
	SetStatus(ctx context.Context, id int, status string) error
	Stats(ctx context.Context) (*models.RequestStats, error)
}

type taskStore interface {
	CreateBatch(ctx context.Context, tasks []models.Task) ([]int, error)
	Get(ctx context.Context, id int) (*models.Task, error)
	ListByRequest(ctx context.Context, requestID int) ([]models.Task, error)
	ListByCourier(ctx context.Context, courierID int) ([]models.Task, error)
	SetStatus(ctx context.Context, id int, status string) error
	StatusCounts(ctx context.Context, requestID int) (map[string]int, error)
}

type distBeneficiaryStore interface {
	CountByIDs(ctx context.Context, ids []int) (int, error)
	ListByArea(ctx context.Context, f models.AreaFilter) ([]models.Beneficiary, error)
	RecordDelivery(ctx context.Context, id int) error
}

type distTemplateStore interface {
	Get(ctx context.Context, id int) (*models.PackageTemplate, error)
	IncrementUsage(ctx context.Context, id int) error
}

type distCourierStore interface {
	Get(ctx context.Context, id int) (*models.Courier, error)
	SetStatus(ctx context.Context, id int, status string) error
	RecordCompletedTask(ctx context.Context, id int) error
}

type alertDeriver interface {
	Derive(ctx context.Context) error
}

// DistributionService owns the request lifecycle: submission, disposition
// and the delivery-task progression that follows an approval.
type DistributionService struct {
	requests      requestStore
	tasks         taskStore
	beneficiaries distBeneficiaryStore
	templates     distTemplateStore
	couriers      distCourierStore
	alerts        alertDeriver
	events        EventPublisher
}

func NewDistributionService(
	requests requestStore,
	tasks taskStore,
	beneficiaries distBeneficiaryStore,
	templates distTemplateStore,
	couriers distCourierStore,
	alerts alertDeriver,
	events EventPublisher,
) *DistributionService {
	return &DistributionService{
		requests:      requests,
		tasks:         tasks,
		beneficiaries: beneficiaries,
		templates:     templates,
		couriers:      couriers,
		alerts:        alerts,
		events:        events,
	}
}

func validRequestType(t string) bool {
	switch t {
	case models.RequestIndividual, models.RequestBulk, models.RequestFamilyBulk:
		return true
	}
	return false
}

func validRequesterType(t string) bool {
	switch t {
	case models.RequesterOrganization, models.RequesterFamily, models.RequesterAdmin:
		return true
	}
	return false
}

// dedupSorted returns the distinct ids in ascending order
func dedupSorted(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// Create validates and submits a new distribution request in pending status.
// Cost and delivery window estimates are fixed at submission time; the
// referenced template's usage counter is bumped on success.
func (s *DistributionService) Create(ctx context.Context, req *models.CreateDistributionRequest) (*models.DistributionRequest, error) {
	if req.RequestedQuantity <= 0 {
		return nil, fmt.Errorf("%w: requested quantity must be positive", ErrValidation)
	}
	if !validRequestType(req.Type) {
		return nil, fmt.Errorf("%w: type must be individual, bulk or family_bulk", ErrValidation)
	}
	if !validRequesterType(req.RequesterType) {
		return nil, fmt.Errorf("%w: requester type must be organization, family or admin", ErrValidation)
	}
	if strings.TrimSpace(req.RequesterName) == "" {
		return nil, fmt.Errorf("%w: requester name is required", ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	deliveryTime, ok := deliveryTimeByPriority[priority]
	if !ok {
		return nil, fmt.Errorf("%w: priority must be low, normal, high or urgent", ErrValidation)
	}

	template, err := s.templates.Get(ctx, req.PackageTemplateID)
	if err != nil {
		return nil, notFoundOr(err, "package template")
	}
	if !template.IsActive {
		return nil, fmt.Errorf("%w: package template %d is not active", ErrValidation, template.ID)
	}

	request := &models.DistributionRequest{
		RequesterID:       req.RequesterID,
		RequesterType:     req.RequesterType,
		RequesterName:     req.RequesterName,
		Type:              req.Type,
		Priority:          priority,
		PackageTemplateID: req.PackageTemplateID,
		RequestedQuantity: req.RequestedQuantity,
		EstimatedCost:     float64(req.RequestedQuantity) * template.EstimatedCost,
		EstimatedDelivery: deliveryTime,
	}
	if req.Notes != "" {
		request.AdminNotes = &req.Notes
	}

	if req.Type == models.RequestBulk {
		if req.TargetGovernorate == "" && req.TargetCity == "" && req.TargetDistrict == "" {
			return nil, fmt.Errorf("%w: bulk requests need a target area", ErrValidation)
		}
		if req.TargetGovernorate != "" {
			request.TargetGovernorate = &req.TargetGovernorate
		}
		if req.TargetCity != "" {
			request.TargetCity = &req.TargetCity
		}
		if req.TargetDistrict != "" {
			request.TargetDistrict = &req.TargetDistrict
		}
	} else {
		ids := dedupSorted(req.BeneficiaryIDs)
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: at least one beneficiary is required", ErrValidation)
		}
		count, err := s.beneficiaries.CountByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if count != len(ids) {
			return nil, fmt.Errorf("%w: %d of %d beneficiaries do not exist", ErrValidation, len(ids)-count, len(ids))
		}
		request.BeneficiaryIDs = ids
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	if err := s.templates.IncrementUsage(ctx, template.ID); err != nil {
		log.Printf("[DistributionService] usage count bump failed for template %d: %v", template.ID, err)
	}

	metrics.RequestsCreated.Inc()
	log.Printf("[DistributionService] request %d created (%s, qty %d)", request.ID, request.Type, request.RequestedQuantity)

	if err := s.alerts.Derive(ctx); err != nil {
		log.Printf("[DistributionService] alert derivation failed: %v", err)
	}
	publish(s.events, "request_created", request)
	return request, nil
}

// Approve dispositions a pending request, generating one delivery task per
// approved package over the deterministic beneficiary order (ascending id)
// and putting the assigned courier to work.
func (s *DistributionService) Approve(ctx context.Context, id, approvedBy int, req *models.ApproveDistributionRequest) (*models.DistributionRequest, error) {
	request, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "distribution request")
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: request %d is %s, only pending requests can be approved", ErrStateConflict, id, request.Status)
	}
	if req.ApprovedQuantity <= 0 || req.ApprovedQuantity > request.RequestedQuantity {
		return nil, fmt.Errorf("%w: approved quantity must be between 1 and %d", ErrValidation, request.RequestedQuantity)
	}

	courier, err := s.couriers.Get(ctx, req.CourierID)
	if err != nil {
		return nil, notFoundOr(err, "courier")
	}
	if !courier.IsHumanitarianApproved {
		return nil, fmt.Errorf("%w: courier %d is not approved for humanitarian deliveries", ErrValidation, courier.ID)
	}
	if courier.Status != models.CourierActive {
		return nil, fmt.Errorf("%w: courier %d is %s, not active", ErrValidation, courier.ID, courier.Status)
	}
	if request.Type == models.RequestBulk && !courierCoversTarget(courier, request) {
		return nil, fmt.Errorf("%w: courier %d does not serve the target area", ErrValidation, courier.ID)
	}

	targetIDs, err := s.resolveTaskTargets(ctx, request, req.ApprovedQuantity)
	if err != nil {
		return nil, err
	}

	// The stored approved quantity is the number of tasks actually generated:
	// when fewer beneficiaries resolve than the admin approved, the quantity
	// clamps down so the two never disagree.
	approvedQuantity := len(targetIDs)

	ok, err := s.requests.Approve(ctx, id, approvedQuantity, req.CourierID, approvedBy, req.AdminNotes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: request %d was dispositioned concurrently", ErrStateConflict, id)
	}

	taskBatch := make([]models.Task, 0, len(targetIDs))
	for _, beneficiaryID := range targetIDs {
		taskBatch = append(taskBatch, models.Task{
			RequestID:         id,
			BeneficiaryID:     beneficiaryID,
			PackageTemplateID: request.PackageTemplateID,
			CourierID:         req.CourierID,
		})
	}
	taskIDs, err := s.tasks.CreateBatch(ctx, taskBatch)
	if err != nil {
		return nil, fmt.Errorf("request %d approved but task generation failed: %w", id, err)
	}

	if err := s.couriers.SetStatus(ctx, req.CourierID, models.CourierBusy); err != nil {
		log.Printf("[DistributionService] courier %d status update failed: %v", req.CourierID, err)
	}

	metrics.RequestsApproved.Inc()
	metrics.TasksGenerated.Add(float64(len(taskIDs)))
	log.Printf("[DistributionService] request %d approved: %d tasks for courier %d", id, len(taskIDs), req.CourierID)

	if err := s.alerts.Derive(ctx); err != nil {
		log.Printf("[DistributionService] alert derivation failed: %v", err)
	}

	approved, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.events, "request_approved", approved)
	return approved, nil
}

// resolveTaskTargets returns the beneficiary ids to generate tasks for, in
// ascending id order, capped at the approved quantity. Bulk requests target
// identity-verified beneficiaries in the requested area.
func (s *DistributionService) resolveTaskTargets(ctx context.Context, request *models.DistributionRequest, approvedQuantity int) ([]int, error) {
	var ids []int
	if request.Type == models.RequestBulk {
		filter := models.AreaFilter{}
		if request.TargetGovernorate != nil {
			filter.Governorate = *request.TargetGovernorate
		}
		if request.TargetCity != nil {
			filter.City = *request.TargetCity
		}
		if request.TargetDistrict != nil {
			filter.District = *request.TargetDistrict
		}
		beneficiaries, err := s.beneficiaries.ListByArea(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, b := range beneficiaries {
			if b.IdentityStatus == models.IdentityVerified {
				ids = append(ids, b.ID)
			}
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: no verified beneficiaries in the target area", ErrValidation)
		}
	} else {
		ids = request.BeneficiaryIDs
	}

	ids = dedupSorted(ids)
	if len(ids) > approvedQuantity {
		ids = ids[:approvedQuantity]
	}
	return ids, nil
}

// courierCoversTarget checks the courier's service areas against every target
// field the bulk request sets, so a city- or district-only target still gates
// courier assignment.
func courierCoversTarget(c *models.Courier, request *models.DistributionRequest) bool {
	targets := make([]string, 0, 3)
	for _, t := range []*string{request.TargetGovernorate, request.TargetCity, request.TargetDistrict} {
		if t != nil {
			targets = append(targets, *t)
		}
	}
	if len(targets) == 0 {
		return true
	}
	for _, target := range targets {
		for _, a := range c.ServiceAreas {
			if strings.EqualFold(a, target) {
				return true
			}
		}
	}
	return false
}

// Reject dispositions a pending request as rejected. Terminal.
func (s *DistributionService) Reject(ctx context.Context, id, rejectedBy int, req *models.RejectDistributionRequest) (*models.DistributionRequest, error) {
	if strings.TrimSpace(req.RejectionReason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	request, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "distribution request")
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: request %d is %s, only pending requests can be rejected", ErrStateConflict, id, request.Status)
	}

	ok, err := s.requests.Reject(ctx, id, req.RejectionReason, rejectedBy)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: request %d was dispositioned concurrently", ErrStateConflict, id)
	}

	metrics.RequestsRejected.Inc()
	log.Printf("[DistributionService] request %d rejected", id)

	if err := s.alerts.Derive(ctx); err != nil {
		log.Printf("[DistributionService] alert derivation failed: %v", err)
	}

	rejected, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.events, "request_rejected", rejected)
	return rejected, nil
}

// Get retrieves a request with its generated task ids
func (s *DistributionService) Get(ctx context.Context, id int) (*models.DistributionRequest, error) {
	request, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "distribution request")
	}
	return request, nil
}

// List retrieves requests matching the combined filters
func (s *DistributionService) List(ctx context.Context, f models.RequestFilter) ([]models.DistributionRequest, error) {
	return s.requests.List(ctx, f)
}

// Stats folds status and priority counts over the current table state
func (s *DistributionService) Stats(ctx context.Context) (*models.RequestStats, error) {
	return s.requests.Stats(ctx)
}

// ListTasksByRequest retrieves the tasks generated for a request
func (s *DistributionService) ListTasksByRequest(ctx context.Context, requestID int) ([]models.Task, error) {
	return s.tasks.ListByRequest(ctx, requestID)
}

// ListTasksByCourier retrieves a courier's assigned tasks
func (s *DistributionService) ListTasksByCourier(ctx context.Context, courierID int) ([]models.Task, error) {
	return s.tasks.ListByCourier(ctx, courierID)
}

// taskTransitions lists the allowed next statuses per current status.
// delivered and failed are terminal; a failed task triggers no reassignment.
var taskTransitions = map[string][]string{
	models.TaskAssigned:   {models.TaskInProgress, models.TaskDelivered, models.TaskFailed},
	models.TaskInProgress: {models.TaskDelivered, models.TaskFailed},
}

// UpdateTaskStatus moves a task along the delivery progression and propagates
// the effects: a delivered task bumps the beneficiary and courier counters;
// the first in_progress task moves the request to in_progress; when every
// task is delivered the request completes and the courier is released.
func (s *DistributionService) UpdateTaskStatus(ctx context.Context, taskID int, req *models.UpdateTaskStatusRequest) (*models.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task")
	}

	allowed := false
	for _, next := range taskTransitions[task.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: task %d cannot go from %s to %s", ErrStateConflict, taskID, task.Status, req.Status)
	}

	if err := s.tasks.SetStatus(ctx, taskID, req.Status); err != nil {
		return nil, err
	}

	switch req.Status {
	case models.TaskDelivered:
		if err := s.beneficiaries.RecordDelivery(ctx, task.BeneficiaryID); err != nil {
			log.Printf("[DistributionService] beneficiary %d delivery count failed: %v", task.BeneficiaryID, err)
		}
		if err := s.couriers.RecordCompletedTask(ctx, task.CourierID); err != nil {
			log.Printf("[DistributionService] courier %d completed count failed: %v", task.CourierID, err)
		}
		metrics.TasksDelivered.Inc()
		if err := s.propagateCompletion(ctx, task.RequestID); err != nil {
			log.Printf("[DistributionService] request %d completion check failed: %v", task.RequestID, err)
		}
	case models.TaskInProgress:
		if err := s.propagateProgress(ctx, task.RequestID); err != nil {
			log.Printf("[DistributionService] request %d progress check failed: %v", task.RequestID, err)
		}
	}

	updated, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	publish(s.events, "task_updated", updated)
	return updated, nil
}

// propagateCompletion completes the request once all its tasks are delivered
// and returns its courier to the active pool.
func (s *DistributionService) propagateCompletion(ctx context.Context, requestID int) error {
	counts, err := s.tasks.StatusCounts(ctx, requestID)
	if err != nil {
		return err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 || counts[models.TaskDelivered] != total {
		return nil
	}

	if err := s.requests.SetStatus(ctx, requestID, models.RequestCompleted); err != nil {
		return err
	}
	log.Printf("[DistributionService] request %d completed", requestID)

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if request.AssignedCourierID != nil {
		if err := s.couriers.SetStatus(ctx, *request.AssignedCourierID, models.CourierActive); err != nil {
			return err
		}
	}
	publish(s.events, "request_completed", request)
	return nil
}

// propagateProgress moves an approved request to in_progress on the first
// task that starts moving.
func (s *DistributionService) propagateProgress(ctx context.Context, requestID int) error {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.RequestApproved {
		return nil
	}
	if err := s.requests.SetStatus(ctx, requestID, models.RequestInProgress); err != nil {
		return err
	}
	publish(s.events, "request_in_progress", request)
	return nil
}
