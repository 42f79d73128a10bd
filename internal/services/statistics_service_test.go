package services

import (
	"context"
	"testing"

	"aid-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter int

func (c fixedCounter) CountActive(ctx context.Context) (int, error) { return int(c), nil }

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()

	beneficiaries := newFullBeneficiaryFake(
		verifiedBeneficiary(1, "Gaza"), verifiedBeneficiary(2, "Gaza"))
	requests := pendingRequests(2)
	alerts := newFakeAlertStore()

	tasks := newFakeTaskStore()
	ids, err := tasks.CreateBatch(ctx, []models.Task{
		{RequestID: 1, BeneficiaryID: 1, PackageTemplateID: 1, CourierID: 1},
		{RequestID: 1, BeneficiaryID: 2, PackageTemplateID: 1, CourierID: 1},
		{RequestID: 2, BeneficiaryID: 1, PackageTemplateID: 1, CourierID: 1},
		{RequestID: 2, BeneficiaryID: 2, PackageTemplateID: 1, CourierID: 1},
	})
	require.NoError(t, err)
	require.NoError(t, tasks.SetStatus(ctx, ids[0], models.TaskDelivered))

	svc := NewStatisticsService(beneficiaries, requests, tasks, fixedCounter(3), fixedCounter(5), alerts)
	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Beneficiaries.Total)
	assert.Equal(t, 2, stats.Requests.Total)
	assert.Equal(t, 4, stats.TasksTotal)
	assert.Equal(t, 1, stats.TasksDelivered)
	assert.Equal(t, 1, stats.TotalDistributed)
	assert.Equal(t, 0.25, stats.DeliveryRate)
	assert.Equal(t, 3, stats.ActiveCouriers)
	assert.Equal(t, 5, stats.ActiveTemplates)
	assert.Equal(t, 0, stats.UnreadAlerts)
}

func TestDashboardEmptyDeliveryRate(t *testing.T) {
	svc := NewStatisticsService(
		newFullBeneficiaryFake(), newFakeRequestStore(), newFakeTaskStore(),
		fixedCounter(0), fixedCounter(0), newFakeAlertStore())

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.DeliveryRate)
	assert.Zero(t, stats.TasksTotal)
}
