package services

import (
	"context"
	"testing"

	"aid-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequests(n int) *fakeRequestStore {
	store := newFakeRequestStore()
	for i := 0; i < n; i++ {
		store.Create(context.Background(), &models.DistributionRequest{
			RequesterName: "Org", Type: models.RequestIndividual, Priority: models.PriorityNormal,
		})
	}
	return store
}

func TestDeriveCreatesSingleAlert(t *testing.T) {
	alerts := newFakeAlertStore()
	svc := NewAlertService(alerts, pendingRequests(3), nil)
	ctx := context.Background()

	require.NoError(t, svc.Derive(ctx))

	list, _ := svc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, models.AlertPendingRequests, list[0].Type)
	assert.False(t, list[0].IsRead)
	assert.Contains(t, list[0].Description, "3")

	// re-deriving while the alert is unread is a no-op
	require.NoError(t, svc.Derive(ctx))
	require.NoError(t, svc.Derive(ctx))
	list, _ = svc.List(ctx)
	assert.Len(t, list, 1)
}

func TestDeriveNoPendingNoAlert(t *testing.T) {
	alerts := newFakeAlertStore()
	svc := NewAlertService(alerts, pendingRequests(0), nil)

	require.NoError(t, svc.Derive(context.Background()))
	list, _ := svc.List(context.Background())
	assert.Empty(t, list)
}

func TestDeriveFiresAgainAfterRead(t *testing.T) {
	alerts := newFakeAlertStore()
	svc := NewAlertService(alerts, pendingRequests(2), nil)
	ctx := context.Background()

	require.NoError(t, svc.Derive(ctx))
	list, _ := svc.List(ctx)
	require.Len(t, list, 1)

	require.NoError(t, svc.MarkRead(ctx, list[0].ID))
	require.NoError(t, svc.Derive(ctx))

	list, _ = svc.List(ctx)
	// read alert stays, a fresh unread one appears
	require.Len(t, list, 2)
	unread, _ := svc.CountUnread(ctx)
	assert.Equal(t, 1, unread)
}

func TestDeriveAfterDelete(t *testing.T) {
	alerts := newFakeAlertStore()
	svc := NewAlertService(alerts, pendingRequests(1), nil)
	ctx := context.Background()

	require.NoError(t, svc.Derive(ctx))
	list, _ := svc.List(ctx)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	require.NoError(t, svc.Derive(ctx))
	list, _ = svc.List(ctx)
	assert.Len(t, list, 1)
}
