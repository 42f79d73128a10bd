package services

import (
	"context"
	"sort"
	"testing"

	"aid-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullCourierFake extends the approval-path fake with the listing methods
type fullCourierFake struct {
	*fakeCourierStore
	nextID int
}

func newFullCourierFake(cs ...models.Courier) *fullCourierFake {
	return &fullCourierFake{fakeCourierStore: newFakeCourierStore(cs...), nextID: 100}
}

func (f *fullCourierFake) Create(ctx context.Context, c *models.Courier) error {
	c.ID = f.nextID
	f.nextID++
	c.Status = models.CourierOffline
	copied := *c
	f.couriers[c.ID] = &copied
	return nil
}

func (f *fullCourierFake) List(ctx context.Context) ([]models.Courier, error) {
	var out []models.Courier
	for _, c := range f.couriers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fullCourierFake) ListActive(ctx context.Context) ([]models.Courier, error) {
	all, _ := f.List(ctx)
	var out []models.Courier
	for _, c := range all {
		if c.Status == models.CourierActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fullCourierFake) ListActiveByServiceArea(ctx context.Context, area string) ([]models.Courier, error) {
	active, _ := f.ListActive(ctx)
	var out []models.Courier
	for _, c := range active {
		for _, a := range c.ServiceAreas {
			if a == area {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func coord(v float64) *float64 { return &v }

func TestListByServiceArea(t *testing.T) {
	gaza := activeCourier(1)
	rafah := activeCourier(2)
	rafah.ServiceAreas = []string{"Rafah"}
	offline := activeCourier(3)
	offline.Status = models.CourierOffline

	svc := NewCourierService(newFullCourierFake(gaza, rafah, offline))
	ctx := context.Background()

	matched, err := svc.ListByServiceArea(ctx, "Rafah")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, 2, matched[0].ID)

	// a named area nobody covers yields nobody, not everybody
	none, err := svc.ListByServiceArea(ctx, "Deir al-Balah")
	require.NoError(t, err)
	assert.Empty(t, none)

	// no area means no filter
	all, err := svc.ListByServiceArea(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListNearby(t *testing.T) {
	near := activeCourier(1)
	near.Lat, near.Lon = coord(31.50), coord(34.45)
	far := activeCourier(2)
	far.Lat, far.Lon = coord(31.90), coord(34.45)
	noPosition := activeCourier(3)

	svc := NewCourierService(newFullCourierFake(near, far, noPosition))
	ctx := context.Background()

	// ~0.05 degrees is ~5.5 km under the flat approximation
	couriers, err := svc.ListNearby(ctx, 31.52, 34.45, 10)
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, 1, couriers[0].ID)

	_, err = svc.ListNearby(ctx, 31.52, 34.45, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterCourierValidation(t *testing.T) {
	svc := NewCourierService(newFullCourierFake())
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.CreateCourierRequest{Phone: "059"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, &models.CreateCourierRequest{Name: "Sami"})
	assert.ErrorIs(t, err, ErrValidation)

	c, err := svc.Register(ctx, &models.CreateCourierRequest{
		Name: "Sami", Phone: "0599000000", IsHumanitarianApproved: true,
		ServiceAreas: []string{"Gaza"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CourierOffline, c.Status)
}

func TestUpdateCourierStatus(t *testing.T) {
	svc := NewCourierService(newFullCourierFake(activeCourier(1)))
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 1, &models.UpdateCourierStatusRequest{Status: "away"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, 99, &models.UpdateCourierStatusRequest{Status: models.CourierBusy})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateStatus(ctx, 1, &models.UpdateCourierStatusRequest{Status: models.CourierOffline})
	require.NoError(t, err)
	assert.Equal(t, models.CourierOffline, updated.Status)
}
