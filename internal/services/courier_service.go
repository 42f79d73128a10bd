package services

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/geo"
	"aid-backend/internal/models"
)

type courierStore interface {
	Create(ctx context.Context, c *models.Courier) error
	Get(ctx context.Context, id int) (*models.Courier, error)
	List(ctx context.Context) ([]models.Courier, error)
	ListActive(ctx context.Context) ([]models.Courier, error)
	ListActiveByServiceArea(ctx context.Context, area string) ([]models.Courier, error)
	SetStatus(ctx context.Context, id int, status string) error
}

type CourierService struct {
	couriers courierStore
}

func NewCourierService(couriers courierStore) *CourierService {
	return &CourierService{couriers: couriers}
}

func validCourierStatus(status string) bool {
	switch status {
	case models.CourierActive, models.CourierBusy, models.CourierOffline:
		return true
	}
	return false
}

// Register creates a new courier, starting offline
func (s *CourierService) Register(ctx context.Context, req *models.CreateCourierRequest) (*models.Courier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	c := &models.Courier{
		Name:                   req.Name,
		Phone:                  req.Phone,
		IsHumanitarianApproved: req.IsHumanitarianApproved,
		ServiceAreas:           req.ServiceAreas,
	}
	if err := s.couriers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a courier by ID
func (s *CourierService) Get(ctx context.Context, id int) (*models.Courier, error) {
	c, err := s.couriers.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "courier")
	}
	return c, nil
}

// List retrieves all couriers
func (s *CourierService) List(ctx context.Context) ([]models.Courier, error) {
	return s.couriers.List(ctx)
}

// UpdateStatus changes a courier's availability
func (s *CourierService) UpdateStatus(ctx context.Context, id int, req *models.UpdateCourierStatusRequest) (*models.Courier, error) {
	if !validCourierStatus(req.Status) {
		return nil, fmt.Errorf("%w: status must be active, busy or offline", ErrValidation)
	}
	if _, err := s.couriers.Get(ctx, id); err != nil {
		return nil, notFoundOr(err, "courier")
	}
	if err := s.couriers.SetStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	return s.couriers.Get(ctx, id)
}

// ListByServiceArea retrieves active couriers covering the given area.
// An empty area means no filter, so every active courier qualifies; a named
// area with no coverage returns an empty result.
func (s *CourierService) ListByServiceArea(ctx context.Context, area string) ([]models.Courier, error) {
	if area == "" {
		return s.couriers.ListActive(ctx)
	}
	return s.couriers.ListActiveByServiceArea(ctx, area)
}

// ListNearby retrieves active couriers within radiusKm of the given point.
// Couriers without a reported position are skipped.
func (s *CourierService) ListNearby(ctx context.Context, lat, lon, radiusKm float64) ([]models.Courier, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrValidation)
	}
	active, err := s.couriers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []models.Courier
	for _, c := range active {
		if c.Lat == nil || c.Lon == nil {
			continue
		}
		if geo.WithinKm(lat, lon, *c.Lat, *c.Lon, radiusKm) {
			nearby = append(nearby, c)
		}
	}
	return nearby, nil
}
