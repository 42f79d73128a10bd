package services

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/models"
)

type familyStore interface {
	Create(ctx context.Context, f *models.Family) error
	Get(ctx context.Context, id int) (*models.Family, error)
	List(ctx context.Context) ([]models.Family, error)
}

type FamilyService struct {
	families familyStore
}

func NewFamilyService(families familyStore) *FamilyService {
	return &FamilyService{families: families}
}

// Register creates a new family
func (s *FamilyService) Register(ctx context.Context, req *models.CreateFamilyRequest) (*models.Family, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	f := &models.Family{Name: req.Name, Contact: req.Contact}
	if err := s.families.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get retrieves a family with its derived counts
func (s *FamilyService) Get(ctx context.Context, id int) (*models.Family, error) {
	f, err := s.families.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "family")
	}
	return f, nil
}

// List retrieves all families with derived counts
func (s *FamilyService) List(ctx context.Context) ([]models.Family, error) {
	return s.families.List(ctx)
}
