package services

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/models"
)

type organizationStore interface {
	Create(ctx context.Context, o *models.Organization) error
	Get(ctx context.Context, id int) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
}

type OrganizationService struct {
	organizations organizationStore
}

func NewOrganizationService(organizations organizationStore) *OrganizationService {
	return &OrganizationService{organizations: organizations}
}

// Register creates a new organization
func (s *OrganizationService) Register(ctx context.Context, req *models.CreateOrganizationRequest) (*models.Organization, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	o := &models.Organization{Name: req.Name, Contact: req.Contact}
	if err := s.organizations.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Get retrieves an organization with its derived counts
func (s *OrganizationService) Get(ctx context.Context, id int) (*models.Organization, error) {
	o, err := s.organizations.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "organization")
	}
	return o, nil
}

// List retrieves all organizations with derived counts
func (s *OrganizationService) List(ctx context.Context) ([]models.Organization, error) {
	return s.organizations.List(ctx)
}
