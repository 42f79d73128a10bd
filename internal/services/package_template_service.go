package services

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/models"
)

type templateStore interface {
	Create(ctx context.Context, t *models.PackageTemplate) error
	Get(ctx context.Context, id int) (*models.PackageTemplate, error)
	List(ctx context.Context) ([]models.PackageTemplate, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type PackageTemplateService struct {
	templates templateStore
}

func NewPackageTemplateService(templates templateStore) *PackageTemplateService {
	return &PackageTemplateService{templates: templates}
}

// Create registers a new package template
func (s *PackageTemplateService) Create(ctx context.Context, t *models.PackageTemplate) (*models.PackageTemplate, error) {
	if strings.TrimSpace(t.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if t.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if len(t.Contents) == 0 {
		return nil, fmt.Errorf("%w: contents must list at least one item", ErrValidation)
	}
	if t.EstimatedCost < 0 || t.TotalWeightKg < 0 {
		return nil, fmt.Errorf("%w: cost and weight must not be negative", ErrValidation)
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a template by ID
func (s *PackageTemplateService) Get(ctx context.Context, id int) (*models.PackageTemplate, error) {
	t, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "package template")
	}
	return t, nil
}

// List retrieves all templates
func (s *PackageTemplateService) List(ctx context.Context) ([]models.PackageTemplate, error) {
	return s.templates.List(ctx)
}

// Deactivate retires a template; existing requests keep referencing it
func (s *PackageTemplateService) Deactivate(ctx context.Context, id int) error {
	if _, err := s.templates.Get(ctx, id); err != nil {
		return notFoundOr(err, "package template")
	}
	return s.templates.SetActive(ctx, id, false)
}
