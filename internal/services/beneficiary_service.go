package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"aid-backend/internal/models"
)

type beneficiaryStore interface {
	Create(ctx context.Context, b *models.Beneficiary) error
	Get(ctx context.Context, id int) (*models.Beneficiary, error)
	List(ctx context.Context) ([]models.Beneficiary, error)
	ListByArea(ctx context.Context, f models.AreaFilter) ([]models.Beneficiary, error)
	ListByFamily(ctx context.Context, familyID int) ([]models.Beneficiary, error)
	ListByOrganization(ctx context.Context, orgID int) ([]models.Beneficiary, error)
	Update(ctx context.Context, id int, req *models.UpdateBeneficiaryRequest) error
	SetIdentityStatus(ctx context.Context, id int, status string) error
	Stats(ctx context.Context) (*models.BeneficiaryStats, error)
}

type BeneficiaryService struct {
	beneficiaries beneficiaryStore
	events        EventPublisher
}

func NewBeneficiaryService(beneficiaries beneficiaryStore, events EventPublisher) *BeneficiaryService {
	return &BeneficiaryService{beneficiaries: beneficiaries, events: events}
}

// Register creates a new beneficiary in pending identity status
func (s *BeneficiaryService) Register(ctx context.Context, req *models.CreateBeneficiaryRequest) (*models.Beneficiary, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.NationalID) == "" {
		return nil, fmt.Errorf("%w: national id is required", ErrValidation)
	}
	if req.Governorate == "" || req.City == "" || req.District == "" {
		return nil, fmt.Errorf("%w: governorate, city and district are required", ErrValidation)
	}
	if req.OrganizationID != nil && req.FamilyID != nil {
		return nil, fmt.Errorf("%w: a beneficiary belongs to an organization or a family, not both", ErrValidation)
	}

	b := &models.Beneficiary{
		Name:           req.Name,
		NationalID:     req.NationalID,
		Governorate:    req.Governorate,
		City:           req.City,
		District:       req.District,
		Lat:            req.Lat,
		Lon:            req.Lon,
		OrganizationID: req.OrganizationID,
		FamilyID:       req.FamilyID,
	}
	if req.Street != "" {
		b.Street = &req.Street
	}

	if err := s.beneficiaries.Create(ctx, b); err != nil {
		return nil, err
	}
	log.Printf("[BeneficiaryService] registered beneficiary %d (%s)", b.ID, b.Governorate)
	publish(s.events, "beneficiary_created", b)
	return b, nil
}

// Get retrieves a beneficiary by ID
func (s *BeneficiaryService) Get(ctx context.Context, id int) (*models.Beneficiary, error) {
	b, err := s.beneficiaries.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "beneficiary")
	}
	return b, nil
}

// List retrieves all beneficiaries
func (s *BeneficiaryService) List(ctx context.Context) ([]models.Beneficiary, error) {
	return s.beneficiaries.List(ctx)
}

// ListByArea retrieves beneficiaries matching the address filters; every
// provided field must match, absent fields are wildcards
func (s *BeneficiaryService) ListByArea(ctx context.Context, f models.AreaFilter) ([]models.Beneficiary, error) {
	return s.beneficiaries.ListByArea(ctx, f)
}

// ListByFamily retrieves a family's members
func (s *BeneficiaryService) ListByFamily(ctx context.Context, familyID int) ([]models.Beneficiary, error) {
	return s.beneficiaries.ListByFamily(ctx, familyID)
}

// ListByOrganization retrieves an organization's beneficiaries
func (s *BeneficiaryService) ListByOrganization(ctx context.Context, orgID int) ([]models.Beneficiary, error) {
	return s.beneficiaries.ListByOrganization(ctx, orgID)
}

// Update edits a beneficiary's profile
func (s *BeneficiaryService) Update(ctx context.Context, id int, req *models.UpdateBeneficiaryRequest) (*models.Beneficiary, error) {
	if _, err := s.beneficiaries.Get(ctx, id); err != nil {
		return nil, notFoundOr(err, "beneficiary")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.beneficiaries.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.beneficiaries.Get(ctx, id)
}

// VerifyIdentity records the admin's identity review decision. Only pending
// identities can be reviewed; verification also activates the account.
func (s *BeneficiaryService) VerifyIdentity(ctx context.Context, id int, req *models.VerifyIdentityRequest) (*models.Beneficiary, error) {
	if req.Status != models.IdentityVerified && req.Status != models.IdentityRejected {
		return nil, fmt.Errorf("%w: status must be verified or rejected", ErrValidation)
	}

	b, err := s.beneficiaries.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "beneficiary")
	}
	if b.IdentityStatus != models.IdentityPending {
		return nil, fmt.Errorf("%w: identity already %s", ErrStateConflict, b.IdentityStatus)
	}

	if err := s.beneficiaries.SetIdentityStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	log.Printf("[BeneficiaryService] identity %s: beneficiary %d", req.Status, id)
	updated, err := s.beneficiaries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(s.events, "beneficiary_updated", updated)
	return updated, nil
}

// Stats folds identity verification counts over the current table state
func (s *BeneficiaryService) Stats(ctx context.Context) (*models.BeneficiaryStats, error) {
	return s.beneficiaries.Stats(ctx)
}
