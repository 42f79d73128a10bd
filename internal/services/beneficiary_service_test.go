package services

import (
	"context"
	"sort"
	"testing"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullBeneficiaryFake implements the whole beneficiary store surface
type fullBeneficiaryFake struct {
	beneficiaries map[int]*models.Beneficiary
	nextID        int
}

func newFullBeneficiaryFake(bs ...models.Beneficiary) *fullBeneficiaryFake {
	f := &fullBeneficiaryFake{beneficiaries: make(map[int]*models.Beneficiary), nextID: 100}
	for i := range bs {
		b := bs[i]
		f.beneficiaries[b.ID] = &b
	}
	return f
}

func (f *fullBeneficiaryFake) Create(ctx context.Context, b *models.Beneficiary) error {
	b.ID = f.nextID
	f.nextID++
	b.IdentityStatus = models.IdentityPending
	b.AccountStatus = models.AccountPending
	copied := *b
	f.beneficiaries[b.ID] = &copied
	return nil
}

func (f *fullBeneficiaryFake) Get(ctx context.Context, id int) (*models.Beneficiary, error) {
	b, ok := f.beneficiaries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *b
	return &copied, nil
}

func (f *fullBeneficiaryFake) List(ctx context.Context) ([]models.Beneficiary, error) {
	return f.ListByArea(ctx, models.AreaFilter{})
}

func (f *fullBeneficiaryFake) ListByArea(ctx context.Context, filter models.AreaFilter) ([]models.Beneficiary, error) {
	var out []models.Beneficiary
	for _, b := range f.beneficiaries {
		if filter.Governorate != "" && b.Governorate != filter.Governorate {
			continue
		}
		if filter.City != "" && b.City != filter.City {
			continue
		}
		if filter.District != "" && b.District != filter.District {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fullBeneficiaryFake) ListByFamily(ctx context.Context, familyID int) ([]models.Beneficiary, error) {
	var out []models.Beneficiary
	for _, b := range f.beneficiaries {
		if b.FamilyID != nil && *b.FamilyID == familyID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fullBeneficiaryFake) ListByOrganization(ctx context.Context, orgID int) ([]models.Beneficiary, error) {
	var out []models.Beneficiary
	for _, b := range f.beneficiaries {
		if b.OrganizationID != nil && *b.OrganizationID == orgID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fullBeneficiaryFake) Update(ctx context.Context, id int, req *models.UpdateBeneficiaryRequest) error {
	if b, ok := f.beneficiaries[id]; ok {
		b.Name = req.Name
		b.Governorate = req.Governorate
		b.City = req.City
		b.District = req.District
	}
	return nil
}

func (f *fullBeneficiaryFake) SetIdentityStatus(ctx context.Context, id int, status string) error {
	if b, ok := f.beneficiaries[id]; ok {
		b.IdentityStatus = status
		if status == models.IdentityVerified {
			b.AccountStatus = models.AccountActive
		}
	}
	return nil
}

func (f *fullBeneficiaryFake) Stats(ctx context.Context) (*models.BeneficiaryStats, error) {
	stats := &models.BeneficiaryStats{}
	for _, b := range f.beneficiaries {
		stats.Total++
		switch b.IdentityStatus {
		case models.IdentityVerified:
			stats.Verified++
		case models.IdentityPending:
			stats.Pending++
		case models.IdentityRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func TestRegisterBeneficiaryValidation(t *testing.T) {
	svc := NewBeneficiaryService(newFullBeneficiaryFake(), nil)
	ctx := context.Background()

	orgID, famID := 1, 2
	tests := []struct {
		name string
		req  *models.CreateBeneficiaryRequest
	}{
		{"missing name", &models.CreateBeneficiaryRequest{NationalID: "9", Governorate: "Gaza", City: "Gaza", District: "Rimal"}},
		{"missing national id", &models.CreateBeneficiaryRequest{Name: "A", Governorate: "Gaza", City: "Gaza", District: "Rimal"}},
		{"missing address", &models.CreateBeneficiaryRequest{Name: "A", NationalID: "9", Governorate: "Gaza"}},
		{"both memberships", &models.CreateBeneficiaryRequest{
			Name: "A", NationalID: "9", Governorate: "Gaza", City: "Gaza", District: "Rimal",
			OrganizationID: &orgID, FamilyID: &famID,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	b, err := svc.Register(ctx, &models.CreateBeneficiaryRequest{
		Name: "Amal", NationalID: "900123", Governorate: "Gaza", City: "Gaza City", District: "Rimal",
	})
	require.NoError(t, err)
	assert.Equal(t, models.IdentityPending, b.IdentityStatus)
	assert.Equal(t, models.AccountPending, b.AccountStatus)
}

func TestVerifyIdentity(t *testing.T) {
	pending := verifiedBeneficiary(1, "Gaza")
	pending.IdentityStatus = models.IdentityPending
	pending.AccountStatus = models.AccountPending
	svc := NewBeneficiaryService(newFullBeneficiaryFake(pending), nil)
	ctx := context.Background()

	_, err := svc.VerifyIdentity(ctx, 1, &models.VerifyIdentityRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.VerifyIdentity(ctx, 99, &models.VerifyIdentityRequest{Status: models.IdentityVerified})
	assert.ErrorIs(t, err, ErrNotFound)

	b, err := svc.VerifyIdentity(ctx, 1, &models.VerifyIdentityRequest{Status: models.IdentityVerified})
	require.NoError(t, err)
	assert.Equal(t, models.IdentityVerified, b.IdentityStatus)
	assert.Equal(t, models.AccountActive, b.AccountStatus, "verification activates the account")

	// review is one-shot
	_, err = svc.VerifyIdentity(ctx, 1, &models.VerifyIdentityRequest{Status: models.IdentityRejected})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestListByAreaFiltersAnded(t *testing.T) {
	a := verifiedBeneficiary(1, "Gaza")
	a.City, a.District = "Gaza City", "Rimal"
	b := verifiedBeneficiary(2, "Gaza")
	b.City, b.District = "Gaza City", "Shejaiya"
	c := verifiedBeneficiary(3, "Rafah")
	c.City, c.District = "Rafah", "Tel Sultan"

	svc := NewBeneficiaryService(newFullBeneficiaryFake(a, b, c), nil)
	ctx := context.Background()

	all, err := svc.ListByArea(ctx, models.AreaFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "empty filter matches everyone")

	gaza, err := svc.ListByArea(ctx, models.AreaFilter{Governorate: "Gaza"})
	require.NoError(t, err)
	assert.Len(t, gaza, 2)

	rimal, err := svc.ListByArea(ctx, models.AreaFilter{Governorate: "Gaza", District: "Rimal"})
	require.NoError(t, err)
	require.Len(t, rimal, 1)
	assert.Equal(t, 1, rimal[0].ID)

	none, err := svc.ListByArea(ctx, models.AreaFilter{Governorate: "Rafah", District: "Rimal"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBeneficiaryStatsPartition(t *testing.T) {
	verified := verifiedBeneficiary(1, "Gaza")
	pending := verifiedBeneficiary(2, "Gaza")
	pending.IdentityStatus = models.IdentityPending
	rejected := verifiedBeneficiary(3, "Gaza")
	rejected.IdentityStatus = models.IdentityRejected

	svc := NewBeneficiaryService(newFullBeneficiaryFake(verified, pending, rejected), nil)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, stats.Total, stats.Verified+stats.Pending+stats.Rejected)
}
