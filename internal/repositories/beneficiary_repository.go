package repositories

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BeneficiaryRepository struct {
	DB *pgxpool.Pool
}

func NewBeneficiaryRepository(db *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{DB: db}
}

const beneficiaryColumns = `id, name, national_id, governorate, city, district, street,
	lat, lon, organization_id, family_id, identity_status, account_status,
	packages_received, last_received_at, created_at, updated_at`

func scanBeneficiary(row interface{ Scan(...interface{}) error }) (*models.Beneficiary, error) {
	b := &models.Beneficiary{}
	err := row.Scan(
		&b.ID, &b.Name, &b.NationalID, &b.Governorate, &b.City, &b.District, &b.Street,
		&b.Lat, &b.Lon, &b.OrganizationID, &b.FamilyID, &b.IdentityStatus, &b.AccountStatus,
		&b.PackagesReceived, &b.LastReceivedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create registers a new beneficiary with pending identity status
func (r *BeneficiaryRepository) Create(ctx context.Context, b *models.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (
			name, national_id, governorate, city, district, street, lat, lon,
			organization_id, family_id, identity_status, account_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', 'pending')
		RETURNING id, identity_status, account_status, packages_received, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		b.Name, b.NationalID, b.Governorate, b.City, b.District, b.Street,
		b.Lat, b.Lon, b.OrganizationID, b.FamilyID,
	).Scan(&b.ID, &b.IdentityStatus, &b.AccountStatus, &b.PackagesReceived, &b.CreatedAt, &b.UpdatedAt)
}

// Get retrieves a beneficiary by ID
func (r *BeneficiaryRepository) Get(ctx context.Context, id int) (*models.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id = $1`
	return scanBeneficiary(r.DB.QueryRow(ctx, query, id))
}

// List retrieves all beneficiaries
func (r *BeneficiaryRepository) List(ctx context.Context) ([]models.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries ORDER BY id`
	return r.queryMany(ctx, query)
}

// ListByArea retrieves beneficiaries matching all provided address filters.
// Empty filter fields are wildcards.
func (r *BeneficiaryRepository) ListByArea(ctx context.Context, f models.AreaFilter) ([]models.Beneficiary, error) {
	var conditions []string
	var args []interface{}

	if f.Governorate != "" {
		args = append(args, f.Governorate)
		conditions = append(conditions, fmt.Sprintf("governorate = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, f.City)
		conditions = append(conditions, fmt.Sprintf("city = $%d", len(args)))
	}
	if f.District != "" {
		args = append(args, f.District)
		conditions = append(conditions, fmt.Sprintf("district = $%d", len(args)))
	}

	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return r.queryMany(ctx, query, args...)
}

// ListByFamily retrieves beneficiaries belonging to a family
func (r *BeneficiaryRepository) ListByFamily(ctx context.Context, familyID int) ([]models.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE family_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, familyID)
}

// ListByOrganization retrieves beneficiaries belonging to an organization
func (r *BeneficiaryRepository) ListByOrganization(ctx context.Context, orgID int) ([]models.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE organization_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, orgID)
}

// CountByIDs returns how many of the given IDs exist
func (r *BeneficiaryRepository) CountByIDs(ctx context.Context, ids []int) (int, error) {
	query := `SELECT COUNT(*) FROM beneficiaries WHERE id = ANY($1)`
	var count int
	err := r.DB.QueryRow(ctx, query, ids).Scan(&count)
	return count, err
}

// Update edits a beneficiary's mutable profile fields
func (r *BeneficiaryRepository) Update(ctx context.Context, id int, req *models.UpdateBeneficiaryRequest) error {
	query := `
		UPDATE beneficiaries
		SET name = $1, governorate = $2, city = $3, district = $4, street = $5,
		    lat = $6, lon = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	_, err := r.DB.Exec(ctx, query,
		req.Name, req.Governorate, req.City, req.District, req.Street, req.Lat, req.Lon, id)
	return err
}

// SetIdentityStatus records the admin's identity review decision
func (r *BeneficiaryRepository) SetIdentityStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE beneficiaries
		SET identity_status = $1,
		    account_status = CASE WHEN $1 = 'verified' THEN 'active' ELSE account_status END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}

// RecordDelivery bumps the running totals after a delivered task
func (r *BeneficiaryRepository) RecordDelivery(ctx context.Context, id int) error {
	query := `
		UPDATE beneficiaries
		SET packages_received = packages_received + 1,
		    last_received_at = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

// Stats folds identity verification counts over the current table state
func (r *BeneficiaryRepository) Stats(ctx context.Context) (*models.BeneficiaryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE identity_status = 'verified'),
			COUNT(*) FILTER (WHERE identity_status = 'pending'),
			COUNT(*) FILTER (WHERE identity_status = 'rejected')
		FROM beneficiaries
	`
	stats := &models.BeneficiaryStats{}
	err := r.DB.QueryRow(ctx, query).Scan(&stats.Total, &stats.Verified, &stats.Pending, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *BeneficiaryRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Beneficiary, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beneficiaries []models.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, err
		}
		beneficiaries = append(beneficiaries, *b)
	}
	return beneficiaries, rows.Err()
}
