package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationRepository struct {
	DB *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

// Counts are derived from beneficiaries and tasks at read time, never stored.
const organizationSelect = `
	SELECT o.id, o.name, o.contact, o.status, o.created_at, o.updated_at,
	       (SELECT COUNT(*) FROM beneficiaries b WHERE b.organization_id = o.id) AS beneficiaries_count,
	       (SELECT COUNT(*) FROM tasks t
	        JOIN beneficiaries b ON b.id = t.beneficiary_id
	        WHERE b.organization_id = o.id AND t.status = 'delivered') AS packages_count,
	       COALESCE((SELECT COUNT(*) FILTER (WHERE t.status = 'delivered')::float / NULLIF(COUNT(*), 0)
	        FROM tasks t
	        JOIN beneficiaries b ON b.id = t.beneficiary_id
	        WHERE b.organization_id = o.id), 0) AS completion_rate
	FROM organizations o`

func scanOrganization(row interface{ Scan(...interface{}) error }) (*models.Organization, error) {
	o := &models.Organization{}
	err := row.Scan(
		&o.ID, &o.Name, &o.Contact, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.BeneficiariesCount, &o.PackagesCount, &o.CompletionRate,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new organization
func (r *OrganizationRepository) Create(ctx context.Context, o *models.Organization) error {
	query := `
		INSERT INTO organizations (name, contact, status)
		VALUES ($1, $2, 'active')
		RETURNING id, status, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query, o.Name, o.Contact).
		Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

// Get retrieves an organization with derived counts
func (r *OrganizationRepository) Get(ctx context.Context, id int) (*models.Organization, error) {
	query := organizationSelect + ` WHERE o.id = $1`
	return scanOrganization(r.DB.QueryRow(ctx, query, id))
}

// List retrieves all organizations with derived counts
func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	query := organizationSelect + ` ORDER BY o.id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

// Count returns the number of organizations
func (r *OrganizationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&count)
	return count, err
}
