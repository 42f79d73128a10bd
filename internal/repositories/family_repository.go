package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FamilyRepository struct {
	DB *pgxpool.Pool
}

func NewFamilyRepository(db *pgxpool.Pool) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

// Same derived-count discipline as organizations.
const familySelect = `
	SELECT f.id, f.name, f.contact, f.status, f.created_at, f.updated_at,
	       (SELECT COUNT(*) FROM beneficiaries b WHERE b.family_id = f.id) AS beneficiaries_count,
	       (SELECT COUNT(*) FROM tasks t
	        JOIN beneficiaries b ON b.id = t.beneficiary_id
	        WHERE b.family_id = f.id AND t.status = 'delivered') AS packages_count,
	       COALESCE((SELECT COUNT(*) FILTER (WHERE t.status = 'delivered')::float / NULLIF(COUNT(*), 0)
	        FROM tasks t
	        JOIN beneficiaries b ON b.id = t.beneficiary_id
	        WHERE b.family_id = f.id), 0) AS completion_rate
	FROM families f`

func scanFamily(row interface{ Scan(...interface{}) error }) (*models.Family, error) {
	f := &models.Family{}
	err := row.Scan(
		&f.ID, &f.Name, &f.Contact, &f.Status, &f.CreatedAt, &f.UpdatedAt,
		&f.BeneficiariesCount, &f.PackagesCount, &f.CompletionRate,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a new family
func (r *FamilyRepository) Create(ctx context.Context, f *models.Family) error {
	query := `
		INSERT INTO families (name, contact, status)
		VALUES ($1, $2, 'active')
		RETURNING id, status, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query, f.Name, f.Contact).
		Scan(&f.ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

// Get retrieves a family with derived counts
func (r *FamilyRepository) Get(ctx context.Context, id int) (*models.Family, error) {
	query := familySelect + ` WHERE f.id = $1`
	return scanFamily(r.DB.QueryRow(ctx, query, id))
}

// List retrieves all families with derived counts
func (r *FamilyRepository) List(ctx context.Context) ([]models.Family, error) {
	query := familySelect + ` ORDER BY f.id`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []models.Family
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, err
		}
		families = append(families, *f)
	}
	return families, rows.Err()
}

// Count returns the number of families
func (r *FamilyRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM families`).Scan(&count)
	return count, err
}
