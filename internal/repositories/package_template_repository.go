package repositories

import (
	"context"
	"encoding/json"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PackageTemplateRepository struct {
	DB *pgxpool.Pool
}

func NewPackageTemplateRepository(db *pgxpool.Pool) *PackageTemplateRepository {
	return &PackageTemplateRepository{DB: db}
}

// Create inserts a new package template
func (r *PackageTemplateRepository) Create(ctx context.Context, t *models.PackageTemplate) error {
	contents, err := json.Marshal(t.Contents)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO package_templates (name, category, contents, total_weight_kg, estimated_cost, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, is_active, usage_count, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		t.Name, t.Category, contents, t.TotalWeightKg, t.EstimatedCost,
	).Scan(&t.ID, &t.IsActive, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt)
}

// Get retrieves a template by ID
func (r *PackageTemplateRepository) Get(ctx context.Context, id int) (*models.PackageTemplate, error) {
	query := `
		SELECT id, name, category, contents, total_weight_kg, estimated_cost,
		       is_active, usage_count, created_at, updated_at
		FROM package_templates
		WHERE id = $1
	`
	t := &models.PackageTemplate{}
	var contents []byte
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Category, &contents, &t.TotalWeightKg, &t.EstimatedCost,
		&t.IsActive, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contents, &t.Contents); err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all templates
func (r *PackageTemplateRepository) List(ctx context.Context) ([]models.PackageTemplate, error) {
	query := `
		SELECT id, name, category, contents, total_weight_kg, estimated_cost,
		       is_active, usage_count, created_at, updated_at
		FROM package_templates
		ORDER BY id
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.PackageTemplate
	for rows.Next() {
		var t models.PackageTemplate
		var contents []byte
		err := rows.Scan(
			&t.ID, &t.Name, &t.Category, &contents, &t.TotalWeightKg, &t.EstimatedCost,
			&t.IsActive, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contents, &t.Contents); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// SetActive toggles a template's active flag
func (r *PackageTemplateRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE package_templates SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, active, id)
	return err
}

// IncrementUsage bumps the usage counter when a request references the template
func (r *PackageTemplateRepository) IncrementUsage(ctx context.Context, id int) error {
	query := `UPDATE package_templates SET usage_count = usage_count + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

// CountActive returns the number of active templates
func (r *PackageTemplateRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM package_templates WHERE is_active`).Scan(&count)
	return count, err
}
