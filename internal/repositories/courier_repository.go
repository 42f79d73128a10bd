package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CourierRepository struct {
	DB *pgxpool.Pool
}

func NewCourierRepository(db *pgxpool.Pool) *CourierRepository {
	return &CourierRepository{DB: db}
}

const courierColumns = `id, name, phone, status, is_humanitarian_approved, rating,
	completed_tasks, service_areas, lat, lon, created_at, updated_at`

func scanCourier(row interface{ Scan(...interface{}) error }) (*models.Courier, error) {
	c := &models.Courier{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Status, &c.IsHumanitarianApproved, &c.Rating,
		&c.CompletedTasks, &c.ServiceAreas, &c.Lat, &c.Lon, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create registers a new courier
func (r *CourierRepository) Create(ctx context.Context, c *models.Courier) error {
	query := `
		INSERT INTO couriers (name, phone, status, is_humanitarian_approved, service_areas, lat, lon)
		VALUES ($1, $2, 'offline', $3, $4, $5, $6)
		RETURNING id, status, rating, completed_tasks, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		c.Name, c.Phone, c.IsHumanitarianApproved, c.ServiceAreas, c.Lat, c.Lon,
	).Scan(&c.ID, &c.Status, &c.Rating, &c.CompletedTasks, &c.CreatedAt, &c.UpdatedAt)
}

// Get retrieves a courier by ID
func (r *CourierRepository) Get(ctx context.Context, id int) (*models.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE id = $1`
	return scanCourier(r.DB.QueryRow(ctx, query, id))
}

// List retrieves all couriers
func (r *CourierRepository) List(ctx context.Context) ([]models.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers ORDER BY id`
	return r.queryMany(ctx, query)
}

// ListActive retrieves all couriers currently marked active
func (r *CourierRepository) ListActive(ctx context.Context) ([]models.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE status = 'active' ORDER BY id`
	return r.queryMany(ctx, query)
}

// ListActiveByServiceArea retrieves active couriers covering the given area
func (r *CourierRepository) ListActiveByServiceArea(ctx context.Context, area string) ([]models.Courier, error) {
	query := `SELECT ` + courierColumns + ` FROM couriers WHERE status = 'active' AND $1 = ANY(service_areas) ORDER BY id`
	return r.queryMany(ctx, query, area)
}

// SetStatus updates a courier's availability status
func (r *CourierRepository) SetStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE couriers SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}

// CountActive returns the number of couriers currently marked active
func (r *CourierRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM couriers WHERE status = 'active'`).Scan(&count)
	return count, err
}

// RecordCompletedTask bumps the courier's completed task counter
func (r *CourierRepository) RecordCompletedTask(ctx context.Context, id int) error {
	query := `UPDATE couriers SET completed_tasks = completed_tasks + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.DB.Exec(ctx, query, id)
	return err
}

func (r *CourierRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Courier, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var couriers []models.Courier
	for rows.Next() {
		c, err := scanCourier(rows)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, *c)
	}
	return couriers, rows.Err()
}
