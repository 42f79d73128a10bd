package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AlertRepository struct {
	DB *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{DB: db}
}

// Create inserts a new unread alert
func (r *AlertRepository) Create(ctx context.Context, a *models.Alert) error {
	query := `
		INSERT INTO alerts (type, title, description, related_id, related_type, priority, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id, is_read, created_at
	`
	return r.DB.QueryRow(ctx, query,
		a.Type, a.Title, a.Description, a.RelatedID, a.RelatedType, a.Priority,
	).Scan(&a.ID, &a.IsRead, &a.CreatedAt)
}

// List retrieves all alerts, newest first
func (r *AlertRepository) List(ctx context.Context) ([]models.Alert, error) {
	query := `
		SELECT id, type, title, description, related_id, related_type, priority, is_read, created_at
		FROM alerts
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Description, &a.RelatedID,
			&a.RelatedType, &a.Priority, &a.IsRead, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// HasUnreadOfType reports whether an unread alert of the given type exists.
// Used for dedup: at most one unread alert per derived type.
func (r *AlertRepository) HasUnreadOfType(ctx context.Context, alertType string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM alerts WHERE type = $1 AND NOT is_read)`
	err := r.DB.QueryRow(ctx, query, alertType).Scan(&exists)
	return exists, err
}

// MarkRead marks an alert as read
func (r *AlertRepository) MarkRead(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE alerts SET is_read = true WHERE id = $1`, id)
	return err
}

// Delete removes an alert
func (r *AlertRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	return err
}

// CountUnread returns the number of unread alerts
func (r *AlertRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE NOT is_read`).Scan(&count)
	return count, err
}
