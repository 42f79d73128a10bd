package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewAdminActionLogRepository(db *pgxpool.Pool) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

// Create appends an entry to the audit trail
func (r *AdminActionLogRepository) Create(ctx context.Context, l *models.AdminActionLog) error {
	query := `
		INSERT INTO admin_action_logs (admin_user_id, action_type, target_type, target_id, description, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		l.AdminUserID, l.ActionType, l.TargetType, l.TargetID, l.Description, l.IPAddress,
	).Scan(&l.ID, &l.CreatedAt)
}

// List retrieves the most recent audit entries
func (r *AdminActionLogRepository) List(ctx context.Context, limit int) ([]models.AdminActionLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, admin_user_id, action_type, target_type, target_id, description, ip_address, created_at
		FROM admin_action_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AdminActionLog
	for rows.Next() {
		var l models.AdminActionLog
		err := rows.Scan(&l.ID, &l.AdminUserID, &l.ActionType, &l.TargetType,
			&l.TargetID, &l.Description, &l.IPAddress, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
