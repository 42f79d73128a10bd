package repositories

import (
	"context"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	DB *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{DB: db}
}

const taskColumns = `id, request_id, beneficiary_id, package_template_id, courier_id,
	status, created_at, scheduled_at, delivered_at`

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(
		&t.ID, &t.RequestID, &t.BeneficiaryID, &t.PackageTemplateID, &t.CourierID,
		&t.Status, &t.CreatedAt, &t.ScheduledAt, &t.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateBatch inserts the delivery tasks generated by a request approval.
// All inserts run in one transaction so a partial batch never persists.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []models.Task) ([]int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tasks (request_id, beneficiary_id, package_template_id, courier_id, status)
		VALUES ($1, $2, $3, $4, 'assigned')
		RETURNING id
	`
	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		var id int
		err := tx.QueryRow(ctx, query, t.RequestID, t.BeneficiaryID, t.PackageTemplateID, t.CourierID).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id int) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.DB.QueryRow(ctx, query, id))
}

// ListByRequest retrieves all tasks generated for a request
func (r *TaskRepository) ListByRequest(ctx context.Context, requestID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE request_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, requestID)
}

// ListByCourier retrieves all tasks assigned to a courier
func (r *TaskRepository) ListByCourier(ctx context.Context, courierID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE courier_id = $1 ORDER BY id`
	return r.queryMany(ctx, query, courierID)
}

// SetStatus updates a task's delivery status, stamping delivered_at on delivery
func (r *TaskRepository) SetStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE tasks
		SET status = $1,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN CURRENT_TIMESTAMP ELSE delivered_at END
		WHERE id = $2
	`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}

// StatusCounts returns per-status task counts for a request
func (r *TaskRepository) StatusCounts(ctx context.Context, requestID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM tasks WHERE request_id = $1 GROUP BY status`
	rows, err := r.DB.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Counts returns total and delivered task counts across all requests
func (r *TaskRepository) Counts(ctx context.Context) (total, delivered int, err error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'delivered') FROM tasks`
	err = r.DB.QueryRow(ctx, query).Scan(&total, &delivered)
	return total, delivered, err
}

func (r *TaskRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
