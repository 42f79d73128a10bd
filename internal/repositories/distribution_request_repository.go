package repositories

import (
	"context"
	"fmt"
	"strings"

	"aid-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DistributionRequestRepository struct {
	DB *pgxpool.Pool
}

func NewDistributionRequestRepository(db *pgxpool.Pool) *DistributionRequestRepository {
	return &DistributionRequestRepository{DB: db}
}

const requestColumns = `r.id, r.requester_id, r.requester_type, r.requester_name, r.type, r.priority,
	r.package_template_id, r.requested_quantity, r.approved_quantity, r.beneficiary_ids,
	r.target_governorate, r.target_city, r.target_district, r.status,
	r.estimated_cost, r.estimated_delivery_time, r.assigned_courier_id, r.admin_notes,
	r.approved_by, r.approval_date, r.rejection_reason, r.request_date, r.updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*models.DistributionRequest, error) {
	req := &models.DistributionRequest{}
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.RequesterType, &req.RequesterName, &req.Type, &req.Priority,
		&req.PackageTemplateID, &req.RequestedQuantity, &req.ApprovedQuantity, &req.BeneficiaryIDs,
		&req.TargetGovernorate, &req.TargetCity, &req.TargetDistrict, &req.Status,
		&req.EstimatedCost, &req.EstimatedDelivery, &req.AssignedCourierID, &req.AdminNotes,
		&req.ApprovedBy, &req.ApprovalDate, &req.RejectionReason, &req.RequestDate, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts a new request in pending status
func (r *DistributionRequestRepository) Create(ctx context.Context, req *models.DistributionRequest) error {
	query := `
		INSERT INTO distribution_requests (
			requester_id, requester_type, requester_name, type, priority,
			package_template_id, requested_quantity, beneficiary_ids,
			target_governorate, target_city, target_district,
			status, estimated_cost, estimated_delivery_time, admin_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending', $12, $13, $14)
		RETURNING id, status, request_date, updated_at
	`
	return r.DB.QueryRow(ctx, query,
		req.RequesterID, req.RequesterType, req.RequesterName, req.Type, req.Priority,
		req.PackageTemplateID, req.RequestedQuantity, req.BeneficiaryIDs,
		req.TargetGovernorate, req.TargetCity, req.TargetDistrict,
		req.EstimatedCost, req.EstimatedDelivery, req.AdminNotes,
	).Scan(&req.ID, &req.Status, &req.RequestDate, &req.UpdatedAt)
}

// Get retrieves a request by ID, including the IDs of tasks generated at approval
func (r *DistributionRequestRepository) Get(ctx context.Context, id int) (*models.DistributionRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM distribution_requests r WHERE r.id = $1`
	req, err := scanRequest(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	taskQuery := `SELECT id FROM tasks WHERE request_id = $1 ORDER BY id`
	rows, err := r.DB.Query(ctx, taskQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var taskID int
		if err := rows.Scan(&taskID); err != nil {
			return nil, err
		}
		req.GeneratedTaskIDs = append(req.GeneratedTaskIDs, taskID)
	}
	return req, rows.Err()
}

// List retrieves requests matching the filter, newest first
func (r *DistributionRequestRepository) List(ctx context.Context, f models.RequestFilter) ([]models.DistributionRequest, error) {
	var conditions []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conditions = append(conditions, fmt.Sprintf("r.type = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conditions = append(conditions, fmt.Sprintf("r.priority = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(r.requester_name ILIKE $%d OR r.id::text = $%d OR EXISTS (SELECT 1 FROM package_templates pt WHERE pt.id = r.package_template_id AND pt.name ILIKE $%d))",
			n, n, n))
	}

	query := `SELECT ` + requestColumns + ` FROM distribution_requests r`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.request_date DESC, r.id DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.DistributionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// Approve transitions a pending request to approved, recording the decision
// metadata. Returns false when the request was not in pending status, so a
// concurrent double-approval loses the race instead of overwriting.
func (r *DistributionRequestRepository) Approve(ctx context.Context, id int, approvedQuantity, courierID, approvedBy int, adminNotes string) (bool, error) {
	query := `
		UPDATE distribution_requests
		SET status = 'approved', approved_quantity = $1, assigned_courier_id = $2,
		    admin_notes = $3, approved_by = $4, approval_date = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND status = 'pending'
	`
	tag, err := r.DB.Exec(ctx, query, approvedQuantity, courierID, adminNotes, approvedBy, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Reject transitions a pending request to rejected with the given reason.
// Returns false when the request was not in pending status.
func (r *DistributionRequestRepository) Reject(ctx context.Context, id int, reason string, rejectedBy int) (bool, error) {
	query := `
		UPDATE distribution_requests
		SET status = 'rejected', rejection_reason = $1, approved_by = $2,
		    approval_date = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = 'pending'
	`
	tag, err := r.DB.Exec(ctx, query, reason, rejectedBy, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetStatus moves an approved request along the delivery progression
func (r *DistributionRequestRepository) SetStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE distribution_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.DB.Exec(ctx, query, status, id)
	return err
}

// CountPending returns the number of requests awaiting review
func (r *DistributionRequestRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM distribution_requests WHERE status = 'pending'`).Scan(&count)
	return count, err
}

// Stats folds status and priority counts over the current table state
func (r *DistributionRequestRepository) Stats(ctx context.Context) (*models.RequestStats, error) {
	stats := &models.RequestStats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	rows, err := r.DB.Query(ctx, `SELECT status, COUNT(*) FROM distribution_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `SELECT priority, COUNT(*) FROM distribution_requests GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		stats.ByPriority[priority] = count
	}
	return stats, rows.Err()
}
