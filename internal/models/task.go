package models

import "time"

// Task statuses
const (
	TaskPending     = "pending"
	TaskAssigned    = "assigned"
	TaskInProgress  = "in_progress"
	TaskDelivered   = "delivered"
	TaskFailed      = "failed"
	TaskRescheduled = "rescheduled"
)

// Task is one delivery obligation: one package, one beneficiary, one courier.
// Created only as a side effect of request approval.
type Task struct {
	ID                int        `json:"id" db:"id"`
	RequestID         int        `json:"request_id" db:"request_id"`
	BeneficiaryID     int        `json:"beneficiary_id" db:"beneficiary_id"`
	PackageTemplateID int        `json:"package_template_id" db:"package_template_id"`
	CourierID         int        `json:"courier_id" db:"courier_id"`
	Status            string     `json:"status" db:"status"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
}

// UpdateTaskStatusRequest represents a courier's status update for a task
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}
