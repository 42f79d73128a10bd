package models

import "time"

// Request statuses. pending -> approved|rejected; approved -> in_progress -> completed.
// rejected and completed are terminal.
const (
	RequestPending    = "pending"
	RequestApproved   = "approved"
	RequestRejected   = "rejected"
	RequestInProgress = "in_progress"
	RequestCompleted  = "completed"
)

// Request types
const (
	RequestIndividual = "individual"
	RequestBulk       = "bulk"
	RequestFamilyBulk = "family_bulk"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Requester types
const (
	RequesterOrganization = "organization"
	RequesterFamily       = "family"
	RequesterAdmin        = "admin"
)

type DistributionRequest struct {
	ID                int        `json:"id" db:"id"`
	RequesterID       int        `json:"requester_id" db:"requester_id"`
	RequesterType     string     `json:"requester_type" db:"requester_type"`
	RequesterName     string     `json:"requester_name" db:"requester_name"`
	Type              string     `json:"type" db:"type"`
	Priority          string     `json:"priority" db:"priority"`
	PackageTemplateID int        `json:"package_template_id" db:"package_template_id"`
	RequestedQuantity int        `json:"requested_quantity" db:"requested_quantity"`
	ApprovedQuantity  *int       `json:"approved_quantity,omitempty" db:"approved_quantity"`
	BeneficiaryIDs    []int      `json:"beneficiary_ids,omitempty" db:"beneficiary_ids"`
	TargetGovernorate *string    `json:"target_governorate,omitempty" db:"target_governorate"`
	TargetCity        *string    `json:"target_city,omitempty" db:"target_city"`
	TargetDistrict    *string    `json:"target_district,omitempty" db:"target_district"`
	Status            string     `json:"status" db:"status"`
	EstimatedCost     float64    `json:"estimated_cost" db:"estimated_cost"`
	EstimatedDelivery string     `json:"estimated_delivery_time" db:"estimated_delivery_time"`
	AssignedCourierID *int       `json:"assigned_courier_id,omitempty" db:"assigned_courier_id"`
	AdminNotes        *string    `json:"admin_notes,omitempty" db:"admin_notes"`
	ApprovedBy        *int       `json:"approved_by,omitempty" db:"approved_by"`
	ApprovalDate      *time.Time `json:"approval_date,omitempty" db:"approval_date"`
	RejectionReason   *string    `json:"rejection_reason,omitempty" db:"rejection_reason"`
	RequestDate       time.Time  `json:"request_date" db:"request_date"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`

	// IDs of tasks generated at approval time; loaded from the tasks table
	GeneratedTaskIDs []int `json:"generated_task_ids,omitempty" db:"-"`
}

// CreateDistributionRequest represents the request body for submitting a distribution request
type CreateDistributionRequest struct {
	RequesterID       int    `json:"requester_id"`
	RequesterType     string `json:"requester_type"`
	RequesterName     string `json:"requester_name"`
	Type              string `json:"type"`
	Priority          string `json:"priority"`
	PackageTemplateID int    `json:"package_template_id"`
	RequestedQuantity int    `json:"requested_quantity"`
	BeneficiaryIDs    []int  `json:"beneficiary_ids"`
	TargetGovernorate string `json:"target_governorate"`
	TargetCity        string `json:"target_city"`
	TargetDistrict    string `json:"target_district"`
	Notes             string `json:"notes"`
}

// ApproveDistributionRequest represents the admin approval body
type ApproveDistributionRequest struct {
	ApprovedQuantity int    `json:"approved_quantity"`
	CourierID        int    `json:"courier_id"`
	AdminNotes       string `json:"admin_notes"`
}

// RejectDistributionRequest represents the admin rejection body
type RejectDistributionRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// RequestFilter narrows request listings; zero values are wildcards
type RequestFilter struct {
	Status   string `json:"status"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Search   string `json:"search"` // matches requester name, request id, template name
}

// RequestStats aggregates counts per status and priority, computed on demand
type RequestStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}
