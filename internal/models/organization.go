package models

import "time"

type Organization struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Contact   string    `json:"contact" db:"contact"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Derived counts, computed from beneficiaries and tasks at read time.
	// Never written to the organizations table.
	BeneficiariesCount int     `json:"beneficiaries_count,omitempty" db:"-"`
	PackagesCount      int     `json:"packages_count,omitempty" db:"-"`
	CompletionRate     float64 `json:"completion_rate,omitempty" db:"-"`
}

// CreateOrganizationRequest represents the request body for registering an organization
type CreateOrganizationRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
