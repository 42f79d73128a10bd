package models

import "time"

// Identity verification statuses
const (
	IdentityPending  = "pending"
	IdentityVerified = "verified"
	IdentityRejected = "rejected"
)

// Account statuses
const (
	AccountActive    = "active"
	AccountPending   = "pending"
	AccountSuspended = "suspended"
)

type Beneficiary struct {
	ID               int        `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	NationalID       string     `json:"national_id" db:"national_id"`
	Governorate      string     `json:"governorate" db:"governorate"`
	City             string     `json:"city" db:"city"`
	District         string     `json:"district" db:"district"`
	Street           *string    `json:"street,omitempty" db:"street"`
	Lat              *float64   `json:"lat,omitempty" db:"lat"`
	Lon              *float64   `json:"lon,omitempty" db:"lon"`
	OrganizationID   *int       `json:"organization_id,omitempty" db:"organization_id"`
	FamilyID         *int       `json:"family_id,omitempty" db:"family_id"`
	IdentityStatus   string     `json:"identity_status" db:"identity_status"`
	AccountStatus    string     `json:"account_status" db:"account_status"`
	PackagesReceived int        `json:"packages_received" db:"packages_received"`
	LastReceivedAt   *time.Time `json:"last_received_at,omitempty" db:"last_received_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateBeneficiaryRequest represents the request body for registering a beneficiary
type CreateBeneficiaryRequest struct {
	Name           string   `json:"name"`
	NationalID     string   `json:"national_id"`
	Governorate    string   `json:"governorate"`
	City           string   `json:"city"`
	District       string   `json:"district"`
	Street         string   `json:"street"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	OrganizationID *int     `json:"organization_id"`
	FamilyID       *int     `json:"family_id"`
}

// UpdateBeneficiaryRequest represents the request body for editing a beneficiary
type UpdateBeneficiaryRequest struct {
	Name        string   `json:"name"`
	Governorate string   `json:"governorate"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Street      string   `json:"street"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// VerifyIdentityRequest sets the result of an identity review
type VerifyIdentityRequest struct {
	Status string `json:"status"` // "verified" or "rejected"
	Notes  string `json:"notes"`
}

// AreaFilter selects beneficiaries by address fields; empty fields are wildcards
type AreaFilter struct {
	Governorate string `json:"governorate"`
	City        string `json:"city"`
	District    string `json:"district"`
}
