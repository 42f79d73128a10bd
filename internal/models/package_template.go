package models

import "time"

// Package categories
const (
	CategoryFood      = "food"
	CategoryMedical   = "medical"
	CategoryClothing  = "clothing"
	CategoryHygiene   = "hygiene"
	CategoryEmergency = "emergency"
)

// ContentItem is one line item inside a package template
type ContentItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type PackageTemplate struct {
	ID            int           `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Category      string        `json:"category" db:"category"`
	Contents      []ContentItem `json:"contents" db:"contents"`
	TotalWeightKg float64       `json:"total_weight_kg" db:"total_weight_kg"`
	EstimatedCost float64       `json:"estimated_cost" db:"estimated_cost"`
	IsActive      bool          `json:"is_active" db:"is_active"`
	UsageCount    int           `json:"usage_count" db:"usage_count"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// CreatePackageTemplateRequest represents the request body for defining a template
type CreatePackageTemplateRequest struct {
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Contents      []ContentItem `json:"contents"`
	TotalWeightKg float64       `json:"total_weight_kg"`
	EstimatedCost float64       `json:"estimated_cost"`
}
