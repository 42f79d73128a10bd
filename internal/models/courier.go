package models

import "time"

// Courier statuses
const (
	CourierActive  = "active"
	CourierBusy    = "busy"
	CourierOffline = "offline"
)

type Courier struct {
	ID                     int       `json:"id" db:"id"`
	Name                   string    `json:"name" db:"name"`
	Phone                  string    `json:"phone" db:"phone"`
	Status                 string    `json:"status" db:"status"`
	IsHumanitarianApproved bool      `json:"is_humanitarian_approved" db:"is_humanitarian_approved"`
	Rating                 float64   `json:"rating" db:"rating"`
	CompletedTasks         int       `json:"completed_tasks" db:"completed_tasks"`
	Lat                    *float64  `json:"lat,omitempty" db:"lat"`
	Lon                    *float64  `json:"lon,omitempty" db:"lon"`
	ServiceAreas           []string  `json:"service_areas" db:"service_areas"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCourierRequest represents the request body for registering a courier
type CreateCourierRequest struct {
	Name                   string   `json:"name"`
	Phone                  string   `json:"phone"`
	IsHumanitarianApproved bool     `json:"is_humanitarian_approved"`
	ServiceAreas           []string `json:"service_areas"`
}

// UpdateCourierStatusRequest updates a courier's availability and position
type UpdateCourierStatusRequest struct {
	Status string   `json:"status"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
}
