package models

import "time"

// Alert types. AlertPendingRequests is system-synthesized, never user-authored.
const (
	AlertPendingRequests = "pending_requests"
)

type Alert struct {
	ID          int       `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	RelatedID   *int      `json:"related_id,omitempty" db:"related_id"`
	RelatedType *string   `json:"related_type,omitempty" db:"related_type"`
	Priority    string    `json:"priority" db:"priority"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
