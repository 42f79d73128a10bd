package services

import (
	"context"
	"fmt"
	"log"

	"aid-backend/internal/models"
)

type alertStore interface {
	Create(ctx context.Context, a *models.Alert) error
	List(ctx context.Context) ([]models.Alert, error)
	HasUnreadOfType(ctx context.Context, alertType string) (bool, error)
	MarkRead(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	CountUnread(ctx context.Context) (int, error)
}

type pendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

type AlertService struct {
	alerts   alertStore
	requests pendingCounter
	events   EventPublisher
}

func NewAlertService(alerts alertStore, requests pendingCounter, events EventPublisher) *AlertService {
	return &AlertService{alerts: alerts, requests: requests, events: events}
}

// Derive re-evaluates the pending-requests rule after a request mutation:
// when pending requests exist and no unread pending_requests alert does,
// exactly one alert is created. Every other state is a no-op, so the rule
// never stacks duplicate alerts.
func (s *AlertService) Derive(ctx context.Context) error {
	pending, err := s.requests.CountPending(ctx)
	if err != nil {
		return err
	}
	if pending == 0 {
		return nil
	}

	exists, err := s.alerts.HasUnreadOfType(ctx, models.AlertPendingRequests)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	alert := &models.Alert{
		Type:        models.AlertPendingRequests,
		Title:       "Pending distribution requests",
		Description: fmt.Sprintf("%d distribution requests are awaiting review", pending),
		Priority:    models.PriorityHigh,
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return err
	}
	log.Printf("[AlertService] derived pending_requests alert (%d pending)", pending)
	publish(s.events, "alert_created", alert)
	return nil
}

// List retrieves all alerts, newest first
func (s *AlertService) List(ctx context.Context) ([]models.Alert, error) {
	return s.alerts.List(ctx)
}

// MarkRead marks an alert as read, allowing the rule to fire again later
func (s *AlertService) MarkRead(ctx context.Context, id int) error {
	return s.alerts.MarkRead(ctx, id)
}

// Delete removes an alert
func (s *AlertService) Delete(ctx context.Context, id int) error {
	return s.alerts.Delete(ctx, id)
}

// CountUnread returns the number of unread alerts
func (s *AlertService) CountUnread(ctx context.Context) (int, error) {
	return s.alerts.CountUnread(ctx)
}
