package services

import (
	"context"

	"aid-backend/internal/models"
)

type statsBeneficiaryStore interface {
	Stats(ctx context.Context) (*models.BeneficiaryStats, error)
}

type statsRequestStore interface {
	Stats(ctx context.Context) (*models.RequestStats, error)
}

type statsTaskStore interface {
	Counts(ctx context.Context) (total, delivered int, err error)
}

type statsCourierStore interface {
	CountActive(ctx context.Context) (int, error)
}

type statsTemplateStore interface {
	CountActive(ctx context.Context) (int, error)
}

type statsAlertStore interface {
	CountUnread(ctx context.Context) (int, error)
}

// StatisticsService assembles the dashboard aggregate. Every figure is a
// fresh SQL fold; nothing here is cached or stored.
type StatisticsService struct {
	beneficiaries statsBeneficiaryStore
	requests      statsRequestStore
	tasks         statsTaskStore
	couriers      statsCourierStore
	templates     statsTemplateStore
	alerts        statsAlertStore
}

func NewStatisticsService(
	beneficiaries statsBeneficiaryStore,
	requests statsRequestStore,
	tasks statsTaskStore,
	couriers statsCourierStore,
	templates statsTemplateStore,
	alerts statsAlertStore,
) *StatisticsService {
	return &StatisticsService{
		beneficiaries: beneficiaries,
		requests:      requests,
		tasks:         tasks,
		couriers:      couriers,
		templates:     templates,
		alerts:        alerts,
	}
}

// Dashboard computes the single-call aggregate for the admin dashboard
func (s *StatisticsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	beneficiaryStats, err := s.beneficiaries.Stats(ctx)
	if err != nil {
		return nil, err
	}
	requestStats, err := s.requests.Stats(ctx)
	if err != nil {
		return nil, err
	}
	tasksTotal, tasksDelivered, err := s.tasks.Counts(ctx)
	if err != nil {
		return nil, err
	}
	activeCouriers, err := s.couriers.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	activeTemplates, err := s.templates.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	unreadAlerts, err := s.alerts.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		Beneficiaries:    *beneficiaryStats,
		Requests:         *requestStats,
		TasksTotal:       tasksTotal,
		TasksDelivered:   tasksDelivered,
		ActiveCouriers:   activeCouriers,
		ActiveTemplates:  activeTemplates,
		UnreadAlerts:     unreadAlerts,
		TotalDistributed: tasksDelivered,
	}
	if tasksTotal > 0 {
		stats.DeliveryRate = float64(tasksDelivered) / float64(tasksTotal)
	}
	return stats, nil
}
