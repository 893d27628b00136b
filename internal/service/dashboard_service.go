package service

import (
	"context"

	"github.com/nanostack/backend/internal/model"
)

// recentMessageCount is how many messages the dashboard shows.
const recentMessageCount = 5

// Dashboard is the admin landing page payload.
type Dashboard struct {
	Counts         model.DashboardCounts
	RecentMessages []*model.ContactMessage
	Totals         model.FinancialTotals
}

// DashboardService assembles the admin dashboard.
type DashboardService interface {
	Get(ctx context.Context) (*Dashboard, error)
}

type dashboardServiceImpl struct {
	contacts  ContactService
	clients   ClientService
	projects  ClientProjectService
	analytics AnalyticsService
}

// NewDashboardService creates a DashboardService from the per-entity services.
func NewDashboardService(contacts ContactService, clients ClientService, projects ClientProjectService, analytics AnalyticsService) DashboardService {
	return &dashboardServiceImpl{contacts: contacts, clients: clients, projects: projects, analytics: analytics}
}

func (s *dashboardServiceImpl) Get(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Counts.Messages, err = s.contacts.Count(ctx); err != nil {
		return nil, err
	}
	if d.Counts.Clients, err = s.clients.Count(ctx); err != nil {
		return nil, err
	}
	if d.Counts.ClientProjects, err = s.projects.Count(ctx); err != nil {
		return nil, err
	}
	if d.RecentMessages, err = s.contacts.List(ctx, model.ContactListOptions{Limit: recentMessageCount}); err != nil {
		return nil, err
	}
	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, err
	}
	d.Totals = summary.Totals
	return &d, nil
}
