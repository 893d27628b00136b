package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/repository"
)

// AnalyticsService produces the financial summary shown on the admin dashboard.
type AnalyticsService interface {
	Summary(ctx context.Context) (model.FinancialSummary, error)
}

type analyticsServiceImpl struct {
	projects repository.ClientProjectRepository
	loc      *time.Location
}

// NewAnalyticsService creates an AnalyticsService. Months are bucketed in loc.
func NewAnalyticsService(projects repository.ClientProjectRepository, loc *time.Location) AnalyticsService {
	return &analyticsServiceImpl{projects: projects, loc: loc}
}

// Summary loads the whole ledger in a single query and aggregates it, so all
// parts of the summary describe the same snapshot.
func (s *analyticsServiceImpl) Summary(ctx context.Context) (model.FinancialSummary, error) {
	projects, err := s.projects.List(ctx, model.ClientProjectListOptions{})
	if err != nil {
		return model.FinancialSummary{}, fmt.Errorf("load client projects: %w", err)
	}
	return Aggregate(projects, s.loc), nil
}
