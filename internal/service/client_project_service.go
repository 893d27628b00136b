package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/repository"
)

// ErrInvalidClientProject wraps client project validation failures.
var ErrInvalidClientProject = errors.New("invalid client project")

// Amounts are stored as NUMERIC(12,2).
const amountScale = 2

const maxTitleLen = 200

var maxAmount = decimal.New(1, 10)

// ClientProjectService manages the billing ledger.
type ClientProjectService interface {
	List(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error)
	Get(ctx context.Context, id string) (*model.ClientProject, error)
	Create(ctx context.Context, p *model.ClientProject) error
	Update(ctx context.Context, p *model.ClientProject) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type clientProjectServiceImpl struct {
	repo repository.ClientProjectRepository
}

// NewClientProjectService creates a ClientProjectService backed by the given repository.
func NewClientProjectService(repo repository.ClientProjectRepository) ClientProjectService {
	return &clientProjectServiceImpl{repo: repo}
}

// validateClientProject fills defaults and checks enums, amounts and dates.
func validateClientProject(p *model.ClientProject) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidClientProject)
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidClientProject, maxTitleLen)
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidClientProject)
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusInProgress
	}
	if !model.IsValidProjectStatus(p.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidClientProject, p.Status)
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = model.PaymentBankTransfer
	}
	if !model.IsValidPaymentMethod(p.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment_method %q", ErrInvalidClientProject, p.PaymentMethod)
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"total_bill", p.TotalBill},
		{"amount_paid", p.AmountPaid},
		{"expenses", p.Expenses},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidClientProject, f.name)
		}
		if !f.value.Equal(f.value.Round(amountScale)) {
			return fmt.Errorf("%w: %s must have at most %d decimal places", ErrInvalidClientProject, f.name, amountScale)
		}
		if f.value.GreaterThanOrEqual(maxAmount) {
			return fmt.Errorf("%w: %s must be less than %s", ErrInvalidClientProject, f.name, maxAmount)
		}
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidClientProject)
	}
	return nil
}

func (s *clientProjectServiceImpl) List(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error) {
	return s.repo.List(ctx, opts)
}

func (s *clientProjectServiceImpl) Get(ctx context.Context, id string) (*model.ClientProject, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a project. A missing client yields ErrInvalidClientProject.
func (s *clientProjectServiceImpl) Create(ctx context.Context, p *model.ClientProject) error {
	if err := validateClientProject(p); err != nil {
		return err
	}
	return wrapReference(s.repo.Create(ctx, p))
}

func (s *clientProjectServiceImpl) Update(ctx context.Context, p *model.ClientProject) error {
	if err := validateClientProject(p); err != nil {
		return err
	}
	return wrapReference(s.repo.Update(ctx, p))
}

func (s *clientProjectServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *clientProjectServiceImpl) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func wrapReference(err error) error {
	if errors.Is(err, repository.ErrInvalidReference) {
		return fmt.Errorf("%w: client does not exist", ErrInvalidClientProject)
	}
	return err
}
