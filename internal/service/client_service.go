package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/repository"
)

// ErrInvalidClient wraps client validation failures.
var ErrInvalidClient = errors.New("invalid client")

// Column limits of the clients table.
const (
	maxClientNameLen  = 200
	maxClientPhoneLen = 20
)

// ClientService manages agency clients.
type ClientService interface {
	List(ctx context.Context) ([]*model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type clientServiceImpl struct {
	repo repository.ClientRepository
}

// NewClientService creates a ClientService backed by the given repository.
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientServiceImpl{repo: repo}
}

func validateClient(c *model.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	if utf8.RuneCountInString(c.Name) > maxClientNameLen {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidClient, maxClientNameLen)
	}
	if utf8.RuneCountInString(c.Phone) > maxClientPhoneLen {
		return fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidClient, maxClientPhoneLen)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: email is not valid", ErrInvalidClient)
		}
	}
	return nil
}

func (s *clientServiceImpl) List(ctx context.Context) ([]*model.Client, error) {
	return s.repo.List(ctx)
}

func (s *clientServiceImpl) Get(ctx context.Context, id string) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *clientServiceImpl) Create(ctx context.Context, c *model.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

func (s *clientServiceImpl) Update(ctx context.Context, c *model.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *clientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *clientServiceImpl) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
