package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/repository"
)

// ErrInvalidCredentials is returned for a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotSuperuser is returned when a valid account is not allowed into the panel.
var ErrNotSuperuser = errors.New("not a superuser")

// AdminAuthService authenticates back-office accounts.
type AdminAuthService interface {
	Authenticate(ctx context.Context, username, password string) (*model.AdminUser, error)
	IsSuperuser(ctx context.Context, userID string) (bool, error)
	CreateSuperuser(ctx context.Context, username, password string) (*model.AdminUser, error)
}

type adminAuthServiceImpl struct {
	repo repository.AdminUserRepository
}

// NewAdminAuthService creates an AdminAuthService backed by the given repository.
func NewAdminAuthService(repo repository.AdminUserRepository) AdminAuthService {
	return &adminAuthServiceImpl{repo: repo}
}

// Authenticate checks the password and requires the superuser flag.
func (s *adminAuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*model.AdminUser, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsSuperuser {
		return nil, ErrNotSuperuser
	}
	return u, nil
}

// IsSuperuser reports whether userID refers to an existing superuser.
func (s *adminAuthServiceImpl) IsSuperuser(ctx context.Context, userID string) (bool, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsSuperuser, nil
}

// CreateSuperuser hashes password and stores (or resets) a superuser account.
func (s *adminAuthServiceImpl) CreateSuperuser(ctx context.Context, username, password string) (*model.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, errors.New("username is required and password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.AdminUser{Username: username, PasswordHash: string(hash), IsSuperuser: true}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
