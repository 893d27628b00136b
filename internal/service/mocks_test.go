package service

import (
	"context"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/spam"
)

// ---------------------------------------------------------------------------
// mockContactRepository
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	saveFunc   func(ctx context.Context, msg *model.ContactMessage) error
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	getFunc    func(ctx context.Context, id string) (*model.ContactMessage, error)
	deleteFunc func(ctx context.Context, id string) error
	countFunc  func(ctx context.Context) (int, error)

	saved []*model.ContactMessage
}

func (m *mockContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, msg)
	return nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return len(m.saved), nil
}

// ---------------------------------------------------------------------------
// mockClassifier
// ---------------------------------------------------------------------------

type mockClassifier struct {
	reason spam.Reason
	calls  int
}

func (m *mockClassifier) Classify(sub model.ContactSubmission) spam.Reason {
	m.calls++
	return m.reason
}

// ---------------------------------------------------------------------------
// mockClientProjectRepository
// ---------------------------------------------------------------------------

type mockClientProjectRepository struct {
	listFunc   func(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error)
	getFunc    func(ctx context.Context, id string) (*model.ClientProject, error)
	createFunc func(ctx context.Context, p *model.ClientProject) error
	updateFunc func(ctx context.Context, p *model.ClientProject) error
	deleteFunc func(ctx context.Context, id string) error
	countFunc  func(ctx context.Context) (int, error)
}

func (m *mockClientProjectRepository) List(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockClientProjectRepository) GetByID(ctx context.Context, id string) (*model.ClientProject, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClientProjectRepository) Create(ctx context.Context, p *model.ClientProject) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockClientProjectRepository) Update(ctx context.Context, p *model.ClientProject) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockClientProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockClientProjectRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockClientRepository
// ---------------------------------------------------------------------------

type mockClientRepository struct {
	created []*model.Client
	updated []*model.Client
	count   int
}

func (m *mockClientRepository) List(ctx context.Context) ([]*model.Client, error) {
	return m.created, nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	for _, c := range m.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockClientRepository) Create(ctx context.Context, c *model.Client) error {
	c.ID = "client-1"
	m.created = append(m.created, c)
	return nil
}

func (m *mockClientRepository) Update(ctx context.Context, c *model.Client) error {
	m.updated = append(m.updated, c)
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockClientRepository) Count(ctx context.Context) (int, error) { return m.count, nil }

// ---------------------------------------------------------------------------
// mockAdminUserRepository
// ---------------------------------------------------------------------------

type mockAdminUserRepository struct {
	users map[string]*model.AdminUser // keyed by username
}

func (m *mockAdminUserRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (m *mockAdminUserRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (m *mockAdminUserRepository) Create(ctx context.Context, u *model.AdminUser) error {
	if m.users == nil {
		m.users = make(map[string]*model.AdminUser)
	}
	u.ID = "admin-" + u.Username
	m.users[u.Username] = u
	return nil
}
