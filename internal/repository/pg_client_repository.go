package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanostack/backend/internal/model"
)

// ClientRepository defines the persistence interface for clients.
type ClientRepository interface {
	List(ctx context.Context) ([]*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PgClientRepository is the PostgreSQL implementation of ClientRepository.
type PgClientRepository struct {
	pool *pgxpool.Pool
}

// NewPgClientRepository creates a PgClientRepository backed by the given pool.
func NewPgClientRepository(pool *pgxpool.Pool) *PgClientRepository {
	return &PgClientRepository{pool: pool}
}

var _ ClientRepository = (*PgClientRepository)(nil)

const clientColumns = `id, name, COALESCE(company, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(notes, ''), created_at, updated_at`

// List returns all clients ordered by name.
func (r *PgClientRepository) List(ctx context.Context) ([]*model.Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetByID returns a client or ErrNotFound.
func (r *PgClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// Create inserts a client and fills in ID and timestamps.
func (r *PgClientRepository) Create(ctx context.Context, c *model.Client) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO clients (name, company, email, phone, address, notes)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Company, c.Email, c.Phone, c.Address, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites the editable fields of a client.
func (r *PgClientRepository) Update(ctx context.Context, c *model.Client) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE clients
		 SET name = $2, company = NULLIF($3, ''), email = NULLIF($4, ''), phone = NULLIF($5, ''),
		     address = NULLIF($6, ''), notes = NULLIF($7, ''), updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapErr(err)
}

// Delete removes a client. Its projects are removed by the ON DELETE CASCADE constraint.
func (r *PgClientRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id))
}

// Count returns the number of clients.
func (r *PgClientRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

func scanClient(row rowScanner) (*model.Client, error) {
	var c model.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
