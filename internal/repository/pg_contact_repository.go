package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanostack/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
// There is intentionally no update method: stored messages are read-only.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactColumns = `id, name, email, COALESCE(phone, ''), subject, message, COALESCE(ip_address, ''), created_at`

// Save inserts a new contact_messages row and populates msg.ID and CreatedAt
// from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, phone, subject, message, ip_address)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))
		 RETURNING id, created_at`,
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.IPAddress,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// List returns contact messages newest first, paginated by limit/offset.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+`
		 FROM contact_messages
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetByID returns a single message or ErrNotFound.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	m, err := scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

// Delete removes a message. Returns ErrNotFound when no row matched.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id))
}

// Count returns the total number of stored messages.
func (r *PgContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IPAddress, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
