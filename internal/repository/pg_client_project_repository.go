package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanostack/backend/internal/model"
)

// ClientProjectRepository defines the persistence interface for client projects.
type ClientProjectRepository interface {
	// List returns projects matching opts. A zero opts returns the whole ledger
	// in one statement, which is the snapshot the analytics are computed from.
	List(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error)
	GetByID(ctx context.Context, id string) (*model.ClientProject, error)
	Create(ctx context.Context, p *model.ClientProject) error
	Update(ctx context.Context, p *model.ClientProject) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PgClientProjectRepository is the PostgreSQL implementation of ClientProjectRepository.
type PgClientProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgClientProjectRepository creates a PgClientProjectRepository backed by the given pool.
func NewPgClientProjectRepository(pool *pgxpool.Pool) *PgClientProjectRepository {
	return &PgClientProjectRepository{pool: pool}
}

var _ ClientProjectRepository = (*PgClientProjectRepository)(nil)

const clientProjectSelect = `SELECT p.id, p.client_id, c.name, p.title, COALESCE(p.description, ''), p.status,
	p.total_bill, p.amount_paid, p.expenses, p.start_date, p.end_date, p.delivered_date,
	p.payment_method, p.created_at, p.updated_at
	FROM client_projects p
	JOIN clients c ON c.id = p.client_id`

// List returns client projects newest first, optionally filtered by client and status.
func (r *PgClientProjectRepository) List(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error) {
	var conditions []string
	var args []any

	if id := strings.TrimSpace(opts.ClientID); id != "" {
		args = append(args, id)
		conditions = append(conditions, "p.client_id = $"+strconv.Itoa(len(args)))
	}
	if status := strings.TrimSpace(opts.Status); status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "p.status = $"+strconv.Itoa(len(args)))
	}

	query := clientProjectSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var projects []*model.ClientProject
	for rows.Next() {
		p, err := scanClientProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return projects, nil
}

// GetByID returns a project or ErrNotFound.
func (r *PgClientProjectRepository) GetByID(ctx context.Context, id string) (*model.ClientProject, error) {
	p, err := scanClientProject(r.pool.QueryRow(ctx, clientProjectSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// Create inserts a project and fills in ID and timestamps.
// Returns ErrInvalidReference when the client does not exist.
func (r *PgClientProjectRepository) Create(ctx context.Context, p *model.ClientProject) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO client_projects (client_id, title, description, status, total_bill, amount_paid, expenses,
		                              start_date, end_date, delivered_date, payment_method)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		p.ClientID, p.Title, p.Description, p.Status, p.TotalBill, p.AmountPaid, p.Expenses,
		p.StartDate, p.EndDate, p.DeliveredDate, p.PaymentMethod,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapErr(err)
}

// Update overwrites the editable fields of a project. created_at is never changed.
func (r *PgClientProjectRepository) Update(ctx context.Context, p *model.ClientProject) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE client_projects
		 SET client_id = $2, title = $3, description = NULLIF($4, ''), status = $5,
		     total_bill = $6, amount_paid = $7, expenses = $8,
		     start_date = $9, end_date = $10, delivered_date = $11, payment_method = $12,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		p.ID, p.ClientID, p.Title, p.Description, p.Status, p.TotalBill, p.AmountPaid, p.Expenses,
		p.StartDate, p.EndDate, p.DeliveredDate, p.PaymentMethod,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapErr(err)
}

// Delete removes a project.
func (r *PgClientProjectRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM client_projects WHERE id = $1`, id))
}

// Count returns the number of client projects.
func (r *PgClientProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client_projects`).Scan(&n)
	return n, err
}

func scanClientProject(row rowScanner) (*model.ClientProject, error) {
	var p model.ClientProject
	if err := row.Scan(&p.ID, &p.ClientID, &p.ClientName, &p.Title, &p.Description, &p.Status,
		&p.TotalBill, &p.AmountPaid, &p.Expenses, &p.StartDate, &p.EndDate, &p.DeliveredDate,
		&p.PaymentMethod, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
