package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// Repository describes persistence for client records.
type Repository interface {
	Create(ctx context.Context, c Client) (int64, error)
	Get(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context, req ListClientsRequest) ([]Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id int64) error
}

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const clientColumns = `id, group_id, company_id, code, name, email, phone, city, country, is_active, created_by, created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.GroupID, &c.CompanyID, &c.Code, &c.Name, &c.Email, &c.Phone,
		&c.City, &c.Country, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a client row and returns its id.
func (r *PGRepository) Create(ctx context.Context, c Client) (int64, error) {
	const query = `
		INSERT INTO clients (group_id, company_id, code, name, email, phone, city, country, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.GroupID, c.CompanyID, c.Code, c.Name, c.Email, c.Phone, c.City, c.Country, c.CreatedBy,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, shared.ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// Get fetches a client by id regardless of tenant; scope is the service's
// concern, after the fetch.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Client, error) {
	return scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
}

// List returns clients owned by the request's group, newest first.
func (r *PGRepository) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE group_id = $1
		  AND ($2::bigint IS NULL OR company_id = $2)
		  AND ($3::boolean IS NULL OR is_active = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, query, req.GroupID, req.CompanyID, req.IsActive, limit, req.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update persists mutable client fields.
func (r *PGRepository) Update(ctx context.Context, c Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, city = $5, country = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.Name, c.Email, c.Phone, c.City, c.Country, c.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a client row.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
