package invoices

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arbarak/nexagestion-sub003/internal/platform/db"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// Repository describes persistence for invoices.
type Repository interface {
	Create(ctx context.Context, inv Invoice) (int64, error)
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error)
	Update(ctx context.Context, inv Invoice) error
}

// PGRepository provides PostgreSQL backed persistence.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const invoiceColumns = `id, group_id, company_id, client_id, doc_number, status, currency, total_amount, notes, created_by, approved_by, approved_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.GroupID, &inv.CompanyID, &inv.ClientID, &inv.DocNumber,
		&inv.Status, &inv.Currency, &inv.TotalAmount, &inv.Notes, &inv.CreatedBy,
		&inv.ApprovedBy, &inv.ApprovedAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Create inserts a draft invoice and returns its id.
func (r *PGRepository) Create(ctx context.Context, inv Invoice) (int64, error) {
	const query = `
		INSERT INTO invoices (group_id, company_id, client_id, doc_number, status, currency, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		inv.GroupID, inv.CompanyID, inv.ClientID, inv.DocNumber, inv.Status,
		inv.Currency, inv.TotalAmount, inv.Notes, inv.CreatedBy,
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

// Get fetches an invoice by id regardless of tenant; scope is checked by the
// service after the fetch.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

// List returns invoices owned by the request's group, newest first.
func (r *PGRepository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error) {
	const query = `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE group_id = $1
		  AND ($2::bigint IS NULL OR company_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, query, req.GroupID, req.CompanyID, req.Status, limit, req.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// Update persists mutable invoice fields including status transitions. The
// approve transition re-checks the stored status under a row lock so two
// concurrent approvals cannot both land.
func (r *PGRepository) Update(ctx context.Context, inv Invoice) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if inv.Status == StatusApproved {
			var current InvoiceStatus
			err := tx.QueryRow(ctx, `SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, inv.ID).Scan(&current)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return shared.ErrNotFound
				}
				return err
			}
			if current != StatusDraft {
				return ErrInvalidStatus
			}
		}
		tag, err := tx.Exec(ctx, `
			UPDATE invoices
			SET client_id = $2, status = $3, currency = $4, total_amount = $5, notes = $6,
			    approved_by = $7, approved_at = $8, updated_at = NOW()
			WHERE id = $1`,
			inv.ID, inv.ClientID, inv.Status, inv.Currency, inv.TotalAmount, inv.Notes,
			inv.ApprovedBy, inv.ApprovedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
