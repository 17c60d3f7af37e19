package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type PrepaymentRepository interface {
	Create(ctx context.Context, p *models.Prepayment) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Prepayment, error)

	// ListByContractFIFO returns the contract's prepayments ordered by
	// date ascending (oldest first), with consumed/balance derived from
	// the consumption links.
	ListByContractFIFO(ctx context.Context, contractID uuid.UUID) ([]*models.Prepayment, error)

	// BalanceCents is the contract's available advance balance:
	// sum(amount) - sum(consumed) across all its prepayments.
	BalanceCents(ctx context.Context, contractID uuid.UUID) (int64, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type prepaymentRepo struct {
	db DB
}

func NewPrepaymentRepository(db DB) PrepaymentRepository {
	return &prepaymentRepo{db: db}
}

func (r *prepaymentRepo) Create(ctx context.Context, p *models.Prepayment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO prepayments (
			id, contract_id, date, months, amount_cents, currency,
			description, invoice_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
	`, p.ID, p.ContractID, p.Date.Format("2006-01-02"), p.Months,
		p.AmountCents, p.Currency, p.Description, p.InvoiceID)
	return err
}

func (r *prepaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Prepayment, error) {
	row := r.db.QueryRow(ctx, baseSelectPrepayment()+" WHERE p.id=$1", id)
	return scanPrepayment(row)
}

func (r *prepaymentRepo) ListByContractFIFO(ctx context.Context, contractID uuid.UUID) ([]*models.Prepayment, error) {
	rows, err := r.db.Query(ctx, baseSelectPrepayment()+` WHERE p.contract_id=$1 ORDER BY p.date ASC, p.created_at ASC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Prepayment
	for rows.Next() {
		p, err := scanPrepayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *prepaymentRepo) BalanceCents(ctx context.Context, contractID uuid.UUID) (int64, error) {
	var total, consumed int64
	row := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.amount_cents),0),
		       COALESCE((SELECT SUM(c.amount_cents)
		                 FROM prepayment_consumptions c
		                 WHERE c.contract_id=$1),0)
		FROM prepayments p
		WHERE p.contract_id=$1
	`, contractID)
	if err := row.Scan(&total, &consumed); err != nil {
		return 0, err
	}
	return total - consumed, nil
}

func (r *prepaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM prepayments WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

// Consumed and balance are derived on read so any change to a
// prepayment's links is reflected immediately.
func baseSelectPrepayment() string {
	return `
		SELECT p.id, p.contract_id, p.date, p.months, p.amount_cents, p.currency,
		p.description, p.invoice_id, p.created_at,
		COALESCE((SELECT SUM(c.amount_cents)
		          FROM prepayment_consumptions c
		          WHERE c.prepayment_id = p.id),0) AS consumed
		FROM prepayments p`
}

func scanPrepayment(row pgx.Row) (*models.Prepayment, error) {
	var p models.Prepayment
	if err := row.Scan(
		&p.ID, &p.ContractID, &p.Date, &p.Months, &p.AmountCents, &p.Currency,
		&p.Description, &p.InvoiceID, &p.CreatedAt, &p.AmountConsumedCents,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.BalanceCents = p.AmountCents - p.AmountConsumedCents
	return &p, nil
}
