package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

// ConsumptionRepository is insert-only: links are an audit trail and are
// never updated once written.
type ConsumptionRepository interface {
	Create(ctx context.Context, l *models.ConsumptionLink) error

	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*models.ConsumptionLink, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.ConsumptionLink, error)

	// ExistsForInvoice backs the billing pass's double-consumption guard.
	ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error)
}

/* ───────────── implementation ───────────── */

type consumptionRepo struct {
	db DB
}

func NewConsumptionRepository(db DB) ConsumptionRepository {
	return &consumptionRepo{db: db}
}

func (r *consumptionRepo) Create(ctx context.Context, l *models.ConsumptionLink) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO prepayment_consumptions (
			id, contract_id, invoice_id, prepayment_id, amount_cents, currency, created_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
	`, l.ID, l.ContractID, l.InvoiceID, l.PrepaymentID, l.AmountCents, l.Currency)
	return err
}

func (r *consumptionRepo) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*models.ConsumptionLink, error) {
	rows, err := r.db.Query(ctx, baseSelectConsumption()+" WHERE contract_id=$1 ORDER BY created_at", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConsumptions(rows)
}

func (r *consumptionRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*models.ConsumptionLink, error) {
	rows, err := r.db.Query(ctx, baseSelectConsumption()+" WHERE invoice_id=$1 ORDER BY created_at", invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConsumptions(rows)
}

func (r *consumptionRepo) ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM prepayment_consumptions WHERE invoice_id=$1`, invoiceID)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

/* ---------- internals ---------- */

func baseSelectConsumption() string {
	return `
		SELECT id, contract_id, invoice_id, prepayment_id, amount_cents, currency, created_at
		FROM prepayment_consumptions`
}

func scanConsumption(row pgx.Row) (*models.ConsumptionLink, error) {
	var l models.ConsumptionLink
	if err := row.Scan(
		&l.ID, &l.ContractID, &l.InvoiceID, &l.PrepaymentID,
		&l.AmountCents, &l.Currency, &l.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func scanConsumptions(rows pgx.Rows) ([]*models.ConsumptionLink, error) {
	var out []*models.ConsumptionLink
	for rows.Next() {
		l, err := scanConsumption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
