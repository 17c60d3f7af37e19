package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type UtilityRepository interface {
	CreateType(ctx context.Context, t *models.UtilityType) error
	GetType(ctx context.Context, id uuid.UUID) (*models.UtilityType, error)
	ListTypes(ctx context.Context) ([]*models.UtilityType, error)

	CreateExpense(ctx context.Context, e *models.UtilityExpense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*models.UtilityExpense, error)
	ListExpensesByContract(ctx context.Context, contractID uuid.UUID) ([]*models.UtilityExpense, error)

	// MarkBilled links the expense to the invoice that carries its line;
	// only draft expenses transition.
	MarkBilled(ctx context.Context, id, invoiceID uuid.UUID) (bool, error)
}

/* ───────────── implementation ───────────── */

type utilityRepo struct {
	db DB
}

func NewUtilityRepository(db DB) UtilityRepository {
	return &utilityRepo{db: db}
}

/* ---------- types ---------- */

func (r *utilityRepo) CreateType(ctx context.Context, t *models.UtilityType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO utility_types (id, name, pricing, unit_rate_cents, unit_of_measure, created_at)
		VALUES ($1,$2,$3,$4,$5, NOW())
	`, t.ID, t.Name, t.Pricing, t.UnitRateCents, t.UnitOfMeasure)
	return err
}

func (r *utilityRepo) GetType(ctx context.Context, id uuid.UUID) (*models.UtilityType, error) {
	row := r.db.QueryRow(ctx, baseSelectUtilityType()+" WHERE id=$1", id)
	return scanUtilityType(row)
}

func (r *utilityRepo) ListTypes(ctx context.Context) ([]*models.UtilityType, error) {
	rows, err := r.db.Query(ctx, baseSelectUtilityType()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UtilityType
	for rows.Next() {
		t, err := scanUtilityType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

/* ---------- expenses ---------- */

func (r *utilityRepo) CreateExpense(ctx context.Context, e *models.UtilityExpense) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO utility_expenses (
			id, contract_id, type_id, name, period_start, period_end,
			reading_start, reading_end, amount_cents, currency, notes,
			invoice_id, state, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, NOW())
	`, e.ID, e.ContractID, e.TypeID, e.Name,
		e.PeriodStart.Format("2006-01-02"), e.PeriodEnd.Format("2006-01-02"),
		e.ReadingStart, e.ReadingEnd, e.AmountCents, e.Currency, e.Notes,
		e.InvoiceID, e.State)
	return err
}

func (r *utilityRepo) GetExpense(ctx context.Context, id uuid.UUID) (*models.UtilityExpense, error) {
	row := r.db.QueryRow(ctx, baseSelectUtilityExpense()+" WHERE id=$1", id)
	return scanUtilityExpense(row)
}

func (r *utilityRepo) ListExpensesByContract(ctx context.Context, contractID uuid.UUID) ([]*models.UtilityExpense, error) {
	rows, err := r.db.Query(ctx, baseSelectUtilityExpense()+" WHERE contract_id=$1 ORDER BY period_start", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UtilityExpense
	for rows.Next() {
		e, err := scanUtilityExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *utilityRepo) MarkBilled(ctx context.Context, id, invoiceID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE utility_expenses
		SET state='BILLED', invoice_id=$1
		WHERE id=$2 AND state='DRAFT'
	`, invoiceID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

/* ---------- internals ---------- */

func baseSelectUtilityType() string {
	return `
		SELECT id, name, pricing, unit_rate_cents, unit_of_measure, created_at
		FROM utility_types`
}

func scanUtilityType(row pgx.Row) (*models.UtilityType, error) {
	var t models.UtilityType
	if err := row.Scan(&t.ID, &t.Name, &t.Pricing, &t.UnitRateCents,
		&t.UnitOfMeasure, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func baseSelectUtilityExpense() string {
	return `
		SELECT id, contract_id, type_id, name, period_start, period_end,
		reading_start, reading_end, amount_cents, currency, notes,
		invoice_id, state, created_at
		FROM utility_expenses`
}

func scanUtilityExpense(row pgx.Row) (*models.UtilityExpense, error) {
	var e models.UtilityExpense
	if err := row.Scan(
		&e.ID, &e.ContractID, &e.TypeID, &e.Name, &e.PeriodStart, &e.PeriodEnd,
		&e.ReadingStart, &e.ReadingEnd, &e.AmountCents, &e.Currency, &e.Notes,
		&e.InvoiceID, &e.State, &e.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
