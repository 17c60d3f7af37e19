package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type InvoiceRepository interface {
	// CreateIfNotExists inserts the invoice unless one already exists for
	// the same tenant/building/unit/period (outbound invoices only). Two
	// concurrent daily passes cannot create duplicate month invoices.
	CreateIfNotExists(ctx context.Context, inv *models.Invoice) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)

	// FindMonthInvoice returns the latest outbound invoice for the
	// tenant/building/unit whose invoice date falls within [first,last].
	FindMonthInvoice(ctx context.Context, tenantID, bldgID, unitID uuid.UUID, first, last time.Time) (*models.Invoice, error)

	ListByTags(ctx context.Context, tenantID, bldgID, unitID uuid.UUID) ([]*models.Invoice, error)

	AddLine(ctx context.Context, line *models.InvoiceLine) error
	ListLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, error)

	// RecomputeTotals re-derives the draft's total (and residual) from
	// its lines and returns the fresh invoice.
	RecomputeTotals(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)

	// Post transitions DRAFT → POSTED; at a zero total the invoice is
	// immediately paid-equivalent.
	Post(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)
}

/* ───────────── implementation ───────────── */

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepository(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) CreateIfNotExists(ctx context.Context, inv *models.Invoice) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoices (
			id, move_type, state, tenant_id, company_id, currency,
			invoice_date, period_month, building_id, unit_id, floor, unit_number, owner_id,
			amount_total_cents, amount_residual_cents,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,0,0, NOW(), NOW(), 1)
		ON CONFLICT (tenant_id, building_id, unit_id, period_month)
			WHERE move_type='OUT_INVOICE'
		DO NOTHING
	`, inv.ID, inv.MoveType, inv.State, inv.TenantID, inv.CompanyID, inv.Currency,
		inv.InvoiceDate.Format("2006-01-02"), inv.PeriodMonth.Format("2006-01-02"),
		inv.BuildingID, inv.UnitID, inv.Floor, inv.UnitNumber, inv.OwnerID)
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	row := r.db.QueryRow(ctx, baseSelectInvoice()+" WHERE id=$1", id)
	return scanInvoice(row)
}

func (r *invoiceRepo) FindMonthInvoice(ctx context.Context, tenantID, bldgID, unitID uuid.UUID, first, last time.Time) (*models.Invoice, error) {
	q := baseSelectInvoice() + `
		WHERE move_type='OUT_INVOICE'
		  AND tenant_id=$1 AND building_id=$2 AND unit_id=$3
		  AND invoice_date >= $4 AND invoice_date <= $5
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, q, tenantID, bldgID, unitID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	return scanInvoice(row)
}

func (r *invoiceRepo) ListByTags(ctx context.Context, tenantID, bldgID, unitID uuid.UUID) ([]*models.Invoice, error) {
	q := baseSelectInvoice() + `
		WHERE move_type='OUT_INVOICE'
		  AND tenant_id=$1 AND building_id=$2 AND unit_id=$3
		ORDER BY invoice_date DESC
	`
	rows, err := r.db.Query(ctx, q, tenantID, bldgID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invoiceRepo) AddLine(ctx context.Context, line *models.InvoiceLine) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoice_lines (
			id, invoice_id, description, quantity, price_unit_cents, account_code, tax_applied, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
	`, line.ID, line.InvoiceID, line.Description, line.Quantity,
		line.PriceUnitCents, line.AccountCode, line.TaxApplied)
	return err
}

func (r *invoiceRepo) ListLines(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, description, quantity, price_unit_cents, account_code, tax_applied, created_at
		FROM invoice_lines
		WHERE invoice_id=$1
		ORDER BY created_at
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InvoiceLine
	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Description, &l.Quantity,
			&l.PriceUnitCents, &l.AccountCode, &l.TaxApplied, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *invoiceRepo) RecomputeTotals(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	_, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET amount_total_cents = sub.total,
		    amount_residual_cents = CASE WHEN state='DRAFT' THEN sub.total ELSE amount_residual_cents END,
		    row_version = row_version+1,
		    updated_at = NOW()
		FROM (
			SELECT COALESCE(SUM(quantity * price_unit_cents),0) AS total
			FROM invoice_lines WHERE invoice_id=$1
		) sub
		WHERE id=$1
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, invoiceID)
}

func (r *invoiceRepo) Post(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET state='POSTED',
		    posted_at=NOW(),
		    amount_residual_cents=amount_total_cents,
		    row_version=row_version+1,
		    updated_at=NOW()
		WHERE id=$1 AND state='DRAFT'
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, invoiceID)
}

/* ---------- internals ---------- */

func baseSelectInvoice() string {
	return `
		SELECT id, move_type, state, tenant_id, company_id, currency,
		invoice_date, period_month, building_id, unit_id, floor, unit_number, owner_id,
		amount_total_cents, amount_residual_cents,
		posted_at, created_at, updated_at, row_version
		FROM invoices`
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	if err := row.Scan(
		&inv.ID, &inv.MoveType, &inv.State, &inv.TenantID, &inv.CompanyID, &inv.Currency,
		&inv.InvoiceDate, &inv.PeriodMonth, &inv.BuildingID, &inv.UnitID, &inv.Floor, &inv.UnitNumber, &inv.OwnerID,
		&inv.AmountTotalCents, &inv.AmountResidualCents,
		&inv.PostedAt, &inv.CreatedAt, &inv.UpdatedAt, &inv.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}
