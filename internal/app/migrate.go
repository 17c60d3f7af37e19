package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/rental-service/internal/utils"
)

// Migrate applies the schema idempotently on startup. Statements are
// ordered by dependency; each is safe to re-run.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS partners (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			is_property_owner BOOLEAN NOT NULL DEFAULT FALSE,
			building_id UUID,
			unit_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS buildings (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL DEFAULT '',
			street TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			company_id UUID NOT NULL,
			owner_id UUID REFERENCES partners(id),
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			time_zone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			row_version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS units (
			id UUID PRIMARY KEY,
			building_id UUID NOT NULL REFERENCES buildings(id),
			name TEXT NOT NULL DEFAULT '',
			floor INT NOT NULL DEFAULT 0,
			unit_number TEXT NOT NULL DEFAULT '',
			owner_id UUID REFERENCES partners(id),
			effective_owner_id UUID REFERENCES partners(id),
			tenant_id UUID REFERENCES partners(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			row_version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS contracts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			tenant_id UUID NOT NULL REFERENCES partners(id),
			building_id UUID NOT NULL REFERENCES buildings(id),
			unit_id UUID NOT NULL REFERENCES units(id),
			company_id UUID NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			responsible_user_id UUID REFERENCES users(id),
			owner_id UUID REFERENCES partners(id),
			amount_cents BIGINT NOT NULL,
			recurrence TEXT NOT NULL DEFAULT 'MONTH',
			start_date DATE,
			end_date DATE,
			state TEXT NOT NULL DEFAULT 'DRAFT',
			rent_due_day INT NOT NULL DEFAULT 1,
			last_due_activity_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			row_version BIGINT NOT NULL DEFAULT 1,
			CONSTRAINT uq_contracts_unit_state UNIQUE (unit_id, state)
		)`,

		`CREATE TABLE IF NOT EXISTS prepayments (
			id UUID PRIMARY KEY,
			contract_id UUID NOT NULL REFERENCES contracts(id),
			date DATE NOT NULL,
			months INT NOT NULL,
			amount_cents BIGINT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			description TEXT NOT NULL DEFAULT '',
			invoice_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY,
			move_type TEXT NOT NULL DEFAULT 'OUT_INVOICE',
			state TEXT NOT NULL DEFAULT 'DRAFT',
			tenant_id UUID NOT NULL REFERENCES partners(id),
			company_id UUID NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			invoice_date DATE NOT NULL,
			period_month DATE NOT NULL,
			building_id UUID NOT NULL REFERENCES buildings(id),
			unit_id UUID NOT NULL REFERENCES units(id),
			floor INT NOT NULL DEFAULT 0,
			unit_number TEXT NOT NULL DEFAULT '',
			owner_id UUID REFERENCES partners(id),
			amount_total_cents BIGINT NOT NULL DEFAULT 0,
			amount_residual_cents BIGINT NOT NULL DEFAULT 0,
			posted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			row_version BIGINT NOT NULL DEFAULT 1
		)`,

		// One rent invoice per tenant/building/unit/month; the billing
		// pass upserts against this index.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_invoices_period
			ON invoices (tenant_id, building_id, unit_id, period_month)
			WHERE move_type='OUT_INVOICE'`,

		`CREATE TABLE IF NOT EXISTS invoice_lines (
			id UUID PRIMARY KEY,
			invoice_id UUID NOT NULL REFERENCES invoices(id),
			description TEXT NOT NULL DEFAULT '',
			quantity BIGINT NOT NULL DEFAULT 1,
			price_unit_cents BIGINT NOT NULL,
			account_code TEXT NOT NULL DEFAULT '',
			tax_applied BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS prepayment_consumptions (
			id UUID PRIMARY KEY,
			contract_id UUID NOT NULL REFERENCES contracts(id),
			invoice_id UUID NOT NULL REFERENCES invoices(id),
			prepayment_id UUID NOT NULL REFERENCES prepayments(id),
			amount_cents BIGINT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS activities (
			id UUID PRIMARY KEY,
			user_id UUID REFERENCES users(id),
			contract_id UUID NOT NULL REFERENCES contracts(id),
			deadline DATE NOT NULL,
			summary TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS utility_types (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			pricing TEXT NOT NULL DEFAULT 'FIXED',
			unit_rate_cents BIGINT NOT NULL DEFAULT 0,
			unit_of_measure TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS utility_expenses (
			id UUID PRIMARY KEY,
			contract_id UUID NOT NULL REFERENCES contracts(id),
			type_id UUID NOT NULL REFERENCES utility_types(id),
			name TEXT NOT NULL DEFAULT '',
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			reading_start DOUBLE PRECISION NOT NULL DEFAULT 0,
			reading_end DOUBLE PRECISION NOT NULL DEFAULT 0,
			amount_cents BIGINT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			notes TEXT NOT NULL DEFAULT '',
			invoice_id UUID REFERENCES invoices(id),
			state TEXT NOT NULL DEFAULT 'DRAFT',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_contracts_due
			ON contracts (building_id, state, rent_due_day)`,
		`CREATE INDEX IF NOT EXISTS idx_prepayments_contract
			ON prepayments (contract_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_consumptions_invoice
			ON prepayment_consumptions (invoice_id)`,
		`CREATE INDEX IF NOT EXISTS idx_consumptions_prepayment
			ON prepayment_consumptions (prepayment_id)`,
	}

	for i, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	utils.Logger.Info("Schema migration complete")
	return nil
}
