package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type ContractRepository interface {
	Create(ctx context.Context, c *models.Contract) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Contract, error)
	ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Contract, error)

	// ListDueForBuilding is the daily-pass selection: ACTIVE contracts of
	// the building whose validity window contains day, whose rent_due_day
	// equals day's day-of-month, and not yet touched today.
	ListDueForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) ([]*models.Contract, error)

	Update(ctx context.Context, c *models.Contract) error
	UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Contract) error) error

	// StampDueActivityDate marks the contract as visited by a daily pass.
	StampDueActivityDate(ctx context.Context, id uuid.UUID, day time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type contractRepo struct {
	*BaseVersionedRepo[*models.Contract]
	db DB
}

func NewContractRepository(db DB) ContractRepository {
	r := &contractRepo{db: db}
	selectStmt := baseSelectContract() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanContract)
	return r
}

/* ---------- create ---------- */

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contracts (
			id, name, tenant_id, building_id, unit_id, company_id, currency,
			responsible_user_id, owner_id, amount_cents, recurrence,
			start_date, end_date, state, rent_due_day, last_due_activity_date,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16, NOW(), NOW(), 1)
	`, c.ID, c.Name, c.TenantID, c.BuildingID, c.UnitID, c.CompanyID, c.Currency,
		c.ResponsibleUserID, c.OwnerID, c.AmountCents, c.Recurrence,
		dateArg(c.StartDate), dateArgPtr(c.EndDate), c.State, c.RentDueDay,
		dateArgPtr(c.LastDueActivityDate))
	return err
}

/* ---------- reads ---------- */

func (r *contractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *contractRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Contract, error) {
	rows, err := r.db.Query(ctx, baseSelectContract()+" WHERE building_id=$1 ORDER BY created_at", bldgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanContracts(rows)
}

func (r *contractRepo) ListByUnitID(ctx context.Context, unitID uuid.UUID) ([]*models.Contract, error) {
	rows, err := r.db.Query(ctx, baseSelectContract()+" WHERE unit_id=$1 ORDER BY created_at", unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanContracts(rows)
}

func (r *contractRepo) ListDueForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) ([]*models.Contract, error) {
	q := baseSelectContract() + `
		WHERE building_id=$1
		  AND state='ACTIVE'
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
		  AND rent_due_day = $3
		  AND (last_due_activity_date IS NULL OR last_due_activity_date < $2)
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, q, bldgID, dateArg(day), day.Day())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanContracts(rows)
}

/* ---------- update / delete ---------- */

func (r *contractRepo) Update(ctx context.Context, c *models.Contract) error {
	_, err := r.update(ctx, c, false, 0)
	return err
}

func (r *contractRepo) UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, c, true, expected)
}

func (r *contractRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Contract) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *contractRepo) update(ctx context.Context, c *models.Contract, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE contracts
		SET name=$1, tenant_id=$2, responsible_user_id=$3, owner_id=$4,
		    amount_cents=$5, recurrence=$6, start_date=$7, end_date=$8,
		    state=$9, rent_due_day=$10, last_due_activity_date=$11, updated_at=NOW()
	`
	args := []any{c.Name, c.TenantID, c.ResponsibleUserID, c.OwnerID,
		c.AmountCents, c.Recurrence, dateArg(c.StartDate), dateArgPtr(c.EndDate),
		c.State, c.RentDueDay, dateArgPtr(c.LastDueActivityDate)}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$12 AND row_version=$13`
		args = append(args, c.ID, expected)
	} else {
		sql += ` WHERE id=$12`
		args = append(args, c.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *contractRepo) StampDueActivityDate(ctx context.Context, id uuid.UUID, day time.Time) error {
	return r.UpdateWithRetry(ctx, id, func(c *models.Contract) error {
		d := day
		c.LastDueActivityDate = &d
		return nil
	})
}

func (r *contractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectContract() string {
	return `
		SELECT id, name, tenant_id, building_id, unit_id, company_id, currency,
		responsible_user_id, owner_id, amount_cents, recurrence,
		start_date, end_date, state, rent_due_day, last_due_activity_date,
		created_at, updated_at, row_version
		FROM contracts`
}

func (r *contractRepo) scanContract(row pgx.Row) (*models.Contract, error) {
	var c models.Contract
	if err := row.Scan(
		&c.ID, &c.Name, &c.TenantID, &c.BuildingID, &c.UnitID, &c.CompanyID, &c.Currency,
		&c.ResponsibleUserID, &c.OwnerID, &c.AmountCents, &c.Recurrence,
		&c.StartDate, &c.EndDate, &c.State, &c.RentDueDay, &c.LastDueActivityDate,
		&c.CreatedAt, &c.UpdatedAt, &c.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *contractRepo) scanContracts(rows pgx.Rows) ([]*models.Contract, error) {
	var out []*models.Contract
	for rows.Next() {
		c, err := r.scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

/* date columns are stored as DATE; format to avoid TZ drift */

func dateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func dateArgPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
