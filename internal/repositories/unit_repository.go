package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	CreateMany(ctx context.Context, list []models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error)

	Update(ctx context.Context, u *models.Unit) error
	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error
	SetTenant(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) error
	SetEffectiveOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBuildingID(ctx context.Context, bldgID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	selectStmt := baseSelectUnit() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanUnit)
	return r
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO units (
			id, building_id, name, floor, unit_number,
			owner_id, effective_owner_id, tenant_id,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
	`, u.ID, u.BuildingID, u.Name, u.Floor, u.UnitNumber,
		u.OwnerID, u.EffectiveOwnerID, u.TenantID)
	return err
}

func (r *unitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *unitRepo) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE building_id=$1 AND deleted_at IS NULL ORDER BY unit_number", bldgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanUnits(rows)
}

/* ---------- update / delete ---------- */

func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.update(ctx, u, false, 0)
	return err
}

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, u, true, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *unitRepo) update(ctx context.Context, u *models.Unit, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE units
		SET name=$1, floor=$2, unit_number=$3, owner_id=$4,
		    effective_owner_id=$5, tenant_id=$6, updated_at=NOW()
	`
	args := []any{u.Name, u.Floor, u.UnitNumber, u.OwnerID, u.EffectiveOwnerID, u.TenantID}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$7 AND row_version=$8`
		args = append(args, u.ID, expected)
	} else {
		sql += ` WHERE id=$7`
		args = append(args, u.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *unitRepo) SetTenant(ctx context.Context, id uuid.UUID, tenantID *uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE units SET tenant_id=$1, updated_at=NOW() WHERE id=$2
	`, tenantID, id)
	return err
}

func (r *unitRepo) SetEffectiveOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE units SET effective_owner_id=$1, updated_at=NOW() WHERE id=$2
	`, ownerID, id)
	return err
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (r *unitRepo) DeleteByBuildingID(ctx context.Context, bldgID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE building_id=$1`, bldgID)
	return err
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, building_id, name, floor, unit_number,
		owner_id, effective_owner_id, tenant_id,
		created_at, updated_at, deleted_at, row_version
		FROM units`
}

func (r *unitRepo) scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.BuildingID, &u.Name, &u.Floor, &u.UnitNumber,
		&u.OwnerID, &u.EffectiveOwnerID, &u.TenantID,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt, &u.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *unitRepo) scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := r.scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
