package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListAll(ctx context.Context) ([]*models.Building, error)

	Update(ctx context.Context, b *models.Building) error
	UpdateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type buildingRepo struct {
	*BaseVersionedRepo[*models.Building]
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	r := &buildingRepo{db: db}
	selectStmt := baseSelectBuilding() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, r.scanBuilding)
	return r
}

/* ---------- create ---------- */

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, name, code, street, city, region, country,
			company_id, owner_id, latitude, longitude, time_zone,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW(), 1)
	`, b.ID, b.Name, b.Code, b.Street, b.City, b.Region, b.Country,
		b.CompanyID, b.OwnerID, b.Latitude, b.Longitude, b.TimeZone)
	return err
}

/* ---------- reads ---------- */

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *buildingRepo) ListAll(ctx context.Context) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" WHERE deleted_at IS NULL ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanBuildings(rows)
}

/* ---------- update / delete ---------- */

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.update(ctx, b, false, 0)
	return err
}

func (r *buildingRepo) UpdateIfVersion(ctx context.Context, b *models.Building, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, b, true, expected)
}

func (r *buildingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Building) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *buildingRepo) update(ctx context.Context, b *models.Building, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE buildings
		SET name=$1, code=$2, street=$3, city=$4, region=$5, country=$6,
		    owner_id=$7, latitude=$8, longitude=$9, time_zone=$10, updated_at=NOW()
	`
	args := []any{b.Name, b.Code, b.Street, b.City, b.Region, b.Country,
		b.OwnerID, b.Latitude, b.Longitude, b.TimeZone}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$11 AND row_version=$12`
		args = append(args, b.ID, expected)
	} else {
		sql += ` WHERE id=$11`
		args = append(args, b.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *buildingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE buildings SET deleted_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id, name, code, street, city, region, country,
		company_id, owner_id, latitude, longitude, time_zone,
		created_at, updated_at, deleted_at, row_version
		FROM buildings`
}

func (r *buildingRepo) scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.Name, &b.Code, &b.Street, &b.City, &b.Region, &b.Country,
		&b.CompanyID, &b.OwnerID, &b.Latitude, &b.Longitude, &b.TimeZone,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt, &b.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *buildingRepo) scanBuildings(rows pgx.Rows) ([]*models.Building, error) {
	var out []*models.Building
	for rows.Next() {
		b, err := r.scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
