package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type PartnerRepository interface {
	Create(ctx context.Context, p *models.Partner) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	ListOwners(ctx context.Context) ([]*models.Partner, error)

	// SetResidence stamps the tenant's building/unit tags when a contract
	// is activated; both cleared with nils on release.
	SetResidence(ctx context.Context, id uuid.UUID, bldgID, unitID *uuid.UUID) error

	Update(ctx context.Context, p *models.Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type partnerRepo struct {
	db DB
}

func NewPartnerRepository(db DB) PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, p *models.Partner) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO partners (
			id, name, email, phone, is_property_owner, building_id, unit_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
	`, p.ID, p.Name, p.Email, p.Phone, p.IsPropertyOwner, p.BuildingID, p.UnitID)
	return err
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	row := r.db.QueryRow(ctx, baseSelectPartner()+" WHERE id=$1", id)
	return scanPartner(row)
}

func (r *partnerRepo) ListOwners(ctx context.Context) ([]*models.Partner, error) {
	rows, err := r.db.Query(ctx, baseSelectPartner()+" WHERE is_property_owner ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *partnerRepo) SetResidence(ctx context.Context, id uuid.UUID, bldgID, unitID *uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE partners SET building_id=$1, unit_id=$2 WHERE id=$3
	`, bldgID, unitID, id)
	return err
}

func (r *partnerRepo) Update(ctx context.Context, p *models.Partner) error {
	_, err := r.db.Exec(ctx, `
		UPDATE partners
		SET name=$1, email=$2, phone=$3, is_property_owner=$4, building_id=$5, unit_id=$6
		WHERE id=$7
	`, p.Name, p.Email, p.Phone, p.IsPropertyOwner, p.BuildingID, p.UnitID, p.ID)
	return err
}

func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM partners WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectPartner() string {
	return `
		SELECT id, name, email, phone, is_property_owner, building_id, unit_id, created_at
		FROM partners`
}

func scanPartner(row pgx.Row) (*models.Partner, error) {
	var p models.Partner
	if err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.IsPropertyOwner,
		&p.BuildingID, &p.UnitID, &p.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
