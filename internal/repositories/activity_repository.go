package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/rental-service/internal/models"
)

/* ───────────── public interface ───────────── */

type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Activity, error)
	ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*models.Activity, error)

	// ExistsForContractOn guards against duplicating a reminder for the
	// same contract and deadline when a pass is re-run.
	ExistsForContractOn(ctx context.Context, contractID uuid.UUID, deadline time.Time) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type activityRepo struct {
	db DB
}

func NewActivityRepository(db DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, a *models.Activity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO activities (
			id, user_id, contract_id, deadline, summary, note, created_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
	`, a.ID, a.UserID, a.ContractID, a.Deadline.Format("2006-01-02"), a.Summary, a.Note)
	return err
}

func (r *activityRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Activity, error) {
	rows, err := r.db.Query(ctx, baseSelectActivity()+" WHERE user_id=$1 ORDER BY deadline", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *activityRepo) ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*models.Activity, error) {
	rows, err := r.db.Query(ctx, baseSelectActivity()+" WHERE contract_id=$1 ORDER BY deadline", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

func (r *activityRepo) ExistsForContractOn(ctx context.Context, contractID uuid.UUID, deadline time.Time) (bool, error) {
	var n int
	row := r.db.QueryRow(ctx, `
		SELECT COUNT(1) FROM activities WHERE contract_id=$1 AND deadline=$2
	`, contractID, deadline.Format("2006-01-02"))
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *activityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectActivity() string {
	return `
		SELECT id, user_id, contract_id, deadline, summary, note, created_at
		FROM activities`
}

func scanActivities(rows pgx.Rows) ([]*models.Activity, error) {
	var out []*models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.ContractID, &a.Deadline,
			&a.Summary, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
