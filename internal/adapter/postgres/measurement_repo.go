package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/domain"
)

// BodyMeasurementRepo implements domain.BodyMeasurementRepository on DB.
type BodyMeasurementRepo struct {
	db *DB
}

func NewBodyMeasurementRepo(db *DB) *BodyMeasurementRepo {
	return &BodyMeasurementRepo{db: db}
}

const measurementCols = "id, user_id, measured_at, weight_kg, body_fat_pct, chest_cm, waist_cm, hips_cm, biceps_cm, thigh_cm, notes, created_at, updated_at"

func scanMeasurement(row interface{ Scan(...any) error }) (*domain.BodyMeasurement, error) {
	var bm domain.BodyMeasurement
	err := row.Scan(&bm.ID, &bm.UserID, &bm.MeasuredAt, &bm.WeightKG, &bm.BodyFatPct,
		&bm.ChestCM, &bm.WaistCM, &bm.HipsCM, &bm.BicepsCM, &bm.ThighCM, &bm.Notes,
		&bm.CreatedAt, &bm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bm, nil
}

func (r *BodyMeasurementRepo) Insert(ctx context.Context, bm *domain.BodyMeasurement) (*domain.BodyMeasurement, error) {
	return scanMeasurement(r.db.queryRow(ctx,
		`INSERT INTO body_measurements (user_id, measured_at, weight_kg, body_fat_pct, chest_cm, waist_cm, hips_cm, biceps_cm, thigh_cm, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING `+measurementCols,
		bm.UserID, bm.MeasuredAt, bm.WeightKG, bm.BodyFatPct, bm.ChestCM, bm.WaistCM,
		bm.HipsCM, bm.BicepsCM, bm.ThighCM, bm.Notes, time.Now(),
	))
}

func (r *BodyMeasurementRepo) FindByID(ctx context.Context, id int64) (*domain.BodyMeasurement, error) {
	return scanMeasurement(r.db.queryRow(ctx, "SELECT "+measurementCols+" FROM body_measurements WHERE id = $1", id))
}

func (r *BodyMeasurementRepo) List(ctx context.Context, f domain.MeasurementFilter) ([]domain.BodyMeasurement, error) {
	query := "SELECT " + measurementCols + " FROM body_measurements"
	var args []any
	if f.UserID != nil {
		args = append(args, *f.UserID)
		query += fmt.Sprintf(" WHERE user_id = $%d", len(args))
	}
	args = append(args, f.Skip, f.Limit)
	query += fmt.Sprintf(" ORDER BY measured_at DESC, id OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BodyMeasurement, 0, f.Limit)
	for rows.Next() {
		bm, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *bm)
	}
	return out, rows.Err()
}

func (r *BodyMeasurementRepo) Update(ctx context.Context, bm *domain.BodyMeasurement) error {
	_, err := r.db.exec(ctx,
		`UPDATE body_measurements SET measured_at=$1, weight_kg=$2, body_fat_pct=$3, chest_cm=$4,
		 waist_cm=$5, hips_cm=$6, biceps_cm=$7, thigh_cm=$8, notes=$9, updated_at=$10 WHERE id=$11`,
		bm.MeasuredAt, bm.WeightKG, bm.BodyFatPct, bm.ChestCM, bm.WaistCM, bm.HipsCM,
		bm.BicepsCM, bm.ThighCM, bm.Notes, time.Now(), bm.ID,
	)
	return err
}

func (r *BodyMeasurementRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM body_measurements WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
