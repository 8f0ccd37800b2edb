package app

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// MeasurementService manages per-user body measurement snapshots.
type MeasurementService struct {
	measurements domain.BodyMeasurementRepository
}

// NewMeasurementService creates a MeasurementService backed by the given repository.
func NewMeasurementService(measurements domain.BodyMeasurementRepository) *MeasurementService {
	return &MeasurementService{measurements: measurements}
}

// MeasurementInput is the payload accepted by Create. Weight may arrive in
// kg or lb; it is stored in kg. A zero MeasuredAt defaults to now.
type MeasurementInput struct {
	MeasuredAt time.Time `json:"measuredAt"`
	Weight     float64   `json:"weight"`
	WeightUnit string    `json:"weightUnit"`
	BodyFatPct float64   `json:"bodyFatPct"`
	ChestCM    float64   `json:"chestCm"`
	WaistCM    float64   `json:"waistCm"`
	HipsCM     float64   `json:"hipsCm"`
	BicepsCM   float64   `json:"bicepsCm"`
	ThighCM    float64   `json:"thighCm"`
	Notes      string    `json:"notes"`
}

// MeasurementUpdate carries partial-update fields; nil means keep.
type MeasurementUpdate struct {
	MeasuredAt *time.Time `json:"measuredAt"`
	WeightKG   *float64   `json:"weightKg"`
	BodyFatPct *float64   `json:"bodyFatPct"`
	ChestCM    *float64   `json:"chestCm"`
	WaistCM    *float64   `json:"waistCm"`
	HipsCM     *float64   `json:"hipsCm"`
	BicepsCM   *float64   `json:"bicepsCm"`
	ThighCM    *float64   `json:"thighCm"`
	Notes      *string    `json:"notes"`
}

// Create validates and stores a new measurement snapshot owned by userID.
func (s *MeasurementService) Create(ctx context.Context, userID int64, in MeasurementInput) (*domain.BodyMeasurement, error) {
	unit := in.WeightUnit
	if unit == "" {
		unit = "kg"
	}
	if unit != "kg" && unit != "lb" {
		return nil, domain.Invalid(`weight unit must be "kg" or "lb"`)
	}
	if in.Weight < 0 || in.BodyFatPct < 0 || in.BodyFatPct > 100 {
		return nil, domain.Invalid("measurement values out of range")
	}
	measured := in.MeasuredAt
	if measured.IsZero() {
		measured = time.Now()
	}
	return s.measurements.Insert(ctx, &domain.BodyMeasurement{
		UserID:     userID,
		MeasuredAt: measured,
		WeightKG:   domain.ConvertWeight(in.Weight, unit, "kg"),
		BodyFatPct: in.BodyFatPct,
		ChestCM:    in.ChestCM,
		WaistCM:    in.WaistCM,
		HipsCM:     in.HipsCM,
		BicepsCM:   in.BicepsCM,
		ThighCM:    in.ThighCM,
		Notes:      in.Notes,
	})
}

// Get returns one measurement.
func (s *MeasurementService) Get(ctx context.Context, id int64) (*domain.BodyMeasurement, error) {
	bm, err := s.measurements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bm == nil {
		return nil, domain.ErrNotFound
	}
	return bm, nil
}

// List returns measurements matching the filter.
func (s *MeasurementService) List(ctx context.Context, f domain.MeasurementFilter) ([]domain.BodyMeasurement, error) {
	return s.measurements.List(ctx, f)
}

// Update applies present fields, preserving the rest.
func (s *MeasurementService) Update(ctx context.Context, id int64, in MeasurementUpdate) (*domain.BodyMeasurement, error) {
	bm, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.MeasuredAt != nil {
		bm.MeasuredAt = *in.MeasuredAt
	}
	if in.WeightKG != nil {
		bm.WeightKG = *in.WeightKG
	}
	if in.BodyFatPct != nil {
		if *in.BodyFatPct < 0 || *in.BodyFatPct > 100 {
			return nil, domain.Invalid("body fat percentage out of range")
		}
		bm.BodyFatPct = *in.BodyFatPct
	}
	if in.ChestCM != nil {
		bm.ChestCM = *in.ChestCM
	}
	if in.WaistCM != nil {
		bm.WaistCM = *in.WaistCM
	}
	if in.HipsCM != nil {
		bm.HipsCM = *in.HipsCM
	}
	if in.BicepsCM != nil {
		bm.BicepsCM = *in.BicepsCM
	}
	if in.ThighCM != nil {
		bm.ThighCM = *in.ThighCM
	}
	if in.Notes != nil {
		bm.Notes = *in.Notes
	}
	if err := s.measurements.Update(ctx, bm); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a measurement.
func (s *MeasurementService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.measurements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
