package domain

import (
	"context"
	"time"
)

// BodyMeasurement is a point-in-time measurement snapshot owned by one user.
type BodyMeasurement struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	MeasuredAt time.Time `json:"measuredAt"`
	WeightKG   float64   `json:"weightKg"`
	BodyFatPct float64   `json:"bodyFatPct"`
	ChestCM    float64   `json:"chestCm"`
	WaistCM    float64   `json:"waistCm"`
	HipsCM     float64   `json:"hipsCm"`
	BicepsCM   float64   `json:"bicepsCm"`
	ThighCM    float64   `json:"thighCm"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MeasurementFilter narrows body measurement listings.
type MeasurementFilter struct {
	UserID *int64
	Skip   int
	Limit  int
}

// BodyMeasurementRepository defines the port for measurement persistence.
type BodyMeasurementRepository interface {
	Insert(ctx context.Context, bm *BodyMeasurement) (*BodyMeasurement, error)
	FindByID(ctx context.Context, id int64) (*BodyMeasurement, error)
	List(ctx context.Context, f MeasurementFilter) ([]BodyMeasurement, error)
	Update(ctx context.Context, bm *BodyMeasurement) error
	Delete(ctx context.Context, id int64) (bool, error)
}
