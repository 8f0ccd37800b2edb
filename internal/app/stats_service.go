package app

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// StatsService computes training aggregates for a user.
type StatsService struct {
	stats domain.StatsRepository
}

// NewStatsService creates a StatsService backed by the given repository.
func NewStatsService(stats domain.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// WeekPoint is a single per-day data point returned by Weekly.
type WeekPoint struct {
	Day            string  `json:"day"`
	Sessions       int     `json:"sessions"`
	TotalVolume    float64 `json:"totalVolume"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// PersonalRecords returns the heaviest logged weight per exercise for the user.
func (s *StatsService) PersonalRecords(ctx context.Context, userID int64) ([]domain.PersonalRecord, error) {
	return s.stats.PersonalRecords(ctx, userID)
}

// Weekly returns one point per local calendar day for the trailing seven
// days, today included, with training volume converted to the requested
// unit. Days without activity appear with zero values.
func (s *StatsService) Weekly(ctx context.Context, userID int64, unit string) ([]WeekPoint, error) {
	if unit == "" {
		unit = "kg"
	}
	if unit != "kg" && unit != "lb" {
		return nil, domain.Invalid(`unit must be "kg" or "lb"`)
	}

	today := time.Now().In(time.Local)
	points := make([]WeekPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		r, err := s.stats.ActivityForLocalDay(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		points = append(points, WeekPoint{
			Day:            day,
			Sessions:       r.Sessions,
			TotalVolume:    domain.ConvertWeight(r.TotalVolumeKG, "kg", unit),
			CaloriesBurned: r.CaloriesBurned,
		})
	}
	return points, nil
}
