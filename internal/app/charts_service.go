package app

import (
	"context"
	"errors"

	"feedback/internal/domain"
)

// ErrInvalidUnit is returned for a chart unit other than kg or lb.
var ErrInvalidUnit = errors.New("unit must be \"kg\" or \"lb\"")

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	weightRepo   domain.WeightRepository
	pressureRepo domain.BloodPressureRepository
	pointsRepo   domain.PointsRepository
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(wr domain.WeightRepository, br domain.BloodPressureRepository, pr domain.PointsRepository) *ChartsService {
	return &ChartsService{weightRepo: wr, pressureRepo: br, pointsRepo: pr}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day           string         `json:"day"`
	Points        float64        `json:"points"`
	Weight        *WeightPoint   `json:"weight"`
	BloodPressure *PressurePoint `json:"bloodPressure"`
}

// WeightPoint is the optional weight value within a DayPoint.
type WeightPoint struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// PressurePoint is the optional blood pressure reading within a DayPoint.
type PressurePoint struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// allInScope reads every page of a scoped listing, newest first so the
// first row seen for a day is that day's latest.
func allInScope[E any](ctx context.Context, repo domain.Repository[E], scope domain.Scope) ([]E, error) {
	var out []E
	req := domain.PageRequest{Size: domain.MaxPageSize, Sort: byDateDesc}
	for {
		page, err := repo.FindAll(ctx, scope, req)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Content...)
		if len(page.Content) == 0 || !page.HasNext() {
			return out, nil
		}
		req.Page++
	}
}

// GetDaily returns per-day chart data for the last days days ending today,
// with weights converted from kilograms to the requested unit.
func (s *ChartsService) GetDaily(ctx context.Context, userID int64, days int, unit string) ([]DayPoint, error) {
	return s.GetDailyUntil(ctx, userID, domain.Today(), days, unit)
}

// GetDailyUntil is GetDaily with an explicit last day.
func (s *ChartsService) GetDailyUntil(ctx context.Context, userID int64, today domain.Date, days int, unit string) ([]DayPoint, error) {
	if !domain.ValidUnit(unit) {
		return nil, ErrInvalidUnit
	}
	if days > 366 {
		days = 366
	}
	if days < 1 {
		days = 1
	}

	from := today.AddDays(-(days - 1))
	scope := domain.OwnedBy(userID).Between(from, today)

	weights, err := allInScope(ctx, s.weightRepo, scope)
	if err != nil {
		return nil, err
	}
	pressures, err := allInScope(ctx, s.pressureRepo, scope)
	if err != nil {
		return nil, err
	}
	points, err := allInScope(ctx, s.pointsRepo, scope)
	if err != nil {
		return nil, err
	}

	latestWeight := make(map[string]float64)
	for _, w := range weights {
		if _, ok := latestWeight[w.Date.String()]; !ok {
			latestWeight[w.Date.String()] = w.Weight
		}
	}
	latestPressure := make(map[string]*PressurePoint)
	for _, b := range pressures {
		if _, ok := latestPressure[b.Date.String()]; !ok {
			latestPressure[b.Date.String()] = &PressurePoint{Systolic: b.Systolic, Diastolic: b.Diastolic}
		}
	}
	pointTotals := make(map[string]float64)
	for _, p := range points {
		pointTotals[p.Date.String()] += p.Points
	}

	out := make([]DayPoint, 0, days)
	for d := from; !d.After(today); d = d.AddDays(1) {
		day := d.String()
		var wp *WeightPoint
		if v, ok := latestWeight[day]; ok {
			wp = &WeightPoint{Value: domain.ConvertWeight(v, domain.UnitKG, unit), Unit: unit}
		}
		out = append(out, DayPoint{Day: day, Points: pointTotals[day], Weight: wp, BloodPressure: latestPressure[day]})
	}
	return out, nil
}
