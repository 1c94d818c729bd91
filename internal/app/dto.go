package app

import "feedback/internal/domain"

// BloodPressureDTO is the wire shape of a blood pressure reading.
type BloodPressureDTO struct {
	ID        *int64      `json:"id"`
	Date      domain.Date `json:"date"`
	Systolic  float64     `json:"systolic"`
	Diastolic float64     `json:"diastolic"`
	UserID    *int64      `json:"userId"`
	UserLogin string      `json:"userLogin,omitempty"`
}

// PointsDTO is the wire shape of a points entry.
type PointsDTO struct {
	ID        *int64      `json:"id"`
	Date      domain.Date `json:"date"`
	Points    float64     `json:"points"`
	UserID    *int64      `json:"userId"`
	UserLogin string      `json:"userLogin,omitempty"`
}

// WeightDTO is the wire shape of a weight measurement.
type WeightDTO struct {
	ID        *int64      `json:"id"`
	Date      domain.Date `json:"date"`
	Weight    float64     `json:"weight"`
	UserID    *int64      `json:"userId"`
	UserLogin string      `json:"userLogin,omitempty"`
}

// PreferencesDTO is the wire shape of account preferences.
type PreferencesDTO struct {
	ID          *int64 `json:"id"`
	WeeklyGoal  int    `json:"weeklyGoal"`
	WeightUnits string `json:"weightUnits"`
	UserID      *int64 `json:"userId"`
	UserLogin   string `json:"userLogin,omitempty"`
}

// idPtr maps the entity's unset id 0 to an absent DTO id. Stored rows are
// numbered from 1, so 0 never names a row.
func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
