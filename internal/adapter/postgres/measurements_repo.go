package postgres

import "feedback/internal/domain"

// BloodPressures returns the blood_pressure repository.
func (d *DB) BloodPressures() domain.BloodPressureRepository {
	return &table[domain.BloodPressure]{
		db:       d,
		name:     "blood_pressure",
		columns:  []string{"date", "systolic", "diastolic"},
		dated:    true,
		sortable: sortColumns(map[string]string{"date": "date", "systolic": "systolic", "diastolic": "diastolic"}),
		id:       func(e *domain.BloodPressure) *int64 { return &e.ID },
		owner:    func(e *domain.BloodPressure) **domain.UserRef { return &e.User },
		values:   func(e *domain.BloodPressure) []any { return []any{e.Date, e.Systolic, e.Diastolic} },
		dest:     func(e *domain.BloodPressure) []any { return []any{&e.Date, &e.Systolic, &e.Diastolic} },
	}
}

// Points returns the points repository.
func (d *DB) Points() domain.PointsRepository {
	return &table[domain.Points]{
		db:       d,
		name:     "points",
		columns:  []string{"date", "points"},
		dated:    true,
		sortable: sortColumns(map[string]string{"date": "date", "points": "points"}),
		id:       func(e *domain.Points) *int64 { return &e.ID },
		owner:    func(e *domain.Points) **domain.UserRef { return &e.User },
		values:   func(e *domain.Points) []any { return []any{e.Date, e.Points} },
		dest:     func(e *domain.Points) []any { return []any{&e.Date, &e.Points} },
	}
}

// Weights returns the weight repository. Values are kilograms.
func (d *DB) Weights() domain.WeightRepository {
	return &table[domain.Weight]{
		db:       d,
		name:     "weight",
		columns:  []string{"date", "weight"},
		dated:    true,
		sortable: sortColumns(map[string]string{"date": "date", "weight": "weight"}),
		id:       func(e *domain.Weight) *int64 { return &e.ID },
		owner:    func(e *domain.Weight) **domain.UserRef { return &e.User },
		values:   func(e *domain.Weight) []any { return []any{e.Date, e.Weight} },
		dest:     func(e *domain.Weight) []any { return []any{&e.Date, &e.Weight} },
	}
}

// Preferences returns the preferences repository.
func (d *DB) Preferences() domain.PreferencesRepository {
	return &table[domain.Preferences]{
		db:       d,
		name:     "preferences",
		columns:  []string{"weekly_goal", "weight_units"},
		sortable: sortColumns(map[string]string{"weeklyGoal": "weekly_goal", "weightUnits": "weight_units"}),
		id:       func(e *domain.Preferences) *int64 { return &e.ID },
		owner:    func(e *domain.Preferences) **domain.UserRef { return &e.User },
		values:   func(e *domain.Preferences) []any { return []any{e.WeeklyGoal, e.WeightUnits} },
		dest:     func(e *domain.Preferences) []any { return []any{&e.WeeklyGoal, &e.WeightUnits} },
	}
}
