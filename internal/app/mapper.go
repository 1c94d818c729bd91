package app

import "feedback/internal/domain"

// Mapper translates between a persisted entity and its transfer object.
// Both directions return nil for nil input.
type Mapper[E, D any] interface {
	ToDTO(e *E) *D
	ToEntity(d *D) *E
}

// BloodPressureMapper maps domain.BloodPressure <-> BloodPressureDTO.
type BloodPressureMapper struct{}

func (BloodPressureMapper) ToDTO(e *domain.BloodPressure) *BloodPressureDTO {
	if e == nil {
		return nil
	}
	return &BloodPressureDTO{
		ID:        idPtr(e.ID),
		Date:      e.Date,
		Systolic:  e.Systolic,
		Diastolic: e.Diastolic,
		UserID:    e.User.IDPtr(),
		UserLogin: e.User.LoginOrEmpty(),
	}
}

func (BloodPressureMapper) ToEntity(d *BloodPressureDTO) *domain.BloodPressure {
	if d == nil {
		return nil
	}
	return &domain.BloodPressure{
		ID:        idValue(d.ID),
		Date:      d.Date,
		Systolic:  d.Systolic,
		Diastolic: d.Diastolic,
		User:      domain.RefFromID(d.UserID),
	}
}

// BloodPressureFromID builds a reference-only stub, or nil for a nil id.
func BloodPressureFromID(id *int64) *domain.BloodPressure {
	if id == nil {
		return nil
	}
	return &domain.BloodPressure{ID: *id}
}

// PointsMapper maps domain.Points <-> PointsDTO.
type PointsMapper struct{}

func (PointsMapper) ToDTO(e *domain.Points) *PointsDTO {
	if e == nil {
		return nil
	}
	return &PointsDTO{
		ID:        idPtr(e.ID),
		Date:      e.Date,
		Points:    e.Points,
		UserID:    e.User.IDPtr(),
		UserLogin: e.User.LoginOrEmpty(),
	}
}

func (PointsMapper) ToEntity(d *PointsDTO) *domain.Points {
	if d == nil {
		return nil
	}
	return &domain.Points{
		ID:     idValue(d.ID),
		Date:   d.Date,
		Points: d.Points,
		User:   domain.RefFromID(d.UserID),
	}
}

// PointsFromID builds a reference-only stub, or nil for a nil id.
func PointsFromID(id *int64) *domain.Points {
	if id == nil {
		return nil
	}
	return &domain.Points{ID: *id}
}

// WeightMapper maps domain.Weight <-> WeightDTO.
type WeightMapper struct{}

func (WeightMapper) ToDTO(e *domain.Weight) *WeightDTO {
	if e == nil {
		return nil
	}
	return &WeightDTO{
		ID:        idPtr(e.ID),
		Date:      e.Date,
		Weight:    e.Weight,
		UserID:    e.User.IDPtr(),
		UserLogin: e.User.LoginOrEmpty(),
	}
}

func (WeightMapper) ToEntity(d *WeightDTO) *domain.Weight {
	if d == nil {
		return nil
	}
	return &domain.Weight{
		ID:     idValue(d.ID),
		Date:   d.Date,
		Weight: d.Weight,
		User:   domain.RefFromID(d.UserID),
	}
}

// WeightFromID builds a reference-only stub, or nil for a nil id.
func WeightFromID(id *int64) *domain.Weight {
	if id == nil {
		return nil
	}
	return &domain.Weight{ID: *id}
}

// PreferencesMapper maps domain.Preferences <-> PreferencesDTO.
type PreferencesMapper struct{}

func (PreferencesMapper) ToDTO(e *domain.Preferences) *PreferencesDTO {
	if e == nil {
		return nil
	}
	return &PreferencesDTO{
		ID:          idPtr(e.ID),
		WeeklyGoal:  e.WeeklyGoal,
		WeightUnits: e.WeightUnits,
		UserID:      e.User.IDPtr(),
		UserLogin:   e.User.LoginOrEmpty(),
	}
}

func (PreferencesMapper) ToEntity(d *PreferencesDTO) *domain.Preferences {
	if d == nil {
		return nil
	}
	return &domain.Preferences{
		ID:          idValue(d.ID),
		WeeklyGoal:  d.WeeklyGoal,
		WeightUnits: d.WeightUnits,
		User:        domain.RefFromID(d.UserID),
	}
}

// PreferencesFromID builds a reference-only stub, or nil for a nil id.
func PreferencesFromID(id *int64) *domain.Preferences {
	if id == nil {
		return nil
	}
	return &domain.Preferences{ID: *id}
}
