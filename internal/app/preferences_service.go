package app

import (
	"context"
	"errors"

	"feedback/internal/domain"
)

// ErrInvalidWeightUnits is returned for preferences with an unknown unit.
var ErrInvalidWeightUnits = errors.New("weightUnits must be \"kg\" or \"lb\"")

// PreferencesService is the preferences vertical.
type PreferencesService struct {
	*CRUDService[domain.Preferences, PreferencesDTO]
}

// NewPreferencesService creates a PreferencesService backed by the given repository.
func NewPreferencesService(repo domain.PreferencesRepository) *PreferencesService {
	return &PreferencesService{CRUDService: NewCRUDService[domain.Preferences, PreferencesDTO](repo, PreferencesMapper{}, domain.Order{Property: "id"})}
}

// Validate checks a preferences payload before it is saved.
func (s *PreferencesService) Validate(d *PreferencesDTO) error {
	if !domain.ValidUnit(d.WeightUnits) {
		return ErrInvalidWeightUnits
	}
	if d.WeeklyGoal < 0 {
		return errors.New("weeklyGoal must be >= 0")
	}
	return nil
}

// ForUser returns the account's preferences, or nil when none are stored.
func (s *PreferencesService) ForUser(ctx context.Context, userID int64) (*PreferencesDTO, error) {
	page, err := s.FindAll(ctx, domain.OwnedBy(userID), domain.PageRequest{Size: 1})
	if err != nil || len(page.Content) == 0 {
		return nil, err
	}
	return &page.Content[0], nil
}
