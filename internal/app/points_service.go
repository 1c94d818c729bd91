package app

import "feedback/internal/domain"

// PointsService is the points vertical. Listings are newest first and go
// through GetPointsList.
type PointsService struct {
	*CRUDService[domain.Points, PointsDTO]
}

// NewPointsService creates a PointsService backed by the given repository.
func NewPointsService(repo domain.PointsRepository) *PointsService {
	s := &PointsService{CRUDService: NewCRUDService[domain.Points, PointsDTO](repo, PointsMapper{}, byDateDesc...)}
	s.present = s.GetPointsList
	return s
}

// GetPointsList turns persisted records into display DTOs.
func (s *PointsService) GetPointsList(records []domain.Points) []PointsDTO {
	return s.mapAll(records)
}
