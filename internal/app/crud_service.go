// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"

	"feedback/internal/domain"
)

// CRUD is the service surface the REST resources depend on.
type CRUD[D any] interface {
	Save(ctx context.Context, dto *D) (*D, error)
	FindAll(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[D], error)
	FindOne(ctx context.Context, id int64) (*D, error)
	Delete(ctx context.Context, id int64) error
}

// CRUDService orchestrates a repository and mapper for one record type.
type CRUDService[E, D any] struct {
	repo        domain.Repository[E]
	mapper      Mapper[E, D]
	defaultSort []domain.Order
	present     func([]E) []D
}

// NewCRUDService creates a CRUDService. defaultSort applies to listings
// that do not request an order.
func NewCRUDService[E, D any](repo domain.Repository[E], mapper Mapper[E, D], defaultSort ...domain.Order) *CRUDService[E, D] {
	s := &CRUDService[E, D]{repo: repo, mapper: mapper, defaultSort: defaultSort}
	s.present = s.mapAll
	return s
}

// Save inserts or updates the record and returns it as stored.
func (s *CRUDService[E, D]) Save(ctx context.Context, dto *D) (*D, error) {
	if dto == nil {
		return nil, fmt.Errorf("save: nil record")
	}
	saved, err := s.repo.Save(ctx, s.mapper.ToEntity(dto))
	if err != nil {
		return nil, err
	}
	return s.mapper.ToDTO(saved), nil
}

// FindAll returns one page of records visible in scope.
func (s *CRUDService[E, D]) FindAll(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[D], error) {
	page = page.Normalize().WithDefaultSort(s.defaultSort...)
	res, err := s.repo.FindAll(ctx, scope, page)
	if err != nil {
		return domain.Page[D]{}, err
	}
	return domain.MapPage(res, s.present), nil
}

// FindOne returns the record, or nil when it does not exist.
func (s *CRUDService[E, D]) FindOne(ctx context.Context, id int64) (*D, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	return s.mapper.ToDTO(e), nil
}

// Delete removes the record. Absent ids are ignored.
func (s *CRUDService[E, D]) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CRUDService[E, D]) mapAll(records []E) []D {
	out := make([]D, 0, len(records))
	for i := range records {
		out = append(out, *s.mapper.ToDTO(&records[i]))
	}
	return out
}

// Newest-first order shared by dated collections.
var byDateDesc = []domain.Order{{Property: "date", Desc: true}, {Property: "id", Desc: true}}

// NewBloodPressureService wires the blood pressure vertical.
func NewBloodPressureService(repo domain.BloodPressureRepository) *CRUDService[domain.BloodPressure, BloodPressureDTO] {
	return NewCRUDService[domain.BloodPressure, BloodPressureDTO](repo, BloodPressureMapper{}, domain.Order{Property: "id"})
}

// NewWeightService wires the weight vertical.
func NewWeightService(repo domain.WeightRepository) *CRUDService[domain.Weight, WeightDTO] {
	return NewCRUDService[domain.Weight, WeightDTO](repo, WeightMapper{}, domain.Order{Property: "id"})
}
