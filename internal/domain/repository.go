package domain

import "context"

// Repository is the persistence port shared by every record type.
//
// FindByID returns nil, nil when no row has the id. Delete of an absent id
// is not an error. Save inserts when the record has no id, and updates
// otherwise; updating an id that no longer exists inserts a fresh row.
type Repository[E any] interface {
	Save(ctx context.Context, e *E) (*E, error)
	FindByID(ctx context.Context, id int64) (*E, error)
	FindAll(ctx context.Context, scope Scope, page PageRequest) (Page[E], error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Concrete ports, named for wiring.
type (
	BloodPressureRepository = Repository[BloodPressure]
	PointsRepository        = Repository[Points]
	WeightRepository        = Repository[Weight]
	PreferencesRepository   = Repository[Preferences]
)
