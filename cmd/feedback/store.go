package main

import (
	"context"
	"fmt"

	"feedback/internal/adapter/memory"
	"feedback/internal/adapter/postgres"
	"feedback/internal/config"
	"feedback/internal/domain"
)

// store groups the repositories of one backend.
type store struct {
	bloodPressures domain.BloodPressureRepository
	points         domain.PointsRepository
	weights        domain.WeightRepository
	preferences    domain.PreferencesRepository
	users          domain.UserRepository
	sessions       domain.SessionRepository
	close          func() error
	ping           func(context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		db := memory.New()
		return &store{
			bloodPressures: db.BloodPressures(),
			points:         db.Points(),
			weights:        db.Weights(),
			preferences:    db.Preferences(),
			users:          db,
			sessions:       db.NewSessionRepo(),
			close:          func() error { return nil },
		}, nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		return &store{
			bloodPressures: db.BloodPressures(),
			points:         db.Points(),
			weights:        db.Weights(),
			preferences:    db.Preferences(),
			users:          db,
			sessions:       postgres.NewSessionRepo(db),
			close:          db.Close,
			ping:           db.Ping,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
