package app_test

import (
	"context"

	"feedback/internal/domain"
)

// mockRepo is a function-field Repository; nil fields behave like an empty store.
type mockRepo[E any] struct {
	saveFn     func(ctx context.Context, e *E) (*E, error)
	findByIDFn func(ctx context.Context, id int64) (*E, error)
	findAllFn  func(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[E], error)
	deleteFn   func(ctx context.Context, id int64) error
	countFn    func(ctx context.Context) (int64, error)
}

func (m *mockRepo[E]) Save(ctx context.Context, e *E) (*E, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, e)
	}
	return e, nil
}

func (m *mockRepo[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRepo[E]) FindAll(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[E], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, scope, page)
	}
	return domain.Page[E]{Number: page.Page, Size: page.Size}, nil
}

func (m *mockRepo[E]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo[E]) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func ptr[T any](v T) *T { return &v }

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
