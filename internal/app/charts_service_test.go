package app_test

import (
	"context"
	"errors"
	"testing"

	"feedback/internal/app"
	"feedback/internal/domain"
)

func TestGetDaily_BadUnit(t *testing.T) {
	svc := app.NewChartsService(&mockRepo[domain.Weight]{}, &mockRepo[domain.BloodPressure]{}, &mockRepo[domain.Points]{})
	_, err := svc.GetDaily(context.Background(), 1, 7, "stones")
	if err == nil {
		t.Fatal("expected error for bad unit")
	}
}

func TestGetDailyUntil_Aggregates(t *testing.T) {
	today := day("2024-03-10")
	var gotScope domain.Scope

	// Rows arrive newest first, as the repository is asked to order them.
	wr := &mockRepo[domain.Weight]{
		findAllFn: func(_ context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[domain.Weight], error) {
			gotScope = scope
			return domain.Page[domain.Weight]{Content: []domain.Weight{
				{ID: 3, Date: day("2024-03-10"), Weight: 81},
				{ID: 2, Date: day("2024-03-10"), Weight: 80},
				{ID: 1, Date: day("2024-03-08"), Weight: 82},
			}}, nil
		},
	}
	br := &mockRepo[domain.BloodPressure]{
		findAllFn: func(_ context.Context, _ domain.Scope, _ domain.PageRequest) (domain.Page[domain.BloodPressure], error) {
			return domain.Page[domain.BloodPressure]{Content: []domain.BloodPressure{
				{ID: 5, Date: day("2024-03-09"), Systolic: 120, Diastolic: 80},
			}}, nil
		},
	}
	pr := &mockRepo[domain.Points]{
		findAllFn: func(_ context.Context, _ domain.Scope, _ domain.PageRequest) (domain.Page[domain.Points], error) {
			return domain.Page[domain.Points]{Content: []domain.Points{
				{ID: 8, Date: day("2024-03-10"), Points: 2},
				{ID: 7, Date: day("2024-03-10"), Points: 1.5},
			}}, nil
		},
	}

	svc := app.NewChartsService(wr, br, pr)
	points, err := svc.GetDailyUntil(context.Background(), 42, today, 3, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	if gotScope.OwnerID == nil || *gotScope.OwnerID != 42 {
		t.Errorf("expected scope owned by 42, got %+v", gotScope.OwnerID)
	}
	if gotScope.From.String() != "2024-03-08" || gotScope.To.String() != "2024-03-10" {
		t.Errorf("unexpected range %s..%s", gotScope.From, gotScope.To)
	}

	if points[0].Day != "2024-03-08" || points[0].Weight == nil || points[0].Weight.Value != 82 {
		t.Errorf("day 1: %+v", points[0])
	}
	if points[1].BloodPressure == nil || points[1].BloodPressure.Systolic != 120 {
		t.Errorf("day 2: expected pressure reading, got %+v", points[1].BloodPressure)
	}
	if points[1].Weight != nil {
		t.Errorf("day 2: expected no weight, got %+v", points[1].Weight)
	}
	if points[2].Weight == nil || points[2].Weight.Value != 81 {
		t.Errorf("day 3: expected latest weight 81, got %+v", points[2].Weight)
	}
	if points[2].Points != 3.5 {
		t.Errorf("day 3: expected points 3.5, got %v", points[2].Points)
	}
}

func TestGetDailyUntil_ReadsEveryPage(t *testing.T) {
	today := day("2024-03-10")
	var pages []int
	pr := &mockRepo[domain.Points]{
		findAllFn: func(_ context.Context, _ domain.Scope, page domain.PageRequest) (domain.Page[domain.Points], error) {
			pages = append(pages, page.Page)
			return domain.Page[domain.Points]{
				Content: []domain.Points{{ID: int64(page.Page + 1), Date: today, Points: float64(page.Page + 1)}},
				Number:  page.Page,
				Size:    page.Size,
				Total:   int64(page.Size) + 1,
			}, nil
		},
	}

	svc := app.NewChartsService(&mockRepo[domain.Weight]{}, &mockRepo[domain.BloodPressure]{}, pr)
	points, err := svc.GetDailyUntil(context.Background(), 1, today, 1, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 || pages[0] != 0 || pages[1] != 1 {
		t.Fatalf("expected pages 0 and 1 to be read, got %v", pages)
	}
	if points[0].Points != 3 {
		t.Errorf("expected points from both pages (3), got %v", points[0].Points)
	}
}

func TestGetDaily_ConvertUnit(t *testing.T) {
	wr := &mockRepo[domain.Weight]{
		findAllFn: func(_ context.Context, scope domain.Scope, _ domain.PageRequest) (domain.Page[domain.Weight], error) {
			return domain.Page[domain.Weight]{Content: []domain.Weight{{ID: 1, Date: scope.To, Weight: 100}}}, nil
		},
	}

	svc := app.NewChartsService(wr, &mockRepo[domain.BloodPressure]{}, &mockRepo[domain.Points]{})
	points, err := svc.GetDaily(context.Background(), 1, 1, "lb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Weight == nil || points[0].Weight.Value < 220 || points[0].Weight.Value > 221 {
		t.Errorf("expected ~220.46 lb, got %v", points[0].Weight)
	}
	if points[0].Weight.Unit != "lb" {
		t.Errorf("expected unit lb, got %q", points[0].Weight.Unit)
	}
}

func TestGetDaily_ClampsTo366(t *testing.T) {
	svc := app.NewChartsService(&mockRepo[domain.Weight]{}, &mockRepo[domain.BloodPressure]{}, &mockRepo[domain.Points]{})
	points, err := svc.GetDaily(context.Background(), 1, 500, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 366 {
		t.Fatalf("expected 366 points (clamped), got %d", len(points))
	}
}

func TestGetDaily_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	pr := &mockRepo[domain.Points]{
		findAllFn: func(_ context.Context, _ domain.Scope, _ domain.PageRequest) (domain.Page[domain.Points], error) {
			return domain.Page[domain.Points]{}, boom
		},
	}
	svc := app.NewChartsService(&mockRepo[domain.Weight]{}, &mockRepo[domain.BloodPressure]{}, pr)
	if _, err := svc.GetDaily(context.Background(), 1, 7, "kg"); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
