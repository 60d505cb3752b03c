package breathing

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	items     []Measurement
	createErr error
}

func (r *testRepo) Create(_ context.Context, m Measurement) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items = append(r.items, m)
	return nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string, filter ListFilter) ([]Measurement, error) {
	var out []Measurement
	for _, m := range r.items {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestLog_PersistsAndFlagsAbnormal(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	m, abnormal, err := svc.Log(ctx, "pet-1", "dog", LogInput{Rate: 22, Note: "  en reposo  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if abnormal {
		t.Fatalf("22 should be normal for dog")
	}
	if m.ID == "" {
		t.Fatalf("expected generated id")
	}
	if m.Note != "en reposo" {
		t.Fatalf("expected trimmed note, got %q", m.Note)
	}
	if !m.MeasuredAt.Equal(svc.now()) {
		t.Fatalf("expected zero MeasuredAt replaced with now, got %v", m.MeasuredAt)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected measurement persisted")
	}

	// Fuera de rango: se persiste igual, sólo se avisa.
	_, abnormal, err = svc.Log(ctx, "pet-1", "dog", LogInput{Rate: 45})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !abnormal {
		t.Fatalf("45 should be abnormal for dog")
	}
	if len(repo.items) != 2 {
		t.Fatalf("abnormal measurement should still persist")
	}
}

func TestLog_InvalidInput(t *testing.T) {
	svc := newTestService(&testRepo{})
	ctx := context.Background()

	if _, _, err := svc.Log(ctx, "", "dog", LogInput{Rate: 20}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty pet id, got %v", err)
	}
	if _, _, err := svc.Log(ctx, "pet-1", "dog", LogInput{Rate: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-positive rate, got %v", err)
	}
	if _, _, err := svc.Log(ctx, "pet-1", "dog", LogInput{Rate: -3}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative rate, got %v", err)
	}
}

func TestLog_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(&testRepo{createErr: boom})

	if _, _, err := svc.Log(context.Background(), "pet-1", "dog", LogInput{Rate: 20}); !errors.Is(err, boom) {
		t.Fatalf("expected repo error surfaced, got %v", err)
	}
}

func TestAnalytics_UsesRecentWindow(t *testing.T) {
	repo := &testRepo{}
	svc := newTestService(repo)
	ctx := context.Background()
	base := svc.now()

	// 35 mediciones; sólo las 30 más recientes cuentan. Las 5 más
	// viejas tienen un valor delator que no debe aparecer.
	for i := 0; i < 35; i++ {
		rate := 20
		if i >= 30 {
			rate = 99
		}
		repo.items = append(repo.items, Measurement{
			ID:         "m",
			PetID:      "pet-1",
			Rate:       rate,
			MeasuredAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}

	a, err := svc.Analytics(ctx, "pet-1", "dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TotalMeasurements != 30 {
		t.Fatalf("expected 30 measurements in window, got %d", a.TotalMeasurements)
	}
	if a.MaxRate != 20 {
		t.Fatalf("old measurements leaked into analytics: max %d", a.MaxRate)
	}
}

func TestAnalytics_EmptyHistory(t *testing.T) {
	svc := newTestService(&testRepo{})

	a, err := svc.Analytics(context.Background(), "pet-1", "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TotalMeasurements != 0 || a.Trend != TrendStable {
		t.Fatalf("expected empty stable analytics, got %+v", a)
	}
	if a.NormalRange.Min != 20 || a.NormalRange.Max != 30 {
		t.Fatalf("expected cat range, got %+v", a.NormalRange)
	}
}
