package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vetco-api/internal/domain/breathing"
)

type breathingRepo struct {
	mu   sync.RWMutex
	byID map[string]breathing.Measurement
}

func NewBreathingRepo() breathing.Repository {
	return &breathingRepo{
		byID: make(map[string]breathing.Measurement),
	}
}

func (r *breathingRepo) Create(ctx context.Context, m breathing.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("measurement id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("measurement already exists")
	}

	r.byID[m.ID] = m
	return nil
}

func (r *breathingRepo) ListByPet(ctx context.Context, petID string, filter breathing.ListFilter) ([]breathing.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]breathing.Measurement, 0)
	for _, m := range r.byID {
		if m.PetID != petID {
			continue
		}
		if filter.From != nil && m.MeasuredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.MeasuredAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}

	// Orden por MeasuredAt desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].MeasuredAt.After(out[j].MeasuredAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
