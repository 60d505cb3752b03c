package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vetco-api/internal/domain/vets"
)

type vetRepo struct {
	mu   sync.RWMutex
	byID map[string]vets.Veterinarian
}

func NewVetRepo() vets.Repository {
	return &vetRepo{
		byID: make(map[string]vets.Veterinarian),
	}
}

func (r *vetRepo) Create(ctx context.Context, v vets.Veterinarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		return errors.New("vet id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vet already exists")
	}

	r.byID[v.ID] = v
	return nil
}

func (r *vetRepo) GetByID(ctx context.Context, id string) (vets.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vets.Veterinarian{}, ErrNotFound
	}
	return v, nil
}

func (r *vetRepo) List(ctx context.Context) ([]vets.Veterinarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vets.Veterinarian, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}
