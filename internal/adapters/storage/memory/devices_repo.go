package memory

import (
	"context"
	"errors"
	"sync"

	"vetco-api/internal/domain/devices"
	"vetco-api/internal/ports/auth"
)

type deviceRepo struct {
	mu   sync.RWMutex
	byID map[string]devices.Device
}

func NewDeviceRepo() devices.Repository {
	return &deviceRepo{
		byID: make(map[string]devices.Device),
	}
}

func (r *deviceRepo) Save(ctx context.Context, d devices.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		return errors.New("device id required")
	}

	// Upsert por (owner, token): re-registrar el mismo token no duplica.
	for id, existing := range r.byID {
		if existing.OwnerKind == d.OwnerKind && existing.OwnerID == d.OwnerID && existing.PushToken == d.PushToken {
			d.ID = existing.ID
			r.byID[id] = d
			return nil
		}
	}

	r.byID[d.ID] = d
	return nil
}

func (r *deviceRepo) ListByOwner(ctx context.Context, kind auth.ActorKind, ownerID string) ([]devices.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]devices.Device, 0)
	for _, d := range r.byID {
		if d.OwnerKind == kind && d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}
