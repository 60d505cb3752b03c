package devices

import (
	"context"

	"vetco-api/internal/ports/auth"
)

type Repository interface {
	// Save upserta por (owner, push token): re-registrar no duplica.
	Save(ctx context.Context, d Device) error
	ListByOwner(ctx context.Context, kind auth.ActorKind, ownerID string) ([]Device, error)
}
