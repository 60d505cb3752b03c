package breathing

import (
	"context"
	"time"
)

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Repository devuelve mediciones ordenadas por MeasuredAt descendente.
type Repository interface {
	Create(ctx context.Context, m Measurement) error
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Measurement, error)
}
