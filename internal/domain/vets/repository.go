package vets

import "context"

type Repository interface {
	Create(ctx context.Context, v Veterinarian) error
	GetByID(ctx context.Context, id string) (Veterinarian, error)
	List(ctx context.Context) ([]Veterinarian, error)
}
