package vets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name       string
	ClinicName string
	Email      string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Veterinarian, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Veterinarian{}, ErrInvalidInput
	}

	v := Veterinarian{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		ClinicName: strings.TrimSpace(in.ClinicName),
		Email:      strings.TrimSpace(in.Email),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Veterinarian{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Veterinarian, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Veterinarian{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Veterinarian, error) {
	return s.repo.List(ctx)
}
