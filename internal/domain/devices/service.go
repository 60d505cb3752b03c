package devices

import (
	"context"
	"errors"
	"strings"
	"time"

	"vetco-api/internal/ports/auth"

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
	PushToken string
	Platform  string
}

func (s *Service) Register(ctx context.Context, kind auth.ActorKind, ownerID string, in RegisterInput) (Device, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Device{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PushToken) == "" {
		return Device{}, ErrInvalidInput
	}

	d := Device{
		ID:        uuid.NewString(),
		OwnerKind: kind,
		OwnerID:   ownerID,
		PushToken: strings.TrimSpace(in.PushToken),
		Platform:  strings.ToLower(strings.TrimSpace(in.Platform)),
		CreatedAt: s.now(),
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return Device{}, err
	}
	return d, nil
}

// PushTokens implementa el TokenSource del dispatcher Expo.
func (s *Service) PushTokens(ctx context.Context, kind auth.ActorKind, ownerID string) ([]string, error) {
	ds, err := s.repo.ListByOwner(ctx, kind, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.PushToken)
	}
	return out, nil
}
