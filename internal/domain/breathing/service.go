package breathing

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

// La analítica se calcula sobre las últimas analyticsWindow mediciones.
const analyticsWindow = 30

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

type LogInput struct {
	Rate       int
	Note       string
	MeasuredAt time.Time
}

// Log registra una medición. La medición se persiste siempre; si el
// valor cae fuera del rango normal de la especie, el segundo retorno
// lo avisa para que el handler adjunte la advertencia.
func (s *Service) Log(ctx context.Context, petID, species string, in LogInput) (Measurement, bool, error) {
	if strings.TrimSpace(petID) == "" {
		return Measurement{}, false, ErrInvalidInput
	}
	if in.Rate <= 0 {
		return Measurement{}, false, ErrInvalidInput
	}

	now := s.now()
	measuredAt := in.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = now
	}

	m := Measurement{
		ID:         uuid.NewString(),
		PetID:      petID,
		Rate:       in.Rate,
		Note:       strings.TrimSpace(in.Note),
		MeasuredAt: measuredAt,
		RecordedAt: now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Measurement{}, false, err
	}

	return m, IsAbnormal(m.Rate, species), nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Measurement, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

// Analytics resume las últimas mediciones de la mascota.
func (s *Service) Analytics(ctx context.Context, petID, species string) (Analytics, error) {
	if strings.TrimSpace(petID) == "" {
		return Analytics{}, ErrInvalidInput
	}

	ms, err := s.repo.ListByPet(ctx, petID, ListFilter{Limit: analyticsWindow})
	if err != nil {
		return Analytics{}, err
	}

	return ComputeAnalytics(ms, species), nil
}
