package schedules

import (
	"context"
	"errors"
	"strings"
	"time"

	"vetco-api/internal/platform/logger"
	"vetco-api/internal/ports/auth"
	"vetco-api/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo     Repository
	notifier notify.Dispatcher
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Dispatcher, log logger.Logger) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

type IssueInput struct {
	Medication string
	Dosage     string
	DoseUnit   string
	Frequency  string
	StartDate  time.Time
	EndDate    *time.Time
	Notes      string
}

// Issue crea una pauta emitida por vetID para la mascota y avisa al
// dueño por push (best-effort).
func (s *Service) Issue(ctx context.Context, vetID, petID, ownerUserID string, in IssueInput) (Schedule, error) {
	if strings.TrimSpace(vetID) == "" || strings.TrimSpace(petID) == "" {
		return Schedule{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Medication) == "" {
		return Schedule{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return Schedule{}, ErrInvalidInput
	}

	sc := Schedule{
		ID:         uuid.NewString(),
		PetID:      petID,
		VetID:      vetID,
		Medication: strings.TrimSpace(in.Medication),
		Dosage:     strings.TrimSpace(in.Dosage),
		DoseUnit:   strings.TrimSpace(in.DoseUnit),
		Frequency:  strings.TrimSpace(in.Frequency),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, err
	}

	if strings.TrimSpace(ownerUserID) != "" {
		s.dispatchIssued(ctx, sc, ownerUserID)
	}

	return sc, nil
}

// Import persiste una pauta escaneada desde un QR sobre la mascota del
// dueño. La pauta importada conserva el vet emisor del payload.
func (s *Service) Import(ctx context.Context, petID string, p SchedulePayload) (Schedule, error) {
	if strings.TrimSpace(petID) == "" {
		return Schedule{}, ErrInvalidInput
	}
	if strings.TrimSpace(p.Medication) == "" || p.StartDate.IsZero() {
		return Schedule{}, ErrInvalidInput
	}

	sc := Schedule{
		ID:         uuid.NewString(),
		PetID:      petID,
		VetID:      strings.TrimSpace(p.VetID),
		Medication: strings.TrimSpace(p.Medication),
		Dosage:     strings.TrimSpace(p.Dosage),
		DoseUnit:   strings.TrimSpace(p.DoseUnit),
		Frequency:  strings.TrimSpace(p.Frequency),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Notes:      strings.TrimSpace(p.Notes),
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schedule{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Schedule, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) dispatchIssued(ctx context.Context, sc Schedule, ownerUserID string) {
	n := notify.Notification{
		RecipientKind: auth.ActorUser,
		RecipientID:   ownerUserID,
		Title:         "New medication schedule",
		Body:          sc.Medication,
		Data: map[string]string{
			"type":        "schedule",
			"schedule_id": sc.ID,
			"pet_id":      sc.PetID,
		},
	}
	if err := s.notifier.Dispatch(ctx, n); err != nil && s.log != nil {
		s.log.Error("push dispatch failed", map[string]any{"error": err.Error()})
	}
}
