package schedules

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetco-api/internal/ports/auth"
	"vetco-api/internal/ports/notify"
)

type testRepo struct {
	items     map[string]Schedule
	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{items: map[string]Schedule{}}
}

func (r *testRepo) Create(_ context.Context, s Schedule) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Schedule, error) {
	s, ok := r.items[id]
	if !ok {
		return Schedule{}, errors.New("not found")
	}
	return s, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Schedule, error) {
	var out []Schedule
	for _, s := range r.items {
		if s.PetID == petID {
			out = append(out, s)
		}
	}
	return out, nil
}

type captureDispatcher struct {
	sent []notify.Notification
	err  error
}

func (d *captureDispatcher) Dispatch(_ context.Context, n notify.Notification) error {
	d.sent = append(d.sent, n)
	return d.err
}

func newTestService(repo *testRepo, d notify.Dispatcher) *Service {
	svc := NewService(repo, d, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestIssue_PersistsAndNotifiesOwner(t *testing.T) {
	repo := newTestRepo()
	dispatcher := &captureDispatcher{}
	svc := newTestService(repo, dispatcher)

	sc, err := svc.Issue(context.Background(), "vet-1", "pet-1", "user-1", IssueInput{
		Medication: "  Amoxicillin  ",
		Dosage:     "250",
		DoseUnit:   "mg",
		Frequency:  "every 12 hours",
		StartDate:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.ID == "" {
		t.Fatalf("expected generated id")
	}
	if sc.Medication != "Amoxicillin" {
		t.Fatalf("expected trimmed medication, got %q", sc.Medication)
	}
	if sc.VetID != "vet-1" || sc.PetID != "pet-1" {
		t.Fatalf("issuer/pet mismatch: %+v", sc)
	}
	if _, ok := repo.items[sc.ID]; !ok {
		t.Fatalf("schedule not persisted")
	}

	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected 1 push, got %d", len(dispatcher.sent))
	}
	n := dispatcher.sent[0]
	if n.RecipientKind != auth.ActorUser || n.RecipientID != "user-1" {
		t.Fatalf("push targeted wrong recipient: %+v", n)
	}
	if n.Data["schedule_id"] != sc.ID || n.Data["pet_id"] != "pet-1" {
		t.Fatalf("push data mismatch: %+v", n.Data)
	}
}

func TestIssue_PushFailureDoesNotFailIssue(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, &captureDispatcher{err: errors.New("expo down")})

	sc, err := svc.Issue(context.Background(), "vet-1", "pet-1", "user-1", IssueInput{
		Medication: "Meloxicam",
		StartDate:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("push failure must not fail issue: %v", err)
	}
	if _, ok := repo.items[sc.ID]; !ok {
		t.Fatalf("schedule not persisted")
	}
}

func TestIssue_InvalidInput(t *testing.T) {
	svc := newTestService(newTestRepo(), &captureDispatcher{})
	ctx := context.Background()
	start := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		vetID string
		petID string
		in    IssueInput
	}{
		{"empty vet", "", "pet-1", IssueInput{Medication: "X", StartDate: start}},
		{"empty pet", "vet-1", "", IssueInput{Medication: "X", StartDate: start}},
		{"empty medication", "vet-1", "pet-1", IssueInput{StartDate: start}},
		{"zero start date", "vet-1", "pet-1", IssueInput{Medication: "X"}},
	}
	for _, c := range cases {
		if _, err := svc.Issue(ctx, c.vetID, c.petID, "user-1", c.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestImport_PersistsPayloadAgainstOwnersPet(t *testing.T) {
	repo := newTestRepo()
	dispatcher := &captureDispatcher{}
	svc := newTestService(repo, dispatcher)

	sc, err := svc.Import(context.Background(), "pet-2", SchedulePayload{
		VetID:      "vet-7",
		Medication: "Amoxicillin",
		Dosage:     "250",
		DoseUnit:   "mg",
		Frequency:  "every 12 hours",
		StartDate:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.PetID != "pet-2" || sc.VetID != "vet-7" {
		t.Fatalf("import mismatch: %+v", sc)
	}
	if _, ok := repo.items[sc.ID]; !ok {
		t.Fatalf("imported schedule not persisted")
	}
	// El import no dispara push: el dueño ya tiene el teléfono en la mano.
	if len(dispatcher.sent) != 0 {
		t.Fatalf("import should not push, got %d", len(dispatcher.sent))
	}
}

func TestImport_InvalidPayload(t *testing.T) {
	svc := newTestService(newTestRepo(), &captureDispatcher{})
	ctx := context.Background()

	if _, err := svc.Import(ctx, "", SchedulePayload{Medication: "X", StartDate: time.Now()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty pet, got %v", err)
	}
	if _, err := svc.Import(ctx, "pet-1", SchedulePayload{StartDate: time.Now()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing medication, got %v", err)
	}
	if _, err := svc.Import(ctx, "pet-1", SchedulePayload{Medication: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero start date, got %v", err)
	}
}
