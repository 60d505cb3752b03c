package messages

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"vetco-api/internal/ports/notify"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Message
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Message{}}
}

func (r *testRepo) Create(ctx context.Context, m Message) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) ListByParticipant(ctx context.Context, p Participant) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.byID {
		if m.Sender == p || m.Recipient == p {
			out = append(out, m)
		}
	}
	sortDesc(out)
	return out, nil
}

func (r *testRepo) ListBetween(ctx context.Context, a, b Participant, f ListFilter) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.byID {
		if (m.Sender == a && m.Recipient == b) || (m.Sender == b && m.Recipient == a) {
			out = append(out, m)
		}
	}
	sortDesc(out)
	return out, nil
}

func (r *testRepo) MarkRead(ctx context.Context, recipient, sender Participant) error {
	for id, m := range r.byID {
		if m.Recipient == recipient && m.Sender == sender {
			m.Read = true
			r.byID[id] = m
		}
	}
	return nil
}

func sortDesc(ms []Message) {
	sort.Slice(ms, func(i, j int) bool {
		return ms[i].SentAt.After(ms[j].SentAt)
	})
}

// captureDispatcher acumula los pushes enviados.
type captureDispatcher struct {
	sent []notify.Notification
	err  error
}

func (d *captureDispatcher) Dispatch(ctx context.Context, n notify.Notification) error {
	d.sent = append(d.sent, n)
	return d.err
}

// -------------------------
// Tests
// -------------------------

func TestService_Send_PersistsAndNotifiesRecipient(t *testing.T) {
	repo := newTestRepo()
	disp := &captureDispatcher{}
	svc := NewService(repo, disp, nil)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	sender := Participant{Kind: KindUser, ID: "u1"}
	m, err := svc.Send(context.Background(), sender, SendInput{
		Recipient: Participant{Kind: KindVet, ID: "vet-1"},
		Content:   "  hola doc  ",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if m.Content != "hola doc" {
		t.Fatalf("expected trimmed content, got %q", m.Content)
	}
	if m.SentAt != now || m.Read {
		t.Fatalf("expected SentAt=now and unread, got %+v", m)
	}
	if _, ok := repo.byID[m.ID]; !ok {
		t.Fatalf("expected message persisted")
	}

	if len(disp.sent) != 1 {
		t.Fatalf("expected 1 push, got %d", len(disp.sent))
	}
	if disp.sent[0].RecipientID != "vet-1" {
		t.Fatalf("expected push to vet-1, got %s", disp.sent[0].RecipientID)
	}
}

func TestService_Send_PushFailureDoesNotFailSend(t *testing.T) {
	repo := newTestRepo()
	disp := &captureDispatcher{err: errors.New("expo down")}
	svc := NewService(repo, disp, nil)

	_, err := svc.Send(context.Background(), Participant{Kind: KindUser, ID: "u1"}, SendInput{
		Recipient: Participant{Kind: KindVet, ID: "vet-1"},
		Content:   "hola",
	})
	if err != nil {
		t.Fatalf("expected send to succeed despite push failure, got %v", err)
	}
}

func TestService_Send_RejectsInvalidInput(t *testing.T) {
	svc := NewService(newTestRepo(), nil, nil)
	sender := Participant{Kind: KindUser, ID: "u1"}

	cases := []SendInput{
		{Recipient: Participant{Kind: KindVet, ID: "v1"}, Content: "   "},
		{Recipient: Participant{Kind: KindVet, ID: ""}, Content: "hola"},
		{Recipient: Participant{Kind: "alien", ID: "v1"}, Content: "hola"},
	}
	for i, in := range cases {
		if _, err := svc.Send(context.Background(), sender, in); err != ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	if _, err := svc.Send(context.Background(), Participant{}, SendInput{
		Recipient: Participant{Kind: KindVet, ID: "v1"},
		Content:   "hola",
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty sender, got %v", err)
	}
}

func TestService_Thread_MarksViewerMessagesRead(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	viewer := Participant{Kind: KindUser, ID: "u1"}
	vet := Participant{Kind: KindVet, ID: "vet-1"}

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	_ = repo.Create(context.Background(), Message{ID: "m1", Sender: vet, Recipient: viewer, Content: "a", SentAt: base})
	_ = repo.Create(context.Background(), Message{ID: "m2", Sender: viewer, Recipient: vet, Content: "b", SentAt: base.Add(time.Minute)})

	msgs, err := svc.Thread(context.Background(), viewer, vet, ListFilter{})
	if err != nil {
		t.Fatalf("Thread returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "m2" {
		t.Fatalf("expected newest first, got %s", msgs[0].ID)
	}

	// El dirigido al viewer quedó leído; el que él mandó sigue igual.
	if !repo.byID["m1"].Read {
		t.Fatalf("expected m1 marked read")
	}
	if repo.byID["m2"].Read {
		t.Fatalf("expected m2 untouched")
	}
}

func TestService_OpenConversation_EmptyThreadIsSynthetic(t *testing.T) {
	svc := NewService(newTestRepo(), nil, nil)

	viewer := Participant{Kind: KindUser, ID: "u1"}
	vet := Participant{Kind: KindVet, ID: "vet-1"}

	conv, err := svc.OpenConversation(context.Background(), viewer, vet)
	if err != nil {
		t.Fatalf("OpenConversation returned error: %v", err)
	}
	if conv.Partner != vet {
		t.Fatalf("expected partner vet-1, got %+v", conv.Partner)
	}
	if conv.LastMessage != nil {
		t.Fatalf("expected empty last message, got %+v", conv.LastMessage)
	}
	if conv.UnreadCount != 0 {
		t.Fatalf("expected unread 0, got %d", conv.UnreadCount)
	}
}

func TestService_OpenConversation_WithHistory(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	viewer := Participant{Kind: KindUser, ID: "u1"}
	vet := Participant{Kind: KindVet, ID: "vet-1"}

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	_ = repo.Create(context.Background(), Message{ID: "m1", Sender: vet, Recipient: viewer, Content: "a", SentAt: base})

	conv, err := svc.OpenConversation(context.Background(), viewer, vet)
	if err != nil {
		t.Fatalf("OpenConversation returned error: %v", err)
	}
	if conv.LastMessage == nil || conv.LastMessage.ID != "m1" {
		t.Fatalf("expected last message m1, got %+v", conv.LastMessage)
	}
	if conv.UnreadCount != 1 {
		t.Fatalf("expected unread 1, got %d", conv.UnreadCount)
	}
}
