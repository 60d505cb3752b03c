package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vetco-api/internal/domain/messages"
)

type messageRepo struct {
	mu   sync.RWMutex
	byID map[string]messages.Message
}

func NewMessageRepo() messages.Repository {
	return &messageRepo{
		byID: make(map[string]messages.Message),
	}
}

func (r *messageRepo) Create(ctx context.Context, m messages.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("message id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("message already exists")
	}

	r.byID[m.ID] = m
	return nil
}

func (r *messageRepo) ListByParticipant(ctx context.Context, p messages.Participant) ([]messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]messages.Message, 0)
	for _, m := range r.byID {
		if m.Sender == p || m.Recipient == p {
			out = append(out, m)
		}
	}

	sortNewestFirst(out)
	return out, nil
}

func (r *messageRepo) ListBetween(ctx context.Context, a, b messages.Participant, f messages.ListFilter) ([]messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]messages.Message, 0)
	for _, m := range r.byID {
		if (m.Sender == a && m.Recipient == b) || (m.Sender == b && m.Recipient == a) {
			out = append(out, m)
		}
	}

	sortNewestFirst(out)

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	if offset >= len(out) {
		return []messages.Message{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, recipient, sender messages.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.byID {
		if m.Recipient == recipient && m.Sender == sender && !m.Read {
			m.Read = true
			r.byID[id] = m
		}
	}
	return nil
}

// Orden por SentAt desc (más reciente primero); empate por ID para
// salida estable en tests.
func sortNewestFirst(ms []messages.Message) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].SentAt.Equal(ms[j].SentAt) {
			return ms[i].SentAt.After(ms[j].SentAt)
		}
		return ms[i].ID < ms[j].ID
	})
}
