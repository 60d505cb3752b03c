package messages

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

type SendInput struct {
	Recipient Participant
	Content   string
}

func (s *Service) Send(ctx context.Context, sender Participant, in SendInput) (Message, error) {
	if !validParticipant(sender) || !validParticipant(in.Recipient) {
		return Message{}, ErrInvalidInput
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return Message{}, ErrInvalidInput
	}

	m := Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: in.Recipient,
		Content:   content,
		SentAt:    s.now(),
		Read:      false,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, err
	}

	// Push best-effort: un fallo acá jamás afecta al request.
	s.dispatchNewMessage(ctx, m)

	return m, nil
}

// Conversations agrupa todos los mensajes del viewer por contraparte.
func (s *Service) Conversations(ctx context.Context, viewer Participant) ([]Conversation, error) {
	if !validParticipant(viewer) {
		return nil, ErrInvalidInput
	}

	msgs, err := s.repo.ListByParticipant(ctx, viewer)
	if err != nil {
		return nil, err
	}

	return DeriveConversations(viewer, msgs), nil
}

// Thread devuelve los mensajes entre viewer y partner (más reciente
// primero) y marca como leídos los dirigidos al viewer: abrir la
// conversación es el acto de leerla.
func (s *Service) Thread(ctx context.Context, viewer, partner Participant, f ListFilter) ([]Message, error) {
	if !validParticipant(viewer) || !validParticipant(partner) {
		return nil, ErrInvalidInput
	}

	msgs, err := s.repo.ListBetween(ctx, viewer, partner, f)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, viewer, partner); err != nil {
		// El fetch ya salió bien; no rompemos la lectura por esto.
		s.logError("mark read failed", err)
	}

	return msgs, nil
}

// OpenConversation devuelve la conversación con partner. Si no hay
// mensajes previos produce una entrada sintética (LastMessage nil,
// UnreadCount 0) para que la UI muestre el hilo vacío de inmediato.
func (s *Service) OpenConversation(ctx context.Context, viewer, partner Participant) (Conversation, error) {
	if !validParticipant(viewer) || !validParticipant(partner) {
		return Conversation{}, ErrInvalidInput
	}

	msgs, err := s.repo.ListBetween(ctx, viewer, partner, ListFilter{})
	if err != nil {
		return Conversation{}, err
	}

	if len(msgs) == 0 {
		return Conversation{Partner: partner}, nil
	}

	convs := DeriveConversations(viewer, msgs)
	return convs[0], nil
}

func (s *Service) dispatchNewMessage(ctx context.Context, m Message) {
	n := notify.Notification{
		RecipientKind: actorKind(m.Recipient.Kind),
		RecipientID:   m.Recipient.ID,
		Title:         "New message",
		Body:          preview(m.Content),
		Data: map[string]string{
			"type":         "message",
			"partner_kind": string(m.Sender.Kind),
			"partner_id":   m.Sender.ID,
		},
	}
	if err := s.notifier.Dispatch(ctx, n); err != nil {
		s.logError("push dispatch failed", err)
	}
}

func (s *Service) logError(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Error(msg, map[string]any{"error": err.Error()})
}

func validParticipant(p Participant) bool {
	if strings.TrimSpace(p.ID) == "" {
		return false
	}
	return p.Kind == KindUser || p.Kind == KindVet
}

func actorKind(k ParticipantKind) auth.ActorKind {
	if k == KindVet {
		return auth.ActorVet
	}
	return auth.ActorUser
}

func preview(content string) string {
	const max = 120
	if len(content) <= max {
		return content
	}
	return content[:max] + "…"
}
