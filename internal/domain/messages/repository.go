package messages

import "context"

type ListFilter struct {
	Limit  int
	Offset int
}

// Repository devuelve siempre mensajes ordenados por SentAt descendente.
type Repository interface {
	Create(ctx context.Context, m Message) error

	// ListByParticipant trae todos los mensajes donde p es sender o recipient.
	ListByParticipant(ctx context.Context, p Participant) ([]Message, error)

	// ListBetween trae los mensajes entre a y b (en ambas direcciones).
	ListBetween(ctx context.Context, a, b Participant, f ListFilter) ([]Message, error)

	// MarkRead marca como leídos los mensajes de sender hacia recipient.
	MarkRead(ctx context.Context, recipient, sender Participant) error
}
