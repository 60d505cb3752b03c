package notify

import (
	"context"

	"vetco-api/internal/ports/auth"
)

// Notification es un push best-effort hacia un principal (user o vet).
type Notification struct {
	RecipientKind auth.ActorKind
	RecipientID   string

	Title string
	Body  string

	// Data extra para deep-linking en el cliente (ids, pantalla destino).
	Data map[string]string
}

// Dispatcher envía la notificación. Fire-and-forget: el caller loguea
// y descarta el error, nunca lo propaga al request.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// Noop se usa cuando el push no está configurado.
type Noop struct{}

func (Noop) Dispatch(ctx context.Context, n Notification) error { return nil }
