package messages

import "time"

// ParticipantKind define los dos lados posibles de un mensaje.
// @Enum user, vet
type ParticipantKind string

const (
	KindUser ParticipantKind = "user"
	KindVet  ParticipantKind = "vet"
)

// Participant identifica a un extremo del mensaje (dueño o veterinario).
// Reemplaza el esquema de cuatro FKs nullables: un mensaje siempre tiene
// exactamente un sender y un recipient, cada uno con su kind.
type Participant struct {
	Kind ParticipantKind
	ID   string
}

// Message es inmutable una vez creado, salvo Read (false -> true
// cuando el destinatario abre la conversación).
type Message struct {
	ID string

	Sender    Participant
	Recipient Participant

	Content string
	SentAt  time.Time
	Read    bool
}

// Counterparty devuelve el participante que no es el viewer.
// ok=false si el viewer no participa en el mensaje (no debería pasar
// con los filtros del repositorio).
func (m Message) Counterparty(viewer Participant) (Participant, bool) {
	switch {
	case m.Sender == viewer:
		return m.Recipient, true
	case m.Recipient == viewer:
		return m.Sender, true
	default:
		return Participant{}, false
	}
}

// Conversation es derivada, no persistida: se recalcula en cada request
// a partir de los mensajes planos del viewer.
type Conversation struct {
	Partner     Participant
	LastMessage *Message
	UnreadCount int
}
