package messages

// DeriveConversations agrupa los mensajes del viewer en una conversación
// por contraparte distinta.
//
// Espera msgs ordenados por SentAt descendente (más reciente primero):
// así el primer mensaje visto para una contraparte es su LastMessage, y
// el orden de aparición de contrapartes ya es el orden por actividad
// reciente que quiere la UI.
//
// UnreadCount cuenta los mensajes del grupo dirigidos al viewer con
// Read=false.
func DeriveConversations(viewer Participant, msgs []Message) []Conversation {
	byPartner := make(map[Participant]*Conversation, len(msgs))
	order := make([]Participant, 0, len(msgs))

	for i := range msgs {
		m := msgs[i]

		partner, ok := m.Counterparty(viewer)
		if !ok {
			// El repo filtra por participante; un mensaje ajeno acá es
			// una violación de invariante del caller. Lo ignoramos.
			continue
		}

		conv, seen := byPartner[partner]
		if !seen {
			last := m
			conv = &Conversation{Partner: partner, LastMessage: &last}
			byPartner[partner] = conv
			order = append(order, partner)
		}

		if m.Recipient == viewer && !m.Read {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, p := range order {
		out = append(out, *byPartner[p])
	}
	return out
}
