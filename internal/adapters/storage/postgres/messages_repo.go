package postgres

import (
	"context"
	"database/sql"

	"vetco-api/internal/domain/messages"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Create(ctx context.Context, m messages.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (
			id,
			sender_kind, sender_id,
			recipient_kind, recipient_id,
			content, sent_at, is_read
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		m.ID,
		string(m.Sender.Kind),
		m.Sender.ID,
		string(m.Recipient.Kind),
		m.Recipient.ID,
		m.Content,
		m.SentAt,
		m.Read,
	)
	return err
}

func (r *MessagesRepo) ListByParticipant(ctx context.Context, p messages.Participant) ([]messages.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id,
			sender_kind, sender_id,
			recipient_kind, recipient_id,
			content, sent_at, is_read
		FROM messages
		WHERE (sender_kind = $1 AND sender_id = $2)
		   OR (recipient_kind = $1 AND recipient_id = $2)
		ORDER BY sent_at DESC, id ASC
	`, string(p.Kind), p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *MessagesRepo) ListBetween(ctx context.Context, a, b messages.Participant, f messages.ListFilter) ([]messages.Message, error) {
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

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id,
			sender_kind, sender_id,
			recipient_kind, recipient_id,
			content, sent_at, is_read
		FROM messages
		WHERE (sender_kind = $1 AND sender_id = $2 AND recipient_kind = $3 AND recipient_id = $4)
		   OR (sender_kind = $3 AND sender_id = $4 AND recipient_kind = $1 AND recipient_id = $2)
		ORDER BY sent_at DESC, id ASC
		LIMIT $5 OFFSET $6
	`,
		string(a.Kind), a.ID,
		string(b.Kind), b.ID,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *MessagesRepo) MarkRead(ctx context.Context, recipient, sender messages.Participant) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE recipient_kind = $1 AND recipient_id = $2
		  AND sender_kind = $3 AND sender_id = $4
		  AND is_read = FALSE
	`,
		string(recipient.Kind), recipient.ID,
		string(sender.Kind), sender.ID,
	)
	return err
}

func scanMessages(rows *sql.Rows) ([]messages.Message, error) {
	out := make([]messages.Message, 0)
	for rows.Next() {
		var m messages.Message
		var senderKind, recipientKind string

		if err := rows.Scan(
			&m.ID,
			&senderKind,
			&m.Sender.ID,
			&recipientKind,
			&m.Recipient.ID,
			&m.Content,
			&m.SentAt,
			&m.Read,
		); err != nil {
			return nil, err
		}

		m.Sender.Kind = messages.ParticipantKind(senderKind)
		m.Recipient.Kind = messages.ParticipantKind(recipientKind)

		out = append(out, m)
	}

	return out, rows.Err()
}
