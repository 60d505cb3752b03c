package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vetco-api/internal/domain/breathing"
)

type BreathingRepo struct {
	db *sql.DB
}

func NewBreathingRepo(db *sql.DB) *BreathingRepo {
	return &BreathingRepo{db: db}
}

func (r *BreathingRepo) Create(ctx context.Context, m breathing.Measurement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breathing_rates (
			id, pet_id,
			rate, note,
			measured_at, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		m.ID,
		m.PetID,
		m.Rate,
		m.Note,
		m.MeasuredAt,
		m.RecordedAt,
	)
	return err
}

func (r *BreathingRepo) ListByPet(ctx context.Context, petID string, filter breathing.ListFilter) ([]breathing.Measurement, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			rate, note,
			measured_at, recorded_at
		FROM breathing_rates
		WHERE pet_id = $1
	`)

	args := []any{petID}
	argN := 2

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND measured_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND measured_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}

	sb.WriteString(" ORDER BY measured_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breathing.Measurement, 0)
	for rows.Next() {
		var m breathing.Measurement
		if err := rows.Scan(
			&m.ID,
			&m.PetID,
			&m.Rate,
			&m.Note,
			&m.MeasuredAt,
			&m.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}
