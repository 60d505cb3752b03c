package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetco-api/internal/domain/schedules"
)

type SchedulesRepo struct {
	db *sql.DB
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

func (r *SchedulesRepo) Create(ctx context.Context, s schedules.Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_schedules (
			id, pet_id, vet_id,
			medication, dosage, dose_unit, frequency,
			start_date, end_date,
			notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		s.ID,
		s.PetID,
		s.VetID,
		s.Medication,
		s.Dosage,
		s.DoseUnit,
		s.Frequency,
		s.StartDate,
		s.EndDate,
		s.Notes,
		s.CreatedAt,
	)
	return err
}

func (r *SchedulesRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedules.Schedule{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, vet_id,
			medication, dosage, dose_unit, frequency,
			start_date, end_date,
			notes, created_at
		FROM medication_schedules
		WHERE id = $1
	`, id)

	var s schedules.Schedule
	if err := row.Scan(
		&s.ID,
		&s.PetID,
		&s.VetID,
		&s.Medication,
		&s.Dosage,
		&s.DoseUnit,
		&s.Frequency,
		&s.StartDate,
		&s.EndDate,
		&s.Notes,
		&s.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return schedules.Schedule{}, ErrNotFound
		}
		return schedules.Schedule{}, err
	}

	return s, nil
}

func (r *SchedulesRepo) ListByPet(ctx context.Context, petID string) ([]schedules.Schedule, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, vet_id,
			medication, dosage, dose_unit, frequency,
			start_date, end_date,
			notes, created_at
		FROM medication_schedules
		WHERE pet_id = $1
		ORDER BY created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.Schedule, 0)
	for rows.Next() {
		var s schedules.Schedule
		if err := rows.Scan(
			&s.ID,
			&s.PetID,
			&s.VetID,
			&s.Medication,
			&s.Dosage,
			&s.DoseUnit,
			&s.Frequency,
			&s.StartDate,
			&s.EndDate,
			&s.Notes,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
