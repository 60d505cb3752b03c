package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vetco-api/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

func (r *VetsRepo) Create(ctx context.Context, v vets.Veterinarian) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO veterinarians (
			id, name, clinic_name, email, created_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		v.ID,
		v.Name,
		v.ClinicName,
		v.Email,
		v.CreatedAt,
	)
	return err
}

func (r *VetsRepo) GetByID(ctx context.Context, id string) (vets.Veterinarian, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vets.Veterinarian{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, clinic_name, email, created_at
		FROM veterinarians
		WHERE id = $1
	`, id)

	var v vets.Veterinarian
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.ClinicName,
		&v.Email,
		&v.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vets.Veterinarian{}, ErrNotFound
		}
		return vets.Veterinarian{}, err
	}

	return v, nil
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Veterinarian, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, clinic_name, email, created_at
		FROM veterinarians
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Veterinarian, 0)
	for rows.Next() {
		var v vets.Veterinarian
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.ClinicName,
			&v.Email,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}
