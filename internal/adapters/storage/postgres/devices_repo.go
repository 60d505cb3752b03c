package postgres

import (
	"context"
	"database/sql"

	"vetco-api/internal/domain/devices"
	"vetco-api/internal/ports/auth"
)

type DevicesRepo struct {
	db *sql.DB
}

func NewDevicesRepo(db *sql.DB) *DevicesRepo {
	return &DevicesRepo{db: db}
}

func (r *DevicesRepo) Save(ctx context.Context, d devices.Device) error {
	// Upsert por (owner, token); requiere el unique index de la tabla.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (
			id, owner_kind, owner_id, push_token, platform, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (owner_kind, owner_id, push_token)
		DO UPDATE SET platform = EXCLUDED.platform
	`,
		d.ID,
		string(d.OwnerKind),
		d.OwnerID,
		d.PushToken,
		d.Platform,
		d.CreatedAt,
	)
	return err
}

func (r *DevicesRepo) ListByOwner(ctx context.Context, kind auth.ActorKind, ownerID string) ([]devices.Device, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_kind, owner_id, push_token, platform, created_at
		FROM devices
		WHERE owner_kind = $1 AND owner_id = $2
	`, string(kind), ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]devices.Device, 0)
	for rows.Next() {
		var d devices.Device
		var ownerKind string
		if err := rows.Scan(
			&d.ID,
			&ownerKind,
			&d.OwnerID,
			&d.PushToken,
			&d.Platform,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.OwnerKind = auth.ActorKind(ownerKind)
		out = append(out, d)
	}

	return out, rows.Err()
}
