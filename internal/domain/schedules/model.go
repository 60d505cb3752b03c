package schedules

import "time"

// Schedule es una pauta de medicación emitida por un veterinario para
// una mascota, distribuida vía QR. Inmutable una vez emitida.
type Schedule struct {
	ID    string
	PetID string
	VetID string

	Medication string
	Dosage     string // "2"
	DoseUnit   string // "ml", "mg", etc.
	Frequency  string // texto por ahora: "every 12h"

	StartDate time.Time
	EndDate   *time.Time

	Notes string

	CreatedAt time.Time
}
