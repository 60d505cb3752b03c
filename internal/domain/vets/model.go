package vets

import "time"

// Veterinarian es la ficha del directorio de veterinarios: contrapartes
// de mensajería y emisores de pautas de medicación.
type Veterinarian struct {
	ID string

	Name       string
	ClinicName string
	Email      string

	CreatedAt time.Time
}
