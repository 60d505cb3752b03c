package pets

import "time"

// Species define las especies con rango respiratorio conocido.
// Se acepta texto libre; cualquier otra especie usa el rango default.
// @Enum dog, cat, rabbit, bird
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa el perfil básico de una mascota registrada en el sistema.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string // dog, cat, rabbit, bird u otra (texto libre)
	Breed   string
	Sex     string // male, female, unknown

	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
