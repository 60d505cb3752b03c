package breathing

import "time"

// Measurement es una medición de frecuencia respiratoria; inmutable una
// vez creada (nunca se edita ni se borra desde los flujos del producto).
type Measurement struct {
	ID    string
	PetID string

	// Respiraciones por minuto, siempre > 0.
	Rate int

	Note string

	MeasuredAt time.Time
	RecordedAt time.Time
}

// Trend clasifica la comparación entre el promedio reciente y el anterior.
// @Enum increasing, decreasing, stable
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Range es el intervalo normal (respiraciones/min) para una especie.
type Range struct {
	Min int
	Max int
}

// Analytics es derivado, no persistido: se recalcula por request sobre
// las mediciones más recientes de la mascota.
type Analytics struct {
	TotalMeasurements int
	AverageRate       int
	MinRate           int
	MaxRate           int
	Trend             Trend
	NormalRange       Range
	LastMeasurement   *Measurement
}
