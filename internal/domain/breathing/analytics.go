package breathing

import (
	"math"
	"strings"
)

// Rango normal por especie (respiraciones/min). Cualquier otra especie
// cae en defaultRange.
var normalRanges = map[string]Range{
	"dog":    {Min: 10, Max: 30},
	"cat":    {Min: 20, Max: 30},
	"rabbit": {Min: 30, Max: 60},
	"bird":   {Min: 15, Max: 45},
}

var defaultRange = Range{Min: 15, Max: 40}

// NormalRangeFor devuelve el rango normal de la especie (case-insensitive).
func NormalRangeFor(species string) Range {
	if r, ok := normalRanges[strings.ToLower(strings.TrimSpace(species))]; ok {
		return r
	}
	return defaultRange
}

// IsAbnormal indica si rate cae estrictamente fuera del rango normal.
// Es solo un aviso: nunca bloquea el registro de la medición.
func IsAbnormal(rate int, species string) bool {
	r := NormalRangeFor(species)
	return rate < r.Min || rate > r.Max
}

// Para el trend comparamos las 3 mediciones más recientes contra las 3
// anteriores (posiciones 0–2 vs 3–5 de la lista más-reciente-primero).
const (
	trendGroupSize = 3
	trendThreshold = 2.0
)

// ComputeAnalytics resume las mediciones de una mascota. Espera ms
// ordenado por MeasuredAt descendente; el caller acota el tamaño
// (típicamente las últimas 30). Función total: lista vacía produce
// ceros y trend stable, nunca error.
func ComputeAnalytics(ms []Measurement, species string) Analytics {
	out := Analytics{
		TotalMeasurements: len(ms),
		Trend:             TrendStable,
		NormalRange:       NormalRangeFor(species),
	}

	if len(ms) == 0 {
		return out
	}

	last := ms[0]
	out.LastMeasurement = &last

	sum := 0
	out.MinRate = ms[0].Rate
	out.MaxRate = ms[0].Rate
	for _, m := range ms {
		sum += m.Rate
		if m.Rate < out.MinRate {
			out.MinRate = m.Rate
		}
		if m.Rate > out.MaxRate {
			out.MaxRate = m.Rate
		}
	}
	out.AverageRate = int(math.Round(float64(sum) / float64(len(ms))))

	out.Trend = classifyTrend(ms)

	return out
}

// classifyTrend: con menos de 6 mediciones siempre stable. Si la
// diferencia de promedios es menor a trendThreshold, stable; si el
// promedio reciente supera al anterior, increasing; si no, decreasing.
func classifyTrend(ms []Measurement) Trend {
	if len(ms) < 2*trendGroupSize {
		return TrendStable
	}

	recent := meanRate(ms[0:trendGroupSize])
	older := meanRate(ms[trendGroupSize : 2*trendGroupSize])

	if math.Abs(recent-older) < trendThreshold {
		return TrendStable
	}
	if recent > older {
		return TrendIncreasing
	}
	return TrendDecreasing
}

func meanRate(ms []Measurement) float64 {
	sum := 0
	for _, m := range ms {
		sum += m.Rate
	}
	return float64(sum) / float64(len(ms))
}
