package breathing

import (
	"testing"
	"time"
)

// ratesToMeasurements arma la lista más-reciente-primero a partir de
// los valores dados (el índice 0 es el más nuevo).
func ratesToMeasurements(rates ...int) []Measurement {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	out := make([]Measurement, 0, len(rates))
	for i, r := range rates {
		out = append(out, Measurement{
			ID:         "m" + string(rune('a'+i)),
			PetID:      "pet-1",
			Rate:       r,
			MeasuredAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestNormalRangeFor_CaseInsensitive(t *testing.T) {
	for _, s := range []string{"DOG", "dog", "Dog"} {
		r := NormalRangeFor(s)
		if r.Min != 10 || r.Max != 30 {
			t.Fatalf("NormalRangeFor(%q) = %+v, expected {10 30}", s, r)
		}
	}
}

func TestNormalRangeFor_KnownSpecies(t *testing.T) {
	cases := []struct {
		species  string
		min, max int
	}{
		{"dog", 10, 30},
		{"cat", 20, 30},
		{"rabbit", 30, 60},
		{"bird", 15, 45},
	}
	for _, c := range cases {
		r := NormalRangeFor(c.species)
		if r.Min != c.min || r.Max != c.max {
			t.Fatalf("NormalRangeFor(%q) = %+v, expected {%d %d}", c.species, r, c.min, c.max)
		}
	}
}

func TestNormalRangeFor_UnknownSpeciesDefaults(t *testing.T) {
	r := NormalRangeFor("iguana")
	if r.Min != 15 || r.Max != 40 {
		t.Fatalf("NormalRangeFor(iguana) = %+v, expected {15 40}", r)
	}
}

func TestIsAbnormal_StrictlyOutsideRange(t *testing.T) {
	if !IsAbnormal(35, "dog") {
		t.Fatalf("expected 35 abnormal for dog (max 30)")
	}
	if IsAbnormal(15, "dog") {
		t.Fatalf("expected 15 normal for dog")
	}
	// Los bordes son normales (estrictamente fuera = anormal).
	if IsAbnormal(10, "dog") || IsAbnormal(30, "dog") {
		t.Fatalf("expected range edges normal for dog")
	}
	if !IsAbnormal(9, "dog") {
		t.Fatalf("expected 9 abnormal for dog (min 10)")
	}
}

func TestComputeAnalytics_Empty(t *testing.T) {
	a := ComputeAnalytics(nil, "dog")

	if a.TotalMeasurements != 0 || a.AverageRate != 0 || a.MinRate != 0 || a.MaxRate != 0 {
		t.Fatalf("expected zeroed analytics, got %+v", a)
	}
	if a.Trend != TrendStable {
		t.Fatalf("expected stable trend for empty input, got %s", a.Trend)
	}
	if a.LastMeasurement != nil {
		t.Fatalf("expected no last measurement")
	}
	if a.NormalRange.Min != 10 || a.NormalRange.Max != 30 {
		t.Fatalf("expected dog range even with no data, got %+v", a.NormalRange)
	}
}

func TestComputeAnalytics_Summary(t *testing.T) {
	ms := ratesToMeasurements(22, 18, 25)
	a := ComputeAnalytics(ms, "cat")

	if a.TotalMeasurements != 3 {
		t.Fatalf("expected 3 measurements, got %d", a.TotalMeasurements)
	}
	// (22+18+25)/3 = 21.67 => 22
	if a.AverageRate != 22 {
		t.Fatalf("expected average 22, got %d", a.AverageRate)
	}
	if a.MinRate != 18 || a.MaxRate != 25 {
		t.Fatalf("expected min 18 max 25, got %d/%d", a.MinRate, a.MaxRate)
	}
	if a.LastMeasurement == nil || a.LastMeasurement.Rate != 22 {
		t.Fatalf("expected last measurement rate 22, got %+v", a.LastMeasurement)
	}
}

func TestComputeAnalytics_MinAvgMaxOrdering(t *testing.T) {
	cases := [][]int{
		{20},
		{10, 30},
		{15, 15, 15},
		{8, 40, 22, 31, 19, 27, 12},
	}
	for _, rates := range cases {
		a := ComputeAnalytics(ratesToMeasurements(rates...), "dog")
		if a.MinRate > a.AverageRate || a.AverageRate > a.MaxRate {
			t.Fatalf("rates %v: expected min <= avg <= max, got %d/%d/%d",
				rates, a.MinRate, a.AverageRate, a.MaxRate)
		}
	}
}

func TestComputeAnalytics_Trend_FewerThanSixIsStable(t *testing.T) {
	a := ComputeAnalytics(ratesToMeasurements(10, 20, 30, 40, 50), "dog")
	if a.Trend != TrendStable {
		t.Fatalf("expected stable with 5 measurements, got %s", a.Trend)
	}
}

func TestComputeAnalytics_Trend_LiteralSignConvention(t *testing.T) {
	// Más reciente primero [20,20,20,30,30,30]: recentMean 20 < olderMean 30
	// => decreasing, aunque la serie cronológica "venía bajando" suene raro.
	a := ComputeAnalytics(ratesToMeasurements(20, 20, 20, 30, 30, 30), "dog")
	if a.Trend != TrendDecreasing {
		t.Fatalf("expected decreasing, got %s", a.Trend)
	}

	a = ComputeAnalytics(ratesToMeasurements(30, 30, 30, 20, 20, 20), "dog")
	if a.Trend != TrendIncreasing {
		t.Fatalf("expected increasing, got %s", a.Trend)
	}
}

func TestComputeAnalytics_Trend_SmallDeltaIsStable(t *testing.T) {
	// |recentMean - olderMean| = 1.0 < 2 => stable
	a := ComputeAnalytics(ratesToMeasurements(21, 21, 21, 20, 20, 20), "dog")
	if a.Trend != TrendStable {
		t.Fatalf("expected stable for delta < 2, got %s", a.Trend)
	}
}

func TestComputeAnalytics_Trend_UsesOnlyFirstSixPositions(t *testing.T) {
	// Las posiciones 6+ no afectan el trend.
	withTail := ratesToMeasurements(20, 20, 20, 30, 30, 30, 99, 99, 99)
	a := ComputeAnalytics(withTail, "dog")
	if a.Trend != TrendDecreasing {
		t.Fatalf("expected decreasing regardless of tail, got %s", a.Trend)
	}
}
