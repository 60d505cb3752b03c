package schedules

import (
	"errors"
	"testing"
	"time"
)

func TestQRCode_RoundTrip(t *testing.T) {
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	sc := Schedule{
		ID:         "sched-1",
		PetID:      "pet-1",
		VetID:      "vet-1",
		Medication: "Amoxicillin",
		Dosage:     "250",
		DoseUnit:   "mg",
		Frequency:  "every 12 hours",
		StartDate:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		EndDate:    &end,
		Notes:      "with food",
	}

	raw, err := EncodeQRCode(sc)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	p, err := ParseQRCode(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.VetID != "vet-1" || p.Medication != "Amoxicillin" || p.Dosage != "250" ||
		p.DoseUnit != "mg" || p.Frequency != "every 12 hours" || p.Notes != "with food" {
		t.Fatalf("payload mismatch: %+v", p)
	}
	if !p.StartDate.Equal(sc.StartDate) {
		t.Fatalf("start date mismatch: %v", p.StartDate)
	}
	if p.EndDate == nil || !p.EndDate.Equal(end) {
		t.Fatalf("end date mismatch: %v", p.EndDate)
	}
}

func TestQRCode_RoundTripWithoutEndDate(t *testing.T) {
	raw, err := EncodeQRCode(Schedule{
		VetID:      "vet-1",
		Medication: "Meloxicam",
		StartDate:  time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	p, err := ParseQRCode(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.EndDate != nil {
		t.Fatalf("expected nil end date, got %v", p.EndDate)
	}
}

func TestParseQRCode_RejectsForeignPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"wrong type", `{"type":"SOMETHING_ELSE","version":1,"data":{}}`},
		{"missing type", `{"version":1,"data":{}}`},
		{"version zero", `{"type":"VETCO_MEDICATION_SCHEDULE","version":0,"data":{}}`},
		{"plain url", `https://example.com/menu`},
		{"garbage", `not json at all`},
		{"empty", ``},
	}
	for _, c := range cases {
		if _, err := ParseQRCode(c.raw); !errors.Is(err, ErrInvalidQRPayload) {
			t.Fatalf("%s: expected ErrInvalidQRPayload, got %v", c.name, err)
		}
	}
}

func TestParseQRCode_AcceptsNewerVersions(t *testing.T) {
	// Versiones futuras se aceptan; los campos desconocidos se ignoran.
	raw := `{"type":"VETCO_MEDICATION_SCHEDULE","version":2,"data":{"vet_id":"vet-9","medication":"X","start_date":"2026-03-18T00:00:00Z","extra":"ignored"}}`
	p, err := ParseQRCode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.VetID != "vet-9" || p.Medication != "X" {
		t.Fatalf("payload mismatch: %+v", p)
	}
}
