package schedules

import (
	"encoding/json"
	"errors"
	"time"
)

// El QR lleva un envelope JSON versionado. La generación de la imagen
// vive en los clientes; acá solo codificamos/decodificamos el payload.
const (
	QRPayloadType    = "VETCO_MEDICATION_SCHEDULE"
	QRPayloadVersion = 1
)

var (
	ErrInvalidQRPayload = errors.New("invalid qr payload")
)

// SchedulePayload es la parte `data` del envelope: lo necesario para
// reconstruir la pauta del lado del dueño, sin el pet (lo elige quien
// importa).
type SchedulePayload struct {
	VetID      string     `json:"vet_id"`
	Medication string     `json:"medication"`
	Dosage     string     `json:"dosage"`
	DoseUnit   string     `json:"dose_unit"`
	Frequency  string     `json:"frequency"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type qrEnvelope struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Data    SchedulePayload `json:"data"`
}

// EncodeQRCode serializa la pauta al envelope que los clientes meten
// en el QR.
func EncodeQRCode(s Schedule) (string, error) {
	env := qrEnvelope{
		Type:    QRPayloadType,
		Version: QRPayloadVersion,
		Data: SchedulePayload{
			VetID:      s.VetID,
			Medication: s.Medication,
			Dosage:     s.Dosage,
			DoseUnit:   s.DoseUnit,
			Frequency:  s.Frequency,
			StartDate:  s.StartDate,
			EndDate:    s.EndDate,
			Notes:      s.Notes,
		},
	}

	b, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseQRCode devuelve data solo si el type coincide exacto; cualquier
// otro QR escaneado (urls, otros productos) falla acá.
func ParseQRCode(raw string) (SchedulePayload, error) {
	var env qrEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return SchedulePayload{}, ErrInvalidQRPayload
	}
	if env.Type != QRPayloadType {
		return SchedulePayload{}, ErrInvalidQRPayload
	}
	if env.Version < 1 {
		return SchedulePayload{}, ErrInvalidQRPayload
	}
	return env.Data, nil
}
