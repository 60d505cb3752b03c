package breathing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vetco-api/internal/domain/pets"
	"vetco-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/breathing", func(br chi.Router) {
		br.Post("/", logMeasurementHandler(svc, petsSvc))
		br.Get("/", listMeasurementsHandler(svc, petsSvc))
		br.Get("/analytics", analyticsHandler(svc, petsSvc))
	})
}

type logMeasurementRequest struct {
	Rate       int    `json:"rate"`
	Note       string `json:"note"`
	MeasuredAt string `json:"measured_at"` // RFC3339 opcional; default ahora
}

type measurementResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Rate       int       `json:"rate"`
	Note       string    `json:"note"`
	MeasuredAt time.Time `json:"measured_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

type logMeasurementResponse struct {
	Measurement measurementResponse `json:"measurement"`
	// Alert viene solo cuando el valor cae fuera del rango normal.
	Alert string `json:"alert,omitempty"`
}

type rangeResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type analyticsResponse struct {
	TotalMeasurements int                  `json:"total_measurements"`
	AverageRate       int                  `json:"average_rate"`
	MinRate           int                  `json:"min_rate"`
	MaxRate           int                  `json:"max_rate"`
	Trend             Trend                `json:"trend"`
	NormalRange       rangeResponse        `json:"normal_range"`
	LastMeasurement   *measurementResponse `json:"last_measurement,omitempty"`
}

// logMeasurementHandler godoc
// @Summary Registrar frecuencia respiratoria
// @Description Registra una medición para la mascota del dueño autenticado. Si el valor cae fuera del rango normal de la especie, la respuesta incluye `alert` (la medición se guarda igual).
// @Tags breathing
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body logMeasurementRequest true "rate > 0; measured_at RFC3339 opcional"
// @Success 201 {object} logMeasurementResponse
// @Failure 400 {string} string "invalid json / rate inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/breathing [post]
func logMeasurementHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, petsSvc)
		if !ok {
			return
		}

		var req logMeasurementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var measuredAt time.Time
		if strings.TrimSpace(req.MeasuredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.MeasuredAt)
			if err != nil {
				http.Error(w, "measured_at must be RFC3339", http.StatusBadRequest)
				return
			}
			measuredAt = t
		}

		m, abnormal, err := svc.Log(r.Context(), p.ID, p.Species, LogInput{
			Rate:       req.Rate,
			Note:       req.Note,
			MeasuredAt: measuredAt,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := logMeasurementResponse{Measurement: toMeasurementResponse(m)}
		if abnormal {
			nr := NormalRangeFor(p.Species)
			resp.Alert = fmt.Sprintf(
				"breathing rate %d is outside the normal range for this species (%d-%d breaths/min); consider contacting your veterinarian",
				m.Rate, nr.Min, nr.Max,
			)
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// listMeasurementsHandler godoc
// @Summary Listar mediciones de una mascota
// @Tags breathing
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param from query string false "RFC3339"
// @Param to query string false "RFC3339"
// @Param limit query int false "default 30, tope 100"
// @Success 200 {array} measurementResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/breathing [get]
func listMeasurementsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, petsSvc)
		if !ok {
			return
		}

		filter := ListFilter{}
		q := r.URL.Query()

		if v := strings.TrimSpace(q.Get("from")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "from must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(q.Get("to")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "to must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}

		items, err := svc.ListByPet(r.Context(), p.ID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]measurementResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMeasurementResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// analyticsHandler godoc
// @Summary Analítica respiratoria de una mascota
// @Description Resumen sobre las últimas 30 mediciones: conteo, promedio, extremos, tendencia y rango normal de la especie.
// @Tags breathing
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} analyticsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/breathing/analytics [get]
func analyticsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, petsSvc)
		if !ok {
			return
		}

		a, err := svc.Analytics(r.Context(), p.ID, p.Species)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toAnalyticsResponse(a))
	}
}

// ownedPet resuelve la mascota del path y exige que el principal sea su
// dueño. Escribe la respuesta de error y devuelve ok=false si no.
func ownedPet(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (pets.Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.ActorID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return pets.Pet{}, false
	}

	petID := chi.URLParam(r, "petID")
	p, err := petsSvc.GetByID(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return pets.Pet{}, false
	}

	if p.OwnerUserID != claims.ActorID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return pets.Pet{}, false
	}

	return p, true
}

func toMeasurementResponse(m Measurement) measurementResponse {
	return measurementResponse{
		ID:         m.ID,
		PetID:      m.PetID,
		Rate:       m.Rate,
		Note:       m.Note,
		MeasuredAt: m.MeasuredAt,
		RecordedAt: m.RecordedAt,
	}
}

func toAnalyticsResponse(a Analytics) analyticsResponse {
	out := analyticsResponse{
		TotalMeasurements: a.TotalMeasurements,
		AverageRate:       a.AverageRate,
		MinRate:           a.MinRate,
		MaxRate:           a.MaxRate,
		Trend:             a.Trend,
		NormalRange:       rangeResponse{Min: a.NormalRange.Min, Max: a.NormalRange.Max},
	}
	if a.LastMeasurement != nil {
		mr := toMeasurementResponse(*a.LastMeasurement)
		out.LastMeasurement = &mr
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
