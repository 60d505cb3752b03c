package schedules

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vetco-api/internal/domain/pets"
	"vetco-api/internal/middleware"
	"vetco-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/schedules", func(sr chi.Router) {
		sr.Post("/", issueScheduleHandler(svc, petsSvc))
		sr.Get("/", listSchedulesHandler(svc, petsSvc))

		// Importar una pauta escaneada desde un QR
		sr.Post("/import", importScheduleHandler(svc, petsSvc))
	})

	r.Get("/schedules/{scheduleID}/qr", scheduleQRHandler(svc, petsSvc))
}

type issueScheduleRequest struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	DoseUnit   string `json:"dose_unit"`
	Frequency  string `json:"frequency"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD opcional
	Notes      string `json:"notes"`
}

type importScheduleRequest struct {
	// Contenido crudo del QR escaneado (el envelope JSON).
	Payload string `json:"payload"`
}

type scheduleResponse struct {
	ID         string     `json:"id"`
	PetID      string     `json:"pet_id"`
	VetID      string     `json:"vet_id"`
	Medication string     `json:"medication"`
	Dosage     string     `json:"dosage"`
	DoseUnit   string     `json:"dose_unit"`
	Frequency  string     `json:"frequency"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

type scheduleQRResponse struct {
	// Payload listo para renderizar como QR en el cliente.
	Payload string `json:"payload"`
}

// issueScheduleHandler godoc
// @Summary Emitir pauta de medicación (vet)
// @Description Solo un principal vet puede emitir. Notifica al dueño por push (best-effort).
// @Tags schedules
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body issueScheduleRequest true "medication y start_date obligatorios"
// @Success 201 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/schedules [post]
func issueScheduleHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ActorID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Kind != auth.ActorVet {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		p, err := petsSvc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req issueScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartDate))
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var end *time.Time
		if strings.TrimSpace(req.EndDate) != "" {
			t, err := time.Parse("2006-01-02", req.EndDate)
			if err != nil {
				http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end = &t
		}

		sc, err := svc.Issue(r.Context(), claims.ActorID, p.ID, p.OwnerUserID, IssueInput{
			Medication: req.Medication,
			Dosage:     req.Dosage,
			DoseUnit:   req.DoseUnit,
			Frequency:  req.Frequency,
			StartDate:  start,
			EndDate:    end,
			Notes:      req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toScheduleResponse(sc))
	}
}

// listSchedulesHandler godoc
// @Summary Listar pautas de una mascota
// @Description El dueño ve las pautas de su mascota.
// @Tags schedules
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} scheduleResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/schedules [get]
func listSchedulesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), p.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]scheduleResponse, 0, len(items))
		for _, sc := range items {
			out = append(out, toScheduleResponse(sc))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// importScheduleHandler godoc
// @Summary Importar pauta desde un QR escaneado
// @Description El dueño pega el contenido del QR; si el envelope no es del tipo esperado se rechaza.
// @Tags schedules
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota destino"
// @Param payload body importScheduleRequest true "Contenido crudo del QR"
// @Success 201 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / invalid qr payload"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/schedules/import [post]
func importScheduleHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, petsSvc)
		if !ok {
			return
		}

		var req importScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		payload, err := ParseQRCode(req.Payload)
		if err != nil {
			http.Error(w, "invalid qr payload", http.StatusBadRequest)
			return
		}

		sc, err := svc.Import(r.Context(), p.ID, payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toScheduleResponse(sc))
	}
}

// scheduleQRHandler godoc
// @Summary Payload QR de una pauta
// @Description Devuelve el envelope JSON para que el cliente lo renderice como QR. Solo el vet emisor o el dueño de la mascota.
// @Tags schedules
// @Produce json
// @Param scheduleID path string true "ID de la pauta"
// @Success 200 {object} scheduleQRResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID}/qr [get]
func scheduleQRHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ActorID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sc, err := svc.GetByID(r.Context(), chi.URLParam(r, "scheduleID"))
		if err != nil {
			http.Error(w, "schedule not found", http.StatusNotFound)
			return
		}

		allowed := claims.Kind == auth.ActorVet && claims.ActorID == sc.VetID
		if !allowed && claims.Kind == auth.ActorUser {
			if p, err := petsSvc.GetByID(r.Context(), sc.PetID); err == nil {
				allowed = p.OwnerUserID == claims.ActorID
			}
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		payload, err := EncodeQRCode(sc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, scheduleQRResponse{Payload: payload})
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

	p, err := petsSvc.GetByID(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return pets.Pet{}, false
	}

	if claims.Kind != auth.ActorUser || p.OwnerUserID != claims.ActorID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return pets.Pet{}, false
	}

	return p, true
}

func toScheduleResponse(s Schedule) scheduleResponse {
	return scheduleResponse{
		ID:         s.ID,
		PetID:      s.PetID,
		VetID:      s.VetID,
		Medication: s.Medication,
		Dosage:     s.Dosage,
		DoseUnit:   s.DoseUnit,
		Frequency:  s.Frequency,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
