package vets

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vets", func(vr chi.Router) {
		// Alta de vet: superficie de onboarding/admin, sin auth por ahora.
		vr.Post("/", registerVetHandler(svc))
		vr.Get("/", listVetsHandler(svc))
		vr.Get("/{vetID}", getVetHandler(svc))
	})
}

type registerVetRequest struct {
	Name       string `json:"name"`
	ClinicName string `json:"clinic_name"`
	Email      string `json:"email"`
}

type vetResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ClinicName string    `json:"clinic_name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

// registerVetHandler godoc
// @Summary Registrar veterinario en el directorio
// @Tags vets
// @Accept json
// @Produce json
// @Param payload body registerVetRequest true "Datos del veterinario"
// @Success 201 {object} vetResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Router /vets [post]
func registerVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Register(r.Context(), RegisterInput{
			Name:       req.Name,
			ClinicName: req.ClinicName,
			Email:      req.Email,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Tags vets
// @Produce json
// @Success 200 {array} vetResponse
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			http.Error(w, "vet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func toVetResponse(v Veterinarian) vetResponse {
	return vetResponse{
		ID:         v.ID,
		Name:       v.Name,
		ClinicName: v.ClinicName,
		Email:      v.Email,
		CreatedAt:  v.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
