package devices

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vetco-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/devices", registerDeviceHandler(svc))
}

type registerDeviceRequest struct {
	PushToken string `json:"push_token"`
	Platform  string `json:"platform" enums:"ios,android"`
}

type deviceResponse struct {
	ID        string    `json:"id"`
	PushToken string    `json:"push_token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// registerDeviceHandler godoc
// @Summary Registrar token de push del dispositivo
// @Tags devices
// @Accept json
// @Produce json
// @Param payload body registerDeviceRequest true "Token Expo del dispositivo"
// @Success 201 {object} deviceResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /devices [post]
func registerDeviceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ActorID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerDeviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Register(r.Context(), claims.Kind, claims.ActorID, RegisterInput{
			PushToken: req.PushToken,
			Platform:  req.Platform,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, deviceResponse{
			ID:        d.ID,
			PushToken: d.PushToken,
			Platform:  d.Platform,
			CreatedAt: d.CreatedAt,
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
