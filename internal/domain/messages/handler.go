package messages

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vetco-api/internal/domain/vets"
	"vetco-api/internal/middleware"
	"vetco-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, vetsSvc *vets.Service, sendLimiter func(http.Handler) http.Handler) {
	if sendLimiter == nil {
		sendLimiter = func(next http.Handler) http.Handler { return next }
	}

	// Enviar mensaje (rate-limited por principal)
	r.With(sendLimiter).Post("/messages", sendMessageHandler(svc, vetsSvc))

	r.Route("/conversations", func(cr chi.Router) {
		cr.Get("/", listConversationsHandler(svc))

		// Abrir (o empezar) conversación con una contraparte
		cr.Post("/{partnerKind}/{partnerID}", openConversationHandler(svc, vetsSvc))

		// Hilo completo; leerlo marca como leídos los mensajes del viewer
		cr.Get("/{partnerKind}/{partnerID}/messages", threadHandler(svc))
	})
}

type sendMessageRequest struct {
	RecipientKind string `json:"recipient_kind" enums:"user,vet"`
	RecipientID   string `json:"recipient_id"`
	Content       string `json:"content"`
}

type messageResponse struct {
	ID            string    `json:"id"`
	SenderKind    string    `json:"sender_kind"`
	SenderID      string    `json:"sender_id"`
	RecipientKind string    `json:"recipient_kind"`
	RecipientID   string    `json:"recipient_id"`
	Content       string    `json:"content"`
	SentAt        time.Time `json:"sent_at"`
	Read          bool      `json:"read"`
}

type conversationResponse struct {
	PartnerKind string           `json:"partner_kind"`
	PartnerID   string           `json:"partner_id"`
	LastMessage *messageResponse `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje
// @Description Envía un mensaje del principal autenticado (user o vet) a otra contraparte. El destinatario vet debe existir en el directorio. Autenticación: `X-Debug-User-ID` / `X-Debug-Vet-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags messages
// @Accept json
// @Produce json
// @Param payload body sendMessageRequest true "Destinatario y contenido"
// @Success 201 {object} messageResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "vet not found"
// @Router /messages [post]
func sendMessageHandler(svc *Service, vetsSvc *vets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := viewerFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recipient, ok := parseParticipant(req.RecipientKind, req.RecipientID)
		if !ok {
			http.Error(w, "invalid recipient", http.StatusBadRequest)
			return
		}

		// Los vets viven en nuestro directorio; los users en el identity
		// provider, así que solo validamos existencia del lado vet.
		if recipient.Kind == KindVet {
			if _, err := vetsSvc.GetByID(r.Context(), recipient.ID); err != nil {
				http.Error(w, "vet not found", http.StatusNotFound)
				return
			}
		}

		m, err := svc.Send(r.Context(), viewer, SendInput{
			Recipient: recipient,
			Content:   req.Content,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toMessageResponse(m))
	}
}

// listConversationsHandler godoc
// @Summary Listar conversaciones del principal
// @Description Una conversación por contraparte distinta, ordenadas por actividad reciente, con el último mensaje y el conteo de no leídos.
// @Tags messages
// @Produce json
// @Success 200 {array} conversationResponse
// @Failure 401 {string} string "unauthorized"
// @Router /conversations [get]
func listConversationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := viewerFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		convs, err := svc.Conversations(r.Context(), viewer)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]conversationResponse, 0, len(convs))
		for _, c := range convs {
			out = append(out, toConversationResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// openConversationHandler godoc
// @Summary Abrir conversación con una contraparte
// @Description Si no hay mensajes previos devuelve una conversación sintética vacía para que la UI muestre el hilo de inmediato.
// @Tags messages
// @Produce json
// @Param partnerKind path string true "user o vet"
// @Param partnerID path string true "ID de la contraparte"
// @Success 200 {object} conversationResponse
// @Failure 400 {string} string "invalid partner"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "vet not found"
// @Router /conversations/{partnerKind}/{partnerID} [post]
func openConversationHandler(svc *Service, vetsSvc *vets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := viewerFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		partner, ok := parseParticipant(chi.URLParam(r, "partnerKind"), chi.URLParam(r, "partnerID"))
		if !ok {
			http.Error(w, "invalid partner", http.StatusBadRequest)
			return
		}

		if partner.Kind == KindVet {
			if _, err := vetsSvc.GetByID(r.Context(), partner.ID); err != nil {
				http.Error(w, "vet not found", http.StatusNotFound)
				return
			}
		}

		conv, err := svc.OpenConversation(r.Context(), viewer, partner)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toConversationResponse(conv))
	}
}

// threadHandler godoc
// @Summary Mensajes de una conversación
// @Description Trae los mensajes entre el principal y la contraparte (más reciente primero) y marca como leídos los dirigidos al principal. take/skip para paginar.
// @Tags messages
// @Produce json
// @Param partnerKind path string true "user o vet"
// @Param partnerID path string true "ID de la contraparte"
// @Param take query int false "máximo de mensajes (default 50, tope 200)"
// @Param skip query int false "offset"
// @Success 200 {array} messageResponse
// @Failure 400 {string} string "invalid partner"
// @Failure 401 {string} string "unauthorized"
// @Router /conversations/{partnerKind}/{partnerID}/messages [get]
func threadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := viewerFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		partner, ok := parseParticipant(chi.URLParam(r, "partnerKind"), chi.URLParam(r, "partnerID"))
		if !ok {
			http.Error(w, "invalid partner", http.StatusBadRequest)
			return
		}

		f := ListFilter{}
		if v := r.URL.Query().Get("take"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				f.Limit = n
			}
		}
		if v := r.URL.Query().Get("skip"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				f.Offset = n
			}
		}

		msgs, err := svc.Thread(r.Context(), viewer, partner, f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]messageResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessageResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func viewerFromRequest(r *http.Request) (Participant, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.ActorID) == "" {
		return Participant{}, false
	}

	kind := KindUser
	if claims.Kind == auth.ActorVet {
		kind = KindVet
	}
	return Participant{Kind: kind, ID: claims.ActorID}, true
}

func parseParticipant(kind, id string) (Participant, bool) {
	p := Participant{
		Kind: ParticipantKind(strings.ToLower(strings.TrimSpace(kind))),
		ID:   strings.TrimSpace(id),
	}
	if !validParticipant(p) {
		return Participant{}, false
	}
	return p, true
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:            m.ID,
		SenderKind:    string(m.Sender.Kind),
		SenderID:      m.Sender.ID,
		RecipientKind: string(m.Recipient.Kind),
		RecipientID:   m.Recipient.ID,
		Content:       m.Content,
		SentAt:        m.SentAt,
		Read:          m.Read,
	}
}

func toConversationResponse(c Conversation) conversationResponse {
	out := conversationResponse{
		PartnerKind: string(c.Partner.Kind),
		PartnerID:   c.Partner.ID,
		UnreadCount: c.UnreadCount,
	}
	if c.LastMessage != nil {
		mr := toMessageResponse(*c.LastMessage)
		out.LastMessage = &mr
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
