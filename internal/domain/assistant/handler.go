package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/assistant/chat", chatHandler(svc))
}

type chatRequest struct {
	Prompt string `json:"prompt"`
	Lang   string `json:"lang"` // opcional; por defecto el del request
}

type chatResponse struct {
	Lang  string `json:"lang"`
	Reply string `json:"reply"`
}

// chatHandler godoc
// @Summary Preguntar al asistente
// @Description Envía la pregunta al proveedor de IA con la persona del asistente y la directiva de idioma.
// @Tags assistant
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body chatRequest true "Pregunta"
// @Success 200 {object} chatResponse
// @Failure 400 {string} string "prompt vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "upstream error"
// @Failure 503 {string} string "assistant not configured"
// @Router /assistant/chat [post]
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		lang := strings.TrimSpace(req.Lang)
		if lang == "" {
			lang = middleware.GetLang(r.Context())
		}

		ans, err := svc.Ask(r.Context(), lang, req.Prompt)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, ErrNotConfigured):
			http.Error(w, "assistant not configured", http.StatusServiceUnavailable)
			return
		default:
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{Lang: ans.Lang, Reply: ans.Reply})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
