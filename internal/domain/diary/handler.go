package diary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/middleware"
	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/diary", func(dr chi.Router) {
		dr.Post("/", createEntryHandler(svc))
		dr.Get("/", listEntriesHandler(svc))

		dr.Get("/{entryID}", getEntryHandler(svc))
		dr.Patch("/{entryID}", updateEntryHandler(svc))
		dr.Delete("/{entryID}", deleteEntryHandler(svc))
	})
}

type createEntryRequest struct {
	Title     string    `json:"title"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Location  string    `json:"location"`
	Content   string    `json:"content"`
	Sentiment Sentiment `json:"sentiment" enums:"excited,happy,sad,angry"`
}

type updateEntryRequest struct {
	Title     *string    `json:"title"`
	Date      *string    `json:"date"`
	Location  *string    `json:"location"`
	Content   *string    `json:"content"`
	Sentiment *Sentiment `json:"sentiment"`
}

type entryResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Title       string     `json:"title"`
	Date        civil.Date `json:"date" swaggertype:"string" example:"2025-10-04"`
	Location    string     `json:"location,omitempty"`
	Content     string     `json:"content"`
	Sentiment   Sentiment  `json:"sentiment,omitempty"`
	Emoji       string     `json:"emoji,omitempty"`
}

// createEntryHandler godoc
// @Summary Crear entrada de diario
// @Tags diary
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createEntryRequest true "Entrada; date en formato YYYY-MM-DD"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / date inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /diary [post]
func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := civil.Parse(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), recordstore.Scope{OwnerUserID: claims.UserID}, CreateInput{
			Title:     req.Title,
			Date:      date,
			Location:  req.Location,
			Content:   req.Content,
			Sentiment: req.Sentiment,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listEntriesHandler godoc
// @Summary Listar diario
// @Description Entradas del usuario, más recientes primero.
// @Tags diary
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /diary [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEntryHandler godoc
// @Summary Ver entrada de diario
// @Tags diary
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "entry not found"
// @Router /diary/{entryID} [get]
func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := loadOwnEntry(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

// updateEntryHandler godoc
// @Summary Editar entrada de diario
// @Description Actualiza solo los campos enviados. `sentiment` vacío lo limpia.
// @Tags diary
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param entryID path string true "ID de la entrada"
// @Param payload body updateEntryRequest true "Campos a actualizar"
// @Success 200 {object} entryResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "entry not found"
// @Router /diary/{entryID} [patch]
func updateEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnEntry(w, r, svc)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateEntryRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Title:     req.Title,
			Location:  req.Location,
			Content:   req.Content,
			Sentiment: req.Sentiment,
		}
		if req.Date != nil {
			d, err := civil.Parse(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(updated))
	}
}

// deleteEntryHandler godoc
// @Summary Eliminar entrada de diario
// @Tags diary
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param entryID path string true "ID de la entrada"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "entry not found"
// @Router /diary/{entryID} [delete]
func deleteEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := loadOwnEntry(w, r, svc)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), e.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// loadOwnEntry responde 404 también cuando la entrada es de otro usuario,
// igual que haría RLS en el store.
func loadOwnEntry(w http.ResponseWriter, r *http.Request, svc *Service) (Entry, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Entry{}, false
	}

	e, err := svc.Get(r.Context(), chi.URLParam(r, "entryID"))
	if err == nil && e.OwnerUserID != claims.UserID {
		err = ErrNotFound
	}
	if err != nil {
		writeError(w, err)
		return Entry{}, false
	}
	return e, true
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		OwnerUserID: e.OwnerUserID,
		CreatedAt:   e.CreatedAt,
		Title:       e.Title,
		Date:        e.Date,
		Location:    e.Location,
		Content:     e.Content,
		Sentiment:   e.Sentiment,
		Emoji:       e.Sentiment.Emoji(),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
