package appointments

import (
	"context"
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

type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwners) {
	r.Route("/pets/{petID}/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, petOwners))
		ar.Get("/", listAppointmentsHandler(svc, petOwners))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc, petOwners))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc, petOwners))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc, petOwners))
	})
}

type createAppointmentRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

type updateAppointmentRequest struct {
	Date  *string `json:"date"`
	Type  *string `json:"type"`
	Notes *string `json:"notes"`
}

type appointmentResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	OwnerUserID string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Date        civil.Date `json:"date" swaggertype:"string" example:"2025-11-20"`
	Type        string     `json:"type"`
	Notes       string     `json:"notes,omitempty"`
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createAppointmentRequest true "Cita; date en formato YYYY-MM-DD"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / date inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/appointments [post]
func createAppointmentHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := civil.Parse(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), recordstore.Scope{OwnerUserID: userID, PetID: petID}, CreateInput{
			Date:  date,
			Type:  req.Type,
			Notes: req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas de una mascota
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/appointments [get]
func listAppointmentsHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAppointmentHandler godoc
// @Summary Ver cita
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "appointment not found"
// @Router /pets/{petID}/appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}
		a, ok := loadAppointment(w, r, svc, petID)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// updateAppointmentHandler godoc
// @Summary Editar cita
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param appointmentID path string true "ID de la cita"
// @Param payload body updateAppointmentRequest true "Campos a actualizar"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "appointment not found"
// @Router /pets/{petID}/appointments/{appointmentID} [patch]
func updateAppointmentHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}
		current, ok := loadAppointment(w, r, svc, petID)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAppointmentRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Type: req.Type, Notes: req.Notes}
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
		writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
	}
}

// deleteAppointmentHandler godoc
// @Summary Cancelar (eliminar) cita
// @Tags appointments
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param appointmentID path string true "ID de la cita"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "appointment not found"
// @Router /pets/{petID}/appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}
		a, ok := loadAppointment(w, r, svc, petID)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), a.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func authorizePet(w http.ResponseWriter, r *http.Request, petOwners PetOwners) (string, string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petOwners.OwnerOf(r.Context(), petID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return "", "", false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return "", "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", "", false
	}
	return claims.UserID, petID, true
}

func loadAppointment(w http.ResponseWriter, r *http.Request, svc *Service, petID string) (Appointment, bool) {
	a, err := svc.Get(r.Context(), chi.URLParam(r, "appointmentID"))
	if err == nil && a.PetID != petID {
		err = ErrNotFound
	}
	if err != nil {
		writeError(w, err)
		return Appointment{}, false
	}
	return a, true
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		OwnerUserID: a.OwnerUserID,
		CreatedAt:   a.CreatedAt,
		Date:        a.Date,
		Type:        a.Type,
		Notes:       a.Notes,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
