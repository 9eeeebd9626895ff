package medicalrecords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care/internal/middleware"
	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/go-chi/chi/v5"
)

// PetOwners resuelve el dueño de una mascota. Lo implementa pets.Service.
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwners) {
	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc, petOwners))
		rr.Get("/", listRecordsHandler(svc, petOwners))

		rr.Get("/{recordID}", getRecordHandler(svc, petOwners))
		rr.Patch("/{recordID}", updateRecordHandler(svc, petOwners))
		rr.Delete("/{recordID}", deleteRecordHandler(svc, petOwners))
	})
}

// createRecordRequest es el cuerpo para registrar un evento médico.
// details depende de type (ver RecordType).
type createRecordRequest struct {
	Type    RecordType      `json:"type" enums:"allergy,surgery,exam,medicine,parasite_treatment,vaccine"`
	Date    string          `json:"date"` // YYYY-MM-DD
	Details json.RawMessage `json:"details" swaggertype:"object"`
}

// updateRecordRequest: nil = no tocar. type solo se acepta si coincide con el guardado.
type updateRecordRequest struct {
	Type    *RecordType     `json:"type"`
	Date    *string         `json:"date"`
	Details json.RawMessage `json:"details" swaggertype:"object"`
}

type recordResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	OwnerUserID string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Type        RecordType `json:"type"`
	Date        civil.Date `json:"date" swaggertype:"string" example:"2025-10-04"`
	Details     Details    `json:"details" swaggertype:"object"`
}

// createRecordHandler godoc
// @Summary Crear registro médico
// @Description Registra alergia, cirugía, examen, medicamento, antiparasitario o vacuna. `details` se valida según `type` y no acepta campos de otro tipo.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Registro; date en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / date inválida / details inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records [post]
func createRecordHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := civil.Parse(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		details, err := ParseDetails(req.Type, req.Details)
		if err != nil {
			writeError(w, err)
			return
		}

		rec, err := svc.Create(r.Context(), recordstore.Scope{OwnerUserID: userID, PetID: petID}, CreateInput{
			Date:    date,
			Details: details,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros médicos
// @Description Lista los registros de la mascota ordenados por fecha descendente. Empates: primero el más antiguo en crearse.
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param types query string false "Lista CSV de tipos a incluir (ej: vaccine,exam)"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "tipo desconocido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/records [get]
func listRecordsHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		items, err := svc.ListFiltered(r.Context(), petID, parseListFilter(r))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecordHandler godoc
// @Summary Ver registro médico
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "record not found"
// @Router /pets/{petID}/records/{recordID} [get]
func getRecordHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		rec, ok := loadRecord(w, r, svc, petID)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar registro médico
// @Description Actualiza date y/o details. details se reemplaza completo y debe ser del mismo tipo que el registro.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Param payload body updateRecordRequest true "Campos a actualizar"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid json / details inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "record not found"
// @Failure 409 {string} string "record type cannot change"
// @Router /pets/{petID}/records/{recordID} [patch]
func updateRecordHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		current, ok := loadRecord(w, r, svc, petID)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateRecordRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.Type != nil && *req.Type != current.Type {
			writeError(w, fmt.Errorf("%w: %s -> %s", ErrTypeImmutable, current.Type, *req.Type))
			return
		}

		in := UpdateInput{Type: req.Type}
		if req.Date != nil {
			d, err := civil.Parse(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}
		if len(req.Details) > 0 {
			// Se decodifica con el tipo guardado: un details de otra variante
			// falla por campos desconocidos o por obligatorios faltantes.
			details, err := ParseDetails(current.Type, req.Details)
			if err != nil {
				writeError(w, err)
				return
			}
			in.Details = details
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(updated))
	}
}

// deleteRecordHandler godoc
// @Summary Eliminar registro médico
// @Tags records
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "record not found"
// @Router /pets/{petID}/records/{recordID} [delete]
func deleteRecordHandler(svc *Service, petOwners PetOwners) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, petID, ok := authorizePet(w, r, petOwners)
		if !ok {
			return
		}

		rec, ok := loadRecord(w, r, svc, petID)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), rec.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizePet valida sesión y que el usuario sea dueño del pet de la URL.
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

// loadRecord trae el registro de la URL y comprueba que sea del pet.
func loadRecord(w http.ResponseWriter, r *http.Request, svc *Service, petID string) (Record, bool) {
	rec, err := svc.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err == nil && rec.PetID != petID {
		err = ErrNotFound
	}
	if err != nil {
		writeError(w, err)
		return Record{}, false
	}
	return rec, true
}

func parseListFilter(r *http.Request) ListFilter {
	var filter ListFilter

	// types=vaccine,exam
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			t := RecordType(strings.ToLower(strings.TrimSpace(p)))
			if t == "" {
				continue
			}
			filter.Types = append(filter.Types, t)
		}
	}
	return filter
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		PetID:       rec.PetID,
		OwnerUserID: rec.OwnerUserID,
		CreatedAt:   rec.CreatedAt,
		Type:        rec.Type,
		Date:        rec.Date,
		Details:     rec.Details,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTypeImmutable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
