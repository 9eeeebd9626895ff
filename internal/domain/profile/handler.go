package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-care/internal/middleware"
	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/profile", getProfileHandler(svc))
	r.Get("/pets/{petID}/qr", getQRHandler(svc))
}

type doseResponse struct {
	Name         string     `json:"name"`
	Date         civil.Date `json:"date" swaggertype:"string"`
	NextDoseDate civil.Date `json:"next_dose_date" swaggertype:"string"`
}

type profileResponse struct {
	PetID        string         `json:"pet_id"`
	Lang         string         `json:"lang"`
	Name         string         `json:"name"`
	Species      string         `json:"species,omitempty"`
	SpeciesLabel string         `json:"species_label,omitempty"`
	PhotoURI     string         `json:"photo_uri,omitempty"`
	Vaccines     []doseResponse `json:"vaccines"`
	Parasites    []doseResponse `json:"parasite_treatments"`
	Allergies    []string       `json:"allergies"`
	ShareText    string         `json:"share_text"`
}

// getProfileHandler godoc
// @Summary Ficha compartible de la mascota
// @Description Datos básicos, última dosis de cada vacuna y antiparasitario, y alergias. Si los registros médicos no cargan, la ficha sale igual sin esa sección.
// @Tags profile
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param lang query string false "Idioma (es, en)"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, ok := loadCard(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(card, svc.Text(card)))
	}
}

// getQRHandler godoc
// @Summary QR de la ficha
// @Tags profile
// @Produce png
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param lang query string false "Idioma (es, en)"
// @Param size query int false "Lado en píxeles (128-1024). Por defecto 256"
// @Success 200 {file} binary
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/qr [get]
func getQRHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, ok := loadCard(w, r, svc)
		if !ok {
			return
		}

		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		png, err := svc.QR(card, size)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="pet-`+card.PetID+`.png"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

func loadCard(w http.ResponseWriter, r *http.Request, svc *Service) (Card, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Card{}, false
	}

	petID := chi.URLParam(r, "petID")
	p, err := svc.pets.Get(r.Context(), petID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
			return Card{}, false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Card{}, false
	}
	if p.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Card{}, false
	}

	lang := middleware.GetLang(r.Context())
	card, err := svc.Build(r.Context(), petID, lang)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return Card{}, false
	}
	return card, true
}

func toProfileResponse(c Card, text string) profileResponse {
	out := profileResponse{
		PetID:        c.PetID,
		Lang:         c.Lang,
		Name:         c.Name,
		Species:      string(c.Species),
		SpeciesLabel: c.SpeciesLabel,
		PhotoURI:     c.PhotoURI,
		Vaccines:     toDoses(c.Vaccines),
		Parasites:    toDoses(c.Parasites),
		Allergies:    c.Allergies,
		ShareText:    text,
	}
	if out.Allergies == nil {
		out.Allergies = []string{}
	}
	return out
}

func toDoses(in []Dose) []doseResponse {
	out := make([]doseResponse, 0, len(in))
	for _, d := range in {
		out = append(out, doseResponse{Name: d.Name, Date: d.Date, NextDoseDate: d.NextDoseDate})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
