// Package profile arma la ficha compartible de una mascota y su QR.
package profile

import (
	"context"
	"strings"

	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
	"pet-care/internal/platform/i18n"
	"pet-care/internal/recordstore"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 128
	MaxQRSize     = 1024
)

// PetReader es lo que el perfil necesita de pets.Service.
type PetReader interface {
	Get(ctx context.Context, id string) (pets.Pet, error)
}

// Records es el cliente tolerante de registros médicos: si falla devuelve vacío.
type Records = recordstore.Lenient[medicalrecords.Record, medicalrecords.CreateInput, medicalrecords.UpdateInput]

type Service struct {
	pets    PetReader
	records *Records
	bundle  *i18n.Bundle
}

func NewService(pets PetReader, records *Records, bundle *i18n.Bundle) *Service {
	return &Service{pets: pets, records: records, bundle: bundle}
}

type Dose struct {
	Name         string
	Date         civil.Date
	NextDoseDate civil.Date
}

// Card es la ficha pública de la mascota.
type Card struct {
	Lang string

	PetID        string
	Name         string
	Species      pets.Species
	SpeciesLabel string
	PhotoURI     string

	Vaccines  []Dose // la última de cada vacuna
	Parasites []Dose // el último de cada antiparasitario
	Allergies []string
}

func (c Card) HasMedical() bool {
	return len(c.Vaccines) > 0 || len(c.Parasites) > 0 || len(c.Allergies) > 0
}

// Build arma la ficha. Solo falla si no se puede leer la mascota; si los
// registros médicos no cargan la ficha sale sin esa sección.
func (s *Service) Build(ctx context.Context, petID, lang string) (Card, error) {
	p, err := s.pets.Get(ctx, petID)
	if err != nil {
		return Card{}, err
	}

	lang = s.bundle.Match(lang)
	card := Card{
		Lang:     lang,
		PetID:    p.ID,
		Name:     p.Name,
		Species:  p.Species,
		PhotoURI: p.PhotoURI,
	}
	if p.Species != "" {
		card.SpeciesLabel = s.bundle.T(lang, "species."+string(p.Species), nil)
	}

	// List viene ordenado por fecha descendente: el primero de cada nombre es el último aplicado.
	seenVaccine := map[string]bool{}
	seenParasite := map[string]bool{}
	seenAllergy := map[string]bool{}
	for _, rec := range s.records.List(ctx, p.ID) {
		switch d := rec.Details.(type) {
		case medicalrecords.Vaccine:
			if key := normName(d.Name); !seenVaccine[key] {
				seenVaccine[key] = true
				card.Vaccines = append(card.Vaccines, Dose{Name: d.Name, Date: rec.Date, NextDoseDate: d.NextDoseDate})
			}
		case medicalrecords.ParasiteTreatment:
			if key := normName(d.Name); !seenParasite[key] {
				seenParasite[key] = true
				card.Parasites = append(card.Parasites, Dose{Name: d.Name, Date: rec.Date, NextDoseDate: d.NextDoseDate})
			}
		case medicalrecords.Allergy:
			if key := normName(d.Name); !seenAllergy[key] {
				seenAllergy[key] = true
				card.Allergies = append(card.Allergies, d.Name)
			}
		}
	}
	return card, nil
}

// Text es el contenido que va dentro del QR.
func (s *Service) Text(c Card) string {
	var b strings.Builder
	b.WriteString(s.bundle.T(c.Lang, "profile.title", map[string]string{"name": c.Name}))
	if c.SpeciesLabel != "" {
		b.WriteString("\n" + s.bundle.T(c.Lang, "profile.species", nil) + ": " + c.SpeciesLabel)
	}

	if !c.HasMedical() {
		b.WriteString("\n" + s.bundle.T(c.Lang, "profile.noRecords", nil))
		return b.String()
	}

	s.writeDoses(&b, c.Lang, "profile.vaccines", c.Vaccines)
	s.writeDoses(&b, c.Lang, "profile.parasites", c.Parasites)
	if len(c.Allergies) > 0 {
		b.WriteString("\n" + s.bundle.T(c.Lang, "profile.allergies", nil) + ": " + strings.Join(c.Allergies, ", "))
	}
	return b.String()
}

func (s *Service) writeDoses(b *strings.Builder, lang, titleKey string, doses []Dose) {
	if len(doses) == 0 {
		return
	}
	b.WriteString("\n" + s.bundle.T(lang, titleKey, nil) + ":")
	for _, d := range doses {
		b.WriteString("\n- " + d.Name)
		if !d.NextDoseDate.IsZero() {
			b.WriteString(" (" + s.bundle.T(lang, "profile.nextDose", map[string]string{"date": d.NextDoseDate.String()}) + ")")
		}
	}
}

// QR renderiza la ficha como PNG.
func (s *Service) QR(c Card, size int) ([]byte, error) {
	return qrcode.Encode(s.Text(c), qrcode.Medium, clampSize(size))
}

func clampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultQRSize
	case size < MinQRSize:
		return MinQRSize
	case size > MaxQRSize:
		return MaxQRSize
	default:
		return size
	}
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
