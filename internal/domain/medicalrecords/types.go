package medicalrecords

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-care/internal/platform/civil"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownType   = errors.New("unknown record type")
	ErrTypeImmutable = errors.New("record type cannot change")
)

// RecordType es el discriminador del registro médico. Conjunto cerrado.
// @Enum allergy, surgery, exam, medicine, parasite_treatment, vaccine
type RecordType string

const (
	TypeAllergy           RecordType = "allergy"
	TypeSurgery           RecordType = "surgery"
	TypeExam              RecordType = "exam"
	TypeMedicine          RecordType = "medicine"
	TypeParasiteTreatment RecordType = "parasite_treatment"
	TypeVaccine           RecordType = "vaccine"
)

// Types devuelve los tipos en el orden en que la app los muestra.
func Types() []RecordType {
	return []RecordType{
		TypeAllergy,
		TypeSurgery,
		TypeExam,
		TypeMedicine,
		TypeParasiteTreatment,
		TypeVaccine,
	}
}

func (t RecordType) Valid() bool {
	_, ok := registry[t]
	return ok
}

// Details es el payload específico de cada tipo.
// Cada variante valida sus propios campos obligatorios.
type Details interface {
	RecordType() RecordType
	Validate() error
}

type Allergy struct {
	Name   string `json:"name"`
	Vet    string `json:"vet,omitempty"`
	Clinic string `json:"clinic,omitempty"`
}

type Surgery struct {
	Name   string `json:"name"`
	Vet    string `json:"vet,omitempty"`
	Clinic string `json:"clinic,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

type Exam struct {
	Name    string `json:"name"`
	Vet     string `json:"vet,omitempty"`
	Clinic  string `json:"clinic,omitempty"`
	Results string `json:"results,omitempty"`
	// AttachmentURI apunta al archivo copiado al storage del dispositivo.
	AttachmentURI string `json:"attachmentUri,omitempty"`
}

type Medicine struct {
	Name     string `json:"name"`
	Dose     string `json:"dose"`
	Duration string `json:"duration"`
	Notes    string `json:"notes,omitempty"`
}

type ParasiteTreatment struct {
	Name         string     `json:"name"`
	LastDoseDate civil.Date `json:"lastDoseDate"`
	NextDoseDate civil.Date `json:"nextDoseDate"`
	Notes        string     `json:"notes,omitempty"`
}

type Vaccine struct {
	Name         string     `json:"name"`
	NextDoseDate civil.Date `json:"nextDoseDate"`
	Lot          string     `json:"lot,omitempty"`
}

func (Allergy) RecordType() RecordType           { return TypeAllergy }
func (Surgery) RecordType() RecordType           { return TypeSurgery }
func (Exam) RecordType() RecordType              { return TypeExam }
func (Medicine) RecordType() RecordType          { return TypeMedicine }
func (ParasiteTreatment) RecordType() RecordType { return TypeParasiteTreatment }
func (Vaccine) RecordType() RecordType           { return TypeVaccine }

func (d Allergy) Validate() error {
	return required("name", d.Name)
}

func (d Surgery) Validate() error {
	return required("name", d.Name)
}

func (d Exam) Validate() error {
	return required("name", d.Name)
}

func (d Medicine) Validate() error {
	if err := required("name", d.Name); err != nil {
		return err
	}
	if err := required("dose", d.Dose); err != nil {
		return err
	}
	return required("duration", d.Duration)
}

func (d ParasiteTreatment) Validate() error {
	if err := required("name", d.Name); err != nil {
		return err
	}
	if d.LastDoseDate.IsZero() {
		return fmt.Errorf("%w: lastDoseDate required", ErrInvalidInput)
	}
	if d.NextDoseDate.IsZero() {
		return fmt.Errorf("%w: nextDoseDate required", ErrInvalidInput)
	}
	return nil
}

func (d Vaccine) Validate() error {
	if err := required("name", d.Name); err != nil {
		return err
	}
	if d.NextDoseDate.IsZero() {
		return fmt.Errorf("%w: nextDoseDate required", ErrInvalidInput)
	}
	return nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s required", ErrInvalidInput, field)
	}
	return nil
}

// registry mapea cada tipo a un decoder de su variante.
var registry = map[RecordType]func(raw []byte, strict bool) (Details, error){
	TypeAllergy:           decodeAs[Allergy],
	TypeSurgery:           decodeAs[Surgery],
	TypeExam:              decodeAs[Exam],
	TypeMedicine:          decodeAs[Medicine],
	TypeParasiteTreatment: decodeAs[ParasiteTreatment],
	TypeVaccine:           decodeAs[Vaccine],
}

func decodeAs[D Details](raw []byte, strict bool) (Details, error) {
	var d D
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return d, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseDetails decodifica details para el tipo dado rechazando campos ajenos
// a la variante, y valida los obligatorios. Es el único punto de entrada para
// payloads que vienen del cliente (create y update).
func ParseDetails(t RecordType, raw []byte) (Details, error) {
	decode, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	d, err := decode(raw, true)
	if err != nil {
		return nil, fmt.Errorf("%w: details for %s: %v", ErrInvalidInput, t, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// DecodeDetails es la variante tolerante que usan los adapters al leer filas:
// ignora claves desconocidas y no valida.
func DecodeDetails(t RecordType, raw []byte) (Details, error) {
	decode, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return decode(raw, false)
}

// ValidateRecord comprueba que details corresponda al tipo y que la variante sea válida.
func ValidateRecord(t RecordType, d Details) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if d == nil {
		return fmt.Errorf("%w: details required", ErrInvalidInput)
	}
	if d.RecordType() != t {
		return fmt.Errorf("%w: details of %s given for %s", ErrInvalidInput, d.RecordType(), t)
	}
	return d.Validate()
}
