package medicalrecords

import (
	"time"

	"pet-care/internal/platform/civil"
)

// Record es un registro médico de una mascota.
// Type es inmutable: Details siempre es la variante de Type.
type Record struct {
	ID          string
	PetID       string
	OwnerUserID string

	CreatedAt time.Time

	Type    RecordType
	Date    civil.Date
	Details Details
}
