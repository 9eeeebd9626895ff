package appointments

import (
	"time"

	"pet-care/internal/platform/civil"
)

// Appointment es una cita veterinaria agendada para una mascota.
type Appointment struct {
	ID          string
	PetID       string
	OwnerUserID string

	CreatedAt time.Time

	Date  civil.Date
	Type  string // texto libre: "control", "vacunación", ...
	Notes string
}
