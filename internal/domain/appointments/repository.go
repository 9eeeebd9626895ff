package appointments

import (
	"context"

	"pet-care/internal/platform/civil"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	// ListByPet ordena por date DESC, created_at ASC, id ASC.
	ListByPet(ctx context.Context, petID string) ([]Appointment, error)
	Update(ctx context.Context, id string, patch Patch) (Appointment, error)
	Delete(ctx context.Context, id string) error
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	Date  *civil.Date
	Type  *string
	Notes *string
}
