package medicalrecords

import (
	"context"

	"pet-care/internal/platform/civil"
)

type Repository interface {
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// ListByPet ordena por date DESC, created_at ASC, id ASC.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error)
	Update(ctx context.Context, id string, patch Patch) (Record, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Types []RecordType
}

// Patch es un update parcial: nil = no tocar. Details se reemplaza entero.
type Patch struct {
	Date    *civil.Date
	Details Details
}
