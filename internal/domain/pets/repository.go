package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	Update(ctx context.Context, id string, patch Patch) (Pet, error)
	Delete(ctx context.Context, id string) error
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	Name      *string
	Species   *Species
	PhotoURI  *string
	UpdatedAt time.Time
}
