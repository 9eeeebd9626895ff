package diary

import (
	"context"

	"pet-care/internal/platform/civil"
)

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	// ListByOwner ordena por date DESC, created_at ASC, id ASC.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Entry, error)
	Update(ctx context.Context, id string, patch Patch) (Entry, error)
	Delete(ctx context.Context, id string) error
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	Title     *string
	Date      *civil.Date
	Location  *string
	Content   *string
	Sentiment *Sentiment
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Location == nil && p.Content == nil && p.Sentiment == nil
}
