package medicalrecords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/google/uuid"
)

var ErrNotFound = recordstore.ErrNotFound

var _ recordstore.Store[Record, CreateInput, UpdateInput] = (*Service)(nil)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	Date    civil.Date
	Details Details
}

// UpdateInput: Type solo se usa para rechazar un cambio de tipo explícito.
type UpdateInput struct {
	Type    *RecordType
	Date    *civil.Date
	Details Details
}

func (s *Service) Create(ctx context.Context, scope recordstore.Scope, in CreateInput) (Record, error) {
	petID := strings.TrimSpace(scope.PetID)
	ownerUserID := strings.TrimSpace(scope.OwnerUserID)
	if petID == "" || ownerUserID == "" {
		return Record{}, fmt.Errorf("%w: pet and owner required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Record{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	if in.Details == nil {
		return Record{}, fmt.Errorf("%w: details required", ErrInvalidInput)
	}
	t := in.Details.RecordType()
	if err := ValidateRecord(t, in.Details); err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:          uuid.NewString(),
		PetID:       petID,
		OwnerUserID: ownerUserID,
		CreatedAt:   s.now(),
		Type:        t,
		Date:        in.Date,
		Details:     in.Details,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los registros de la mascota, más recientes primero.
func (s *Service) List(ctx context.Context, petID string) ([]Record, error) {
	return s.ListFiltered(ctx, petID, ListFilter{})
}

func (s *Service) ListFiltered(ctx context.Context, petID string, filter ListFilter) ([]Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, fmt.Errorf("%w: pet required", ErrInvalidInput)
	}
	for _, t := range filter.Types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
		}
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

// Update cambia date y/o details. Si llegan details (o un type explícito)
// se lee el registro guardado para comprobar que el tipo no cambia.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}

	var patch Patch
	if in.Date != nil {
		if in.Date.IsZero() {
			return Record{}, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		d := *in.Date
		patch.Date = &d
	}

	if in.Details != nil || in.Type != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return Record{}, err
		}
		if in.Type != nil && *in.Type != current.Type {
			return Record{}, fmt.Errorf("%w: %s -> %s", ErrTypeImmutable, current.Type, *in.Type)
		}
		if in.Details != nil {
			if in.Details.RecordType() != current.Type {
				return Record{}, fmt.Errorf("%w: %s -> %s", ErrTypeImmutable, current.Type, in.Details.RecordType())
			}
			if err := ValidateRecord(current.Type, in.Details); err != nil {
				return Record{}, err
			}
			patch.Details = in.Details
		}
		if patch.Date == nil && patch.Details == nil {
			return current, nil
		}
	}

	if patch.Date == nil && patch.Details == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
