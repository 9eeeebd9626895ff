package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care/internal/recordstore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = recordstore.ErrNotFound
)

var _ recordstore.Store[Pet, CreateInput, UpdateInput] = (*Service)(nil)

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
	Name     string
	Species  Species
	PhotoURI string
}

type UpdateInput struct {
	Name     *string
	Species  *Species
	PhotoURI *string
}

func (s *Service) Create(ctx context.Context, scope recordstore.Scope, in CreateInput) (Pet, error) {
	ownerUserID := strings.TrimSpace(scope.OwnerUserID)
	if ownerUserID == "" {
		return Pet{}, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	species, err := normalizeSpecies(in.Species)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Species:     species,
		PhotoURI:    strings.TrimSpace(in.PhotoURI),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve las mascotas del dueño en orden de alta.
func (s *Service) List(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Update aplica solo los campos presentes. Mandar "" en species o photo_uri los limpia.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}

	patch := Patch{UpdatedAt: s.now()}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		patch.Name = &name
	}
	if in.Species != nil {
		sp, err := normalizeSpecies(*in.Species)
		if err != nil {
			return Pet{}, err
		}
		patch.Species = &sp
	}
	if in.PhotoURI != nil {
		uri := strings.TrimSpace(*in.PhotoURI)
		patch.PhotoURI = &uri
	}

	if patch.Name == nil && patch.Species == nil && patch.PhotoURI == nil {
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

func normalizeSpecies(sp Species) (Species, error) {
	sp = Species(strings.ToLower(strings.TrimSpace(string(sp))))
	if sp == "" {
		return "", nil
	}
	if !sp.Valid() {
		return "", fmt.Errorf("%w: unknown species %q", ErrInvalidInput, sp)
	}
	return sp, nil
}
