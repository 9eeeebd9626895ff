package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care/internal/platform/civil"
	"pet-care/internal/recordstore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = recordstore.ErrNotFound
)

var _ recordstore.Store[Appointment, CreateInput, UpdateInput] = (*Service)(nil)

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
	Date  civil.Date
	Type  string
	Notes string
}

type UpdateInput struct {
	Date  *civil.Date
	Type  *string
	Notes *string
}

func (s *Service) Create(ctx context.Context, scope recordstore.Scope, in CreateInput) (Appointment, error) {
	petID := strings.TrimSpace(scope.PetID)
	ownerUserID := strings.TrimSpace(scope.OwnerUserID)
	if petID == "" || ownerUserID == "" {
		return Appointment{}, fmt.Errorf("%w: pet and owner required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Appointment{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return Appointment{}, fmt.Errorf("%w: type required", ErrInvalidInput)
	}

	a := Appointment{
		ID:          uuid.NewString(),
		PetID:       petID,
		OwnerUserID: ownerUserID,
		CreatedAt:   s.now(),
		Date:        in.Date,
		Type:        typ,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, petID string) ([]Appointment, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, fmt.Errorf("%w: pet required", ErrInvalidInput)
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrNotFound
	}

	var patch Patch
	if in.Date != nil {
		if in.Date.IsZero() {
			return Appointment{}, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		d := *in.Date
		patch.Date = &d
	}
	if in.Type != nil {
		typ := strings.TrimSpace(*in.Type)
		if typ == "" {
			return Appointment{}, fmt.Errorf("%w: type cannot be empty", ErrInvalidInput)
		}
		patch.Type = &typ
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		patch.Notes = &notes
	}

	if patch.Date == nil && patch.Type == nil && patch.Notes == nil {
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
