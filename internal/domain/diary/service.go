package diary

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

var _ recordstore.Store[Entry, CreateInput, UpdateInput] = (*Service)(nil)

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
	Title     string
	Date      civil.Date
	Location  string
	Content   string
	Sentiment Sentiment
}

type UpdateInput struct {
	Title     *string
	Date      *civil.Date
	Location  *string
	Content   *string
	Sentiment *Sentiment
}

// Create ignora scope.PetID: el diario es del usuario.
func (s *Service) Create(ctx context.Context, scope recordstore.Scope, in CreateInput) (Entry, error) {
	ownerUserID := strings.TrimSpace(scope.OwnerUserID)
	if ownerUserID == "" {
		return Entry{}, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Entry{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return Entry{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}
	sentiment, err := normalizeSentiment(in.Sentiment)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		CreatedAt:   s.now(),
		Title:       title,
		Date:        in.Date,
		Location:    strings.TrimSpace(in.Location),
		Content:     in.Content,
		Sentiment:   sentiment,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerUserID string) ([]Entry, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}

	var patch Patch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Entry{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		patch.Title = &title
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Entry{}, fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
		}
		d := *in.Date
		patch.Date = &d
	}
	if in.Location != nil {
		loc := strings.TrimSpace(*in.Location)
		patch.Location = &loc
	}
	if in.Content != nil {
		c := *in.Content
		patch.Content = &c
	}
	if in.Sentiment != nil {
		sentiment, err := normalizeSentiment(*in.Sentiment)
		if err != nil {
			return Entry{}, err
		}
		patch.Sentiment = &sentiment
	}

	if patch.IsEmpty() {
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

func normalizeSentiment(s Sentiment) (Sentiment, error) {
	s = Sentiment(strings.ToLower(strings.TrimSpace(string(s))))
	if s == "" {
		return "", nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown sentiment %q", ErrInvalidInput, s)
	}
	return s, nil
}
