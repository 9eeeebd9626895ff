package memory

import (
	"context"
	"errors"
	"strings"

	"pet-care/internal/domain/diary"
	"pet-care/internal/recordstore"
)

type diaryRepo struct {
	db *DB
}

func (r *diaryRepo) Create(ctx context.Context, e diary.Entry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.db.diary[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.db.diary[e.ID] = e
	return nil
}

func (r *diaryRepo) GetByID(ctx context.Context, id string) (diary.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	e, ok := r.db.diary[id]
	if !ok {
		return diary.Entry{}, recordstore.ErrNotFound
	}
	return e, nil
}

func (r *diaryRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diary.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]diary.Entry, 0)
	for _, e := range r.db.diary {
		if e.OwnerUserID == ownerUserID {
			out = append(out, e)
		}
	}
	sortByDateDesc(out, func(e diary.Entry) sortKey {
		return sortKey{date: e.Date, createdAt: e.CreatedAt, id: e.ID}
	})
	return out, nil
}

func (r *diaryRepo) Update(ctx context.Context, id string, patch diary.Patch) (diary.Entry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.diary[id]
	if !ok {
		return diary.Entry{}, recordstore.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Sentiment != nil {
		e.Sentiment = *patch.Sentiment
	}
	r.db.diary[id] = e
	return e, nil
}

func (r *diaryRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.diary[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.db.diary, id)
	return nil
}
