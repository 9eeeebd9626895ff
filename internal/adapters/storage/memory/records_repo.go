package memory

import (
	"context"
	"errors"
	"strings"

	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/recordstore"
)

type recordRepo struct {
	db *DB
}

func (r *recordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.db.records[rec.ID]; exists {
		return errors.New("record already exists")
	}
	if _, ok := r.db.pets[rec.PetID]; !ok {
		return errors.New("pet does not exist")
	}
	r.db.records[rec.ID] = rec
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.records[id]
	if !ok {
		return medicalrecords.Record{}, recordstore.ErrNotFound
	}
	return rec, nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string, filter medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	allowed := map[medicalrecords.RecordType]bool{}
	for _, t := range filter.Types {
		allowed[t] = true
	}

	out := make([]medicalrecords.Record, 0)
	for _, rec := range r.db.records {
		if rec.PetID != petID {
			continue
		}
		if len(allowed) > 0 && !allowed[rec.Type] {
			continue
		}
		out = append(out, rec)
	}

	sortByDateDesc(out, func(rec medicalrecords.Record) sortKey {
		return sortKey{date: rec.Date, createdAt: rec.CreatedAt, id: rec.ID}
	})
	return out, nil
}

func (r *recordRepo) Update(ctx context.Context, id string, patch medicalrecords.Patch) (medicalrecords.Record, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.records[id]
	if !ok {
		return medicalrecords.Record{}, recordstore.ErrNotFound
	}
	if patch.Date != nil {
		rec.Date = *patch.Date
	}
	if patch.Details != nil {
		rec.Details = patch.Details
	}
	r.db.records[id] = rec
	return rec, nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.records[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.db.records, id)
	return nil
}
