package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-care/internal/domain/pets"
	"pet-care/internal/recordstore"
)

type petRepo struct {
	db *DB
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.db.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.db.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.pets[id]
	if !ok {
		return pets.Pet{}, recordstore.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Species != nil {
		p.Species = *patch.Species
	}
	if patch.PhotoURI != nil {
		p.PhotoURI = *patch.PhotoURI
	}
	p.UpdatedAt = patch.UpdatedAt
	r.db.pets[id] = p
	return p, nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.pets[id]
	if !ok {
		return pets.Pet{}, recordstore.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.db.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// created_at asc, id asc: mismo orden que los adapters SQL
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// Delete borra la mascota y en cascada sus registros médicos y citas.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.pets[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.db.pets, id)

	for rid, rec := range r.db.records {
		if rec.PetID == id {
			delete(r.db.records, rid)
		}
	}
	for aid, a := range r.db.appointments {
		if a.PetID == id {
			delete(r.db.appointments, aid)
		}
	}
	return nil
}
