package memory

import (
	"context"
	"errors"
	"strings"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/recordstore"
)

type appointmentRepo struct {
	db *DB
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.db.appointments[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	if _, ok := r.db.pets[a.PetID]; !ok {
		return errors.New("pet does not exist")
	}
	r.db.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.appointments[id]
	if !ok {
		return appointments.Appointment{}, recordstore.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) ListByPet(ctx context.Context, petID string) ([]appointments.Appointment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.db.appointments {
		if a.PetID == petID {
			out = append(out, a)
		}
	}
	sortByDateDesc(out, func(a appointments.Appointment) sortKey {
		return sortKey{date: a.Date, createdAt: a.CreatedAt, id: a.ID}
	})
	return out, nil
}

func (r *appointmentRepo) Update(ctx context.Context, id string, patch appointments.Patch) (appointments.Appointment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.appointments[id]
	if !ok {
		return appointments.Appointment{}, recordstore.ErrNotFound
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Type != nil {
		a.Type = *patch.Type
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	r.db.appointments[id] = a
	return a, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.appointments[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(r.db.appointments, id)
	return nil
}
