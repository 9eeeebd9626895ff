// Package memory guarda todo en memoria del proceso. Es el backend por
// defecto en dev y el de referencia para la suite de compliance.
package memory

import (
	"sort"
	"sync"
	"time"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/civil"
)

// DB comparte un único lock entre los repos para que el borrado de una
// mascota arrastre sus registros y citas igual que el ON DELETE CASCADE de SQL.
type DB struct {
	mu           sync.RWMutex
	pets         map[string]pets.Pet
	records      map[string]medicalrecords.Record
	diary        map[string]diary.Entry
	appointments map[string]appointments.Appointment
}

func New() *DB {
	return &DB{
		pets:         make(map[string]pets.Pet),
		records:      make(map[string]medicalrecords.Record),
		diary:        make(map[string]diary.Entry),
		appointments: make(map[string]appointments.Appointment),
	}
}

func (db *DB) Pets() pets.Repository                 { return &petRepo{db: db} }
func (db *DB) Records() medicalrecords.Repository    { return &recordRepo{db: db} }
func (db *DB) Diary() diary.Repository               { return &diaryRepo{db: db} }
func (db *DB) Appointments() appointments.Repository { return &appointmentRepo{db: db} }

type sortKey struct {
	date      civil.Date
	createdAt time.Time
	id        string
}

// sortByDateDesc ordena date DESC, created_at ASC, id ASC (mismo ORDER BY que SQL).
func sortByDateDesc[T any](items []T, key func(T) sortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if c := a.date.Compare(b.date); c != 0 {
			return c > 0
		}
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.id < b.id
	})
}
