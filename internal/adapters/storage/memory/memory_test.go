package memory_test

import (
	"testing"

	"pet-care/internal/adapters/storage"
	"pet-care/internal/adapters/storage/memory"
	"pet-care/internal/adapters/storage/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Repos {
		db := memory.New()
		return storage.Repos{
			Driver:       storage.DriverMemory,
			Pets:         db.Pets(),
			Records:      db.Records(),
			Diary:        db.Diary(),
			Appointments: db.Appointments(),
			Close:        func() error { return nil },
		}
	})
}
