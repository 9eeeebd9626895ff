package sqlstore_test

import (
	"context"
	"testing"

	"pet-care/internal/adapters/storage"
	"pet-care/internal/adapters/storage/sqlite"
	"pet-care/internal/adapters/storage/sqlstore"
	"pet-care/internal/adapters/storage/storetest"

	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) storage.Repos {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(context.Background(), db, sqlstore.SQLite))

	s := sqlstore.New(db, sqlstore.SQLite)
	return storage.Repos{
		Driver:       storage.DriverSQLite,
		Pets:         s.Pets(),
		Records:      s.Records(),
		Diary:        s.Diary(),
		Appointments: s.Appointments(),
		DB:           db,
		Close:        db.Close,
	}
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, openSQLite)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.SQLite))
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.SQLite))
}
