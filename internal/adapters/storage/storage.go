// Package storage elige el backend de persistencia según la config y entrega
// los repositorios que consumen los services.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-care/internal/adapters/storage/memory"
	"pet-care/internal/adapters/storage/postgres"
	"pet-care/internal/adapters/storage/sqlite"
	"pet-care/internal/adapters/storage/sqlstore"
	"pet-care/internal/adapters/supabase"
	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/platform/logger"
)

const (
	DriverAuto     = "auto"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

type Config struct {
	Driver string

	DSN        string
	SQLitePath string
	// Migrate aplica el DDL embebido al abrir (postgres y sqlite).
	Migrate bool

	SupabaseURL     string
	SupabaseAnonKey string
	Timeout         time.Duration
}

// Repos agrupa los repositorios de un mismo backend.
type Repos struct {
	Driver string

	Pets         pets.Repository
	Records      medicalrecords.Repository
	Diary        diary.Repository
	Appointments appointments.Repository

	// DB es nil salvo en postgres y sqlite.
	DB    *sql.DB
	Close func() error
}

// ResolveDriver resuelve "auto": supabase si hay URL, postgres si hay DSN,
// si no memoria.
func ResolveDriver(cfg Config) string {
	d := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if d != "" && d != DriverAuto {
		return d
	}
	switch {
	case strings.TrimSpace(cfg.SupabaseURL) != "":
		return DriverSupabase
	case strings.TrimSpace(cfg.DSN) != "":
		return DriverPostgres
	default:
		return DriverMemory
	}
}

func Open(ctx context.Context, cfg Config, log logger.Logger) (Repos, error) {
	if log == nil {
		log = logger.Nop()
	}
	driver := ResolveDriver(cfg)

	switch driver {
	case DriverMemory:
		db := memory.New()
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return Repos{
			Driver:       driver,
			Pets:         db.Pets(),
			Records:      db.Records(),
			Diary:        db.Diary(),
			Appointments: db.Appointments(),
			Close:        func() error { return nil },
		}, nil

	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return Repos{}, fmt.Errorf("storage %s: DB_DSN required", driver)
		}
		db, err := postgres.Open(ctx, cfg.DSN, postgres.Options{ConnectTimeout: cfg.Timeout})
		if err != nil {
			return Repos{}, err
		}
		return openSQL(ctx, driver, db, sqlstore.Postgres, cfg.Migrate, log)

	case DriverSQLite:
		path := cfg.SQLitePath
		if strings.TrimSpace(path) == "" {
			path = "data/pet-care.db"
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return Repos{}, err
		}
		return openSQL(ctx, driver, db, sqlstore.SQLite, cfg.Migrate, log)

	case DriverSupabase:
		client, err := supabase.New(supabase.Config{
			URL:     cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return Repos{}, err
		}
		log.Info("using supabase storage", map[string]any{"url": cfg.SupabaseURL})
		return Repos{
			Driver:       driver,
			Pets:         client.Pets(),
			Records:      client.Records(),
			Diary:        client.Diary(),
			Appointments: client.Appointments(),
			Close:        func() error { return nil },
		}, nil

	default:
		return Repos{}, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func openSQL(ctx context.Context, driver string, db *sql.DB, d sqlstore.Dialect, migrate bool, log logger.Logger) (Repos, error) {
	if migrate {
		if err := sqlstore.Migrate(ctx, db, d); err != nil {
			_ = db.Close()
			return Repos{}, err
		}
	}
	log.Info("storage connected", map[string]any{"driver": driver, "migrated": migrate})

	s := sqlstore.New(db, d)
	return Repos{
		Driver:       driver,
		Pets:         s.Pets(),
		Records:      s.Records(),
		Diary:        s.Diary(),
		Appointments: s.Appointments(),
		DB:           db,
		Close:        db.Close,
	}, nil
}
