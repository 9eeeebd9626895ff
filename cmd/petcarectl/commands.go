package main

import (
	"context"
	"fmt"
	"time"

	"pet-care/internal/adapters/storage"
	"pet-care/internal/platform/logger"
)

type appContext struct {
	log logger.Logger
}

func newAppContext(level string) *appContext {
	return &appContext{log: logger.New(logger.Options{
		Level:  logger.ParseLevel(level),
		Format: logger.FormatText,
		App:    "petcarectl",
	})}
}

// StorageFlags son comunes a migrate y ping; se leen también del entorno.
type StorageFlags struct {
	Driver     string        `help:"Storage driver (auto, postgres, sqlite, supabase)." env:"STORAGE_DRIVER" default:"auto"`
	DSN        string        `help:"Postgres DSN." env:"DB_DSN"`
	SQLitePath string        `help:"SQLite file path." env:"SQLITE_PATH" name:"sqlite-path" default:"data/pet-care.db" type:"path"`
	URL        string        `help:"Supabase project URL." env:"SUPABASE_URL" name:"supabase-url"`
	AnonKey    string        `help:"Supabase anon key." env:"SUPABASE_ANON_KEY" name:"supabase-anon-key"`
	Timeout    time.Duration `help:"Connect timeout." default:"15s"`
}

func (f StorageFlags) config(migrate bool) storage.Config {
	return storage.Config{
		Driver:          f.Driver,
		DSN:             f.DSN,
		SQLitePath:      f.SQLitePath,
		Migrate:         migrate,
		SupabaseURL:     f.URL,
		SupabaseAnonKey: f.AnonKey,
		Timeout:         f.Timeout,
	}
}

type MigrateCmd struct {
	StorageFlags `embed:""`
}

func (c *MigrateCmd) Run(app *appContext) error {
	cfg := c.config(true)
	switch storage.ResolveDriver(cfg) {
	case storage.DriverPostgres, storage.DriverSQLite:
	default:
		return fmt.Errorf("migrate needs postgres or sqlite, got %q (set --driver or DB_DSN)", storage.ResolveDriver(cfg))
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout+30*time.Second)
	defer cancel()

	repos, err := storage.Open(ctx, cfg, app.log)
	if err != nil {
		return err
	}
	defer func() { _ = repos.Close() }()

	app.log.Info("schema applied", map[string]any{"driver": repos.Driver})
	return nil
}

type PingCmd struct {
	StorageFlags `embed:""`
}

func (c *PingCmd) Run(app *appContext) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout+5*time.Second)
	defer cancel()

	repos, err := storage.Open(ctx, c.config(false), app.log)
	if err != nil {
		return err
	}
	defer func() { _ = repos.Close() }()

	// una lectura barata: un usuario inexistente devuelve lista vacía
	start := time.Now()
	if _, err := repos.Pets.ListByOwner(ctx, "petcarectl-ping"); err != nil {
		return fmt.Errorf("ping %s: %w", repos.Driver, err)
	}
	app.log.Info("storage reachable", map[string]any{"driver": repos.Driver, "latency_ms": time.Since(start).Milliseconds()})
	return nil
}
