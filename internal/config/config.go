// Package config lee la configuración del proceso desde variables de entorno.
package config

import (
	"fmt"
	"strings"
	"time"

	"pet-care/internal/adapters/storage"

	"github.com/kelseyhightower/envconfig"
)

const (
	AuthModeDev      = "dev"
	AuthModeSupabase = "supabase"
)

type Config struct {
	AppName   string `envconfig:"APP_NAME" default:"pet-care"`
	Port      int    `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// AuthMode dev acepta X-Debug-User-ID; supabase exige Bearer verificado.
	AuthMode string `envconfig:"AUTH_MODE" default:"dev"`

	// Storage: auto elige supabase → postgres → memory según lo que haya.
	StorageDriver  string        `envconfig:"STORAGE_DRIVER" default:"auto"`
	DBDSN          string        `envconfig:"DB_DSN"`
	SQLitePath     string        `envconfig:"SQLITE_PATH" default:"data/pet-care.db"`
	DBMigrate      bool          `envconfig:"DB_MIGRATE" default:"true"`
	StorageTimeout time.Duration `envconfig:"STORAGE_TIMEOUT" default:"10s"`

	SupabaseURL     string `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey string `envconfig:"SUPABASE_ANON_KEY"`

	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GeminiTimeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`

	CommunityLatency time.Duration `envconfig:"COMMUNITY_LATENCY" default:"300ms"`
	CommunitySeed    bool          `envconfig:"COMMUNITY_SEED" default:"true"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"45s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load procesa el entorno y valida combinaciones.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.AuthMode = strings.ToLower(strings.TrimSpace(c.AuthMode))
	switch c.AuthMode {
	case AuthModeDev:
	case AuthModeSupabase:
		if strings.TrimSpace(c.SupabaseURL) == "" || strings.TrimSpace(c.SupabaseAnonKey) == "" {
			return fmt.Errorf("AUTH_MODE=supabase requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case "", storage.DriverAuto, storage.DriverMemory, storage.DriverSQLite:
	case storage.DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DB_DSN")
		}
	case storage.DriverSupabase:
		if strings.TrimSpace(c.SupabaseURL) == "" || strings.TrimSpace(c.SupabaseAnonKey) == "" {
			return fmt.Errorf("STORAGE_DRIVER=supabase requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	return nil
}

func (c Config) Storage() storage.Config {
	return storage.Config{
		Driver:          c.StorageDriver,
		DSN:             c.DBDSN,
		SQLitePath:      c.SQLitePath,
		Migrate:         c.DBMigrate,
		SupabaseURL:     c.SupabaseURL,
		SupabaseAnonKey: c.SupabaseAnonKey,
		Timeout:         c.StorageTimeout,
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
