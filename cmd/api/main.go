package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-care/internal/adapters/genai"
	"pet-care/internal/adapters/storage"
	"pet-care/internal/adapters/supabase"
	"pet-care/internal/config"
	"pet-care/internal/domain/assistant"
	"pet-care/internal/domain/community"
	"pet-care/internal/platform/i18n"
	"pet-care/internal/platform/logger"
	"pet-care/internal/ports/auth"
	"pet-care/internal/router"
)

// @title Pet Care API
// @version 1.0
// @description Mascotas, historial médico, diario, citas y comunidad.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg.Storage(), log)
	if err != nil {
		log.Error("storage init failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer func() { _ = repos.Close() }()

	var verifier auth.AuthVerifier // nil => modo dev
	if cfg.AuthMode == config.AuthModeSupabase {
		client, err := supabase.New(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey, Timeout: cfg.StorageTimeout})
		if err != nil {
			log.Error("supabase auth init failed", map[string]any{"error": err})
			os.Exit(1)
		}
		verifier = supabase.NewVerifier(client)
	}

	var gen assistant.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := genai.New(genai.Config{
			BaseURL: cfg.GeminiBaseURL,
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
		})
		if err != nil {
			log.Error("genai init failed", map[string]any{"error": err})
			os.Exit(1)
		}
		gen = client
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant disabled", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Repos:        repos,
		Logger:       log,
		Bundle:       i18n.MustLoad(),
		Community: community.NewStore(community.Options{
			Latency: cfg.CommunityLatency,
			Seed:    cfg.CommunitySeed,
		}),
		Generator: gen,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", map[string]any{"error": err})
		}
	}()

	log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr(), "storage": repos.Driver, "auth": cfg.AuthMode})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
