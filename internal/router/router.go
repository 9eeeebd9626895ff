package router

import (
	"net/http"

	_ "pet-care/docs"
	"pet-care/internal/adapters/storage"
	"pet-care/internal/adapters/storage/memory"
	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/assistant"
	"pet-care/internal/domain/community"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/domain/profile"
	"pet-care/internal/middleware"
	"pet-care/internal/platform/i18n"
	"pet-care/internal/platform/logger"
	"pet-care/internal/ports/auth"
	"pet-care/internal/recordstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Repos del backend elegido. Si Pets viene nil se usa memoria.
	Repos storage.Repos

	Logger logger.Logger
	Bundle *i18n.Bundle

	// Community es el mock de red social. Si es nil se crea uno con seed y sin latencia.
	Community *community.Store

	// Generator es el proveedor de IA. nil deja el asistente respondiendo 503.
	Generator assistant.Generator
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = i18n.MustLoad()
	}

	repos := opts.Repos
	if repos.Pets == nil {
		db := memory.New()
		repos = storage.Repos{
			Driver:       storage.DriverMemory,
			Pets:         db.Pets(),
			Records:      db.Records(),
			Diary:        db.Diary(),
			Appointments: db.Appointments(),
			Close:        func() error { return nil },
		}
	}

	feed := opts.Community
	if feed == nil {
		feed = community.NewStore(community.Options{Seed: true})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	petsSvc := pets.NewService(repos.Pets)
	recordsSvc := medicalrecords.NewService(repos.Records)
	diarySvc := diary.NewService(repos.Diary)
	appointmentsSvc := appointments.NewService(repos.Appointments)

	// el perfil se arma aunque los registros médicos no carguen
	lenientRecords := recordstore.NewLenient[medicalrecords.Record, medicalrecords.CreateInput, medicalrecords.UpdateInput](
		"medical_records", recordsSvc, log,
	)
	profileSvc := profile.NewService(petsSvc, lenientRecords, bundle)
	assistantSvc := assistant.NewService(opts.Generator, bundle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthContext(opts.AuthVerifier))
		r.Use(middleware.Locale(bundle))

		// Rutas por módulo
		pets.RegisterRoutes(r, petsSvc)
		medicalrecords.RegisterRoutes(r, recordsSvc, petsSvc)
		appointments.RegisterRoutes(r, appointmentsSvc, petsSvc)
		profile.RegisterRoutes(r, profileSvc)
		diary.RegisterRoutes(r, diarySvc)
		community.RegisterRoutes(r, feed)
		assistant.RegisterRoutes(r, assistantSvc)
	})

	log.Info("router ready", map[string]any{
		"storage":   repos.Driver,
		"auth":      authMode(opts.AuthVerifier),
		"assistant": opts.Generator != nil,
	})

	return r
}

func authMode(v auth.AuthVerifier) string {
	if v == nil {
		return "dev"
	}
	return "verifier"
}
