package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	extracthandlers "github.com/coreframe-ai/doom-diag/pkg/handlers/extract"
	memoryhandlers "github.com/coreframe-ai/doom-diag/pkg/handlers/memory"
	reporthandlers "github.com/coreframe-ai/doom-diag/pkg/handlers/report"
	doomdiagmiddleware "github.com/coreframe-ai/doom-diag/pkg/server/middleware"
	extractsvc "github.com/coreframe-ai/doom-diag/pkg/services/extract"
	memorysvc "github.com/coreframe-ai/doom-diag/pkg/services/memory"
	"github.com/coreframe-ai/doom-diag/pkg/services/pipeline"
	reportsvc "github.com/coreframe-ai/doom-diag/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Runner    *pipeline.Runner
	Reports   *reportsvc.Controller
	Extractor *extractsvc.Service // local-only service behind the /extract endpoint
	Memory    memorysvc.Store
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	reportHandler := reporthandlers.NewHandler(config.Dependencies.Runner, config.Dependencies.Reports)
	extractHandler := extracthandlers.NewHandler(config.Dependencies.Extractor)
	memoryHandler := memoryhandlers.NewHandler(config.Dependencies.Memory)

	router := chi.NewRouter()
	router.Use(doomdiagmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", reportHandler.CreateReport)
		r.Get("/reports", reportHandler.ListReports)
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Post("/reports/{id}/headlines/{index}/complete", reportHandler.CompleteAction)
		r.Post("/reports/{id}/save", reportHandler.SaveReport)
		r.Get("/reports/{id}/export", reportHandler.ExportReport)

		r.Post("/extract", extractHandler.Parse)

		r.Get("/memory/preferences", memoryHandler.GetPreferences)
		r.Put("/memory/preferences", memoryHandler.SetPreferences)
		r.Get("/memory/usage", memoryHandler.ListUsage)
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
