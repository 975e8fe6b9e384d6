package main

import (
	"fmt"
	"net"
	"os"

	"github.com/coreframe-ai/doom-diag/pkg/server"
	"github.com/coreframe-ai/doom-diag/pkg/services/analyze"
	"github.com/coreframe-ai/doom-diag/pkg/services/config"
	"github.com/coreframe-ai/doom-diag/pkg/services/extract"
	"github.com/coreframe-ai/doom-diag/pkg/services/forecast"
	"github.com/coreframe-ai/doom-diag/pkg/services/headlines"
	"github.com/coreframe-ai/doom-diag/pkg/services/pipeline"
	reportsvc "github.com/coreframe-ai/doom-diag/pkg/services/report"
	"github.com/coreframe-ai/doom-diag/pkg/store/duckdb"
	duckdbmemory "github.com/coreframe-ai/doom-diag/pkg/store/duckdb/memory"
	duckdbreport "github.com/coreframe-ai/doom-diag/pkg/store/duckdb/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Doom-Diag web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the doom-diag config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Database.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	reportStore, err := duckdbreport.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	memoryStore, err := duckdbmemory.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create memory store: %w", err)
	}

	var remote *extract.RemoteClient
	if cfg.Extraction.Endpoint != "" {
		remote = extract.NewRemoteClient(cfg.Extraction.Endpoint)
	}
	extractor := extract.NewService(extract.Settings{
		LocalLimit: cfg.Extraction.LocalLimitBytes,
		HardLimit:  cfg.Extraction.HardLimitBytes,
		Remote:     remote,
	})

	// The /extract endpoint parses everything itself up to the hard cap;
	// size-based delegation only makes sense on the client side.
	serverExtractor := extract.NewService(extract.Settings{
		LocalLimit: cfg.Extraction.HardLimitBytes,
		HardLimit:  cfg.Extraction.HardLimitBytes,
	})

	generator := headlines.NewGeminiGenerator(ctx, headlines.Settings{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})

	runner := pipeline.NewRunner(
		extractor,
		analyze.NewAnalyzer(),
		forecast.NewForecaster(),
		generator,
		memoryStore,
	)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Runner:    runner,
			Reports:   reportsvc.NewController(reportStore),
			Extractor: serverExtractor,
			Memory:    memoryStore,
		},
	})

	logger.Info().Msgf("starting server on %s", addr)
	return api.Start()
}
