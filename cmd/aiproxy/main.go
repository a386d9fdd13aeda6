package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hackhub/internal/badger"
	"hackhub/internal/config"
	"hackhub/internal/db"
	"hackhub/internal/handlers/api"
	"hackhub/internal/jobs"
	"hackhub/internal/jsearch"
	"hackhub/internal/langid"
	"hackhub/internal/metrics"
	"hackhub/internal/middleware"
	"hackhub/internal/rapidapi"
	"hackhub/internal/server"
	"hackhub/internal/store"
	"hackhub/migrations"
)

const description = "Microservicio Base para Hackathon"

type documentStore interface {
	store.JobSearchResults
	store.LanguageDetections
	api.Pinger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(":8088", "aiproxy")
	slog.SetDefault(cfg.Logger())

	lookups, err := config.LoadLookups(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load lookup tables: %v", err)
	}

	docs, counter, closeStore := openStorage(ctx, cfg)
	defer closeStore()

	metrics.Init(counter)

	jsearchClient := rapidapi.New(rapidapi.Options{
		Name:         "jsearch",
		BaseURL:      cfg.JSearch.BaseURL,
		APIKey:       cfg.JSearch.APIKey,
		APIHost:      cfg.JSearch.APIHost,
		Timeout:      cfg.UpstreamTimeout,
		MaxBodyBytes: cfg.UpstreamMaxBody,
	})
	langClient := rapidapi.New(rapidapi.Options{
		Name:         "language_identify",
		BaseURL:      cfg.LanguageIdentify.BaseURL,
		APIKey:       cfg.LanguageIdentify.APIKey,
		APIHost:      cfg.LanguageIdentify.APIHost,
		Timeout:      cfg.UpstreamTimeout,
		MaxBodyBytes: cfg.UpstreamMaxBody,
	})
	if cfg.JSearch.APIKey == "" || cfg.LanguageIdentify.APIKey == "" {
		slog.Warn("RapidAPI keys are not fully configured, upstream calls will be rejected")
	}

	jobSvc := jsearch.NewService(jsearchClient, docs, jsearch.NewCountryResolver(lookups))
	langSvc := langid.NewService(langClient, docs, lookups.Languages, cfg.LanguageAPIVer)

	routes := server.AIProxy{
		Jobs:     jobSvc,
		Language: langSvc,
		Health:   api.NewHealthHandler(cfg.AppName, description, cfg.Port(), map[string]api.Pinger{"storage": docs}),
	}
	if cfg.EnableDiagnostics {
		routes.Diagnostics = api.NewDiagnosticsHandler(jobSvc, cfg.StorageBackend, counter)
	}
	if cfg.AuthEnabled() {
		auth, err := middleware.NewBearerAuth(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.Fatalf("Failed to initialize OIDC bearer auth: %v", err)
		}
		routes.Auth = auth
	}

	if cfg.PurgeRetention > 0 {
		purger := jobs.NewPurger(docs, docs, cfg.PurgeSchedule, cfg.PurgeRetention)
		if err := purger.Start(ctx); err != nil {
			log.Fatalf("Failed to start purger: %v", err)
		}
		defer purger.Stop()
	}

	srv := server.New(cfg)
	srv.RegisterAIProxyRoutes(routes)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

// openStorage opens the configured backend and returns it with its record
// counter and a close function.
func openStorage(ctx context.Context, cfg *config.Config) (documentStore, store.RecordCounter, func()) {
	switch cfg.StorageBackend {
	case config.BackendBadger:
		st, err := badger.Open(cfg.BadgerPath)
		if err != nil {
			log.Fatalf("Failed to open badger store: %v", err)
		}
		slog.Info("using badger storage", "path", cfg.BadgerPath)
		return st, store.RecordCounterFunc(st.CountDocuments), func() { st.Close() }

	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL, migrations.Documents); err != nil {
			database.Close()
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("migrations completed successfully", "set", migrations.Documents)
		return database, store.RecordCounterFunc(database.CountDocuments), database.Close

	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q", cfg.StorageBackend)
		return nil, nil, nil
	}
}
