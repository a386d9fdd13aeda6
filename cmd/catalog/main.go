package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hackhub/internal/badger"
	"hackhub/internal/catalog"
	"hackhub/internal/config"
	"hackhub/internal/db"
	"hackhub/internal/handlers/api"
	"hackhub/internal/metrics"
	"hackhub/internal/server"
	"hackhub/internal/store"
	"hackhub/migrations"
)

const description = "Catalogo de productos"

type productStore interface {
	store.Productos
	api.Pinger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(":8080", "catalog")
	slog.SetDefault(cfg.Logger())

	productos, counter, closeStore := openStorage(ctx, cfg)
	defer closeStore()

	metrics.Init(counter)

	srv := server.New(cfg)
	srv.RegisterCatalogRoutes(
		catalog.NewService(productos),
		api.NewHealthHandler(cfg.AppName, description, cfg.Port(), map[string]api.Pinger{"storage": productos}),
	)

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

func openStorage(ctx context.Context, cfg *config.Config) (productStore, store.RecordCounter, func()) {
	switch cfg.StorageBackend {
	case config.BackendBadger:
		st, err := badger.Open(cfg.BadgerPath)
		if err != nil {
			log.Fatalf("Failed to open badger store: %v", err)
		}
		slog.Info("using badger storage", "path", cfg.BadgerPath)
		return st, store.RecordCounterFunc(st.CountProductos), func() { st.Close() }

	case config.BackendPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL, migrations.Catalog); err != nil {
			database.Close()
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("migrations completed successfully", "set", migrations.Catalog)
		return database, store.RecordCounterFunc(database.CountProductos), database.Close

	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q", cfg.StorageBackend)
		return nil, nil, nil
	}
}
