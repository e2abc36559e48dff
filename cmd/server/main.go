package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"smartparking/internal/api"
	"smartparking/internal/backup"
	"smartparking/internal/clock"
	"smartparking/internal/config"
	"smartparking/internal/repository"
	"smartparking/internal/service"
)

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	store, closeDB, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("opening store", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	backups, err := backup.NewFileStorage(cfg.Backup.Dir)
	if err != nil {
		logger.Error("preparing backup storage", "error", err)
		os.Exit(1)
	}

	seeder := service.NewSeeder(store, backups, logger)
	if err := seeder.Initialize(); err != nil {
		logger.Error("seeding parking layout", "error", err)
		os.Exit(1)
	}

	clk := clock.NewRealClock()
	registry := service.NewSpaceRegistry(store.Spaces)
	pricing := service.NewPricingEngine()
	snapshots := service.NewSnapshotter(store, backups, logger)
	notifier := service.NewNotifyService(service.NotifyConfig{
		SendGridAPIKey:    cfg.Notify.SendGridAPIKey,
		SendGridFromEmail: cfg.Notify.SendGridFromEmail,
		SendGridFromName:  cfg.Notify.SendGridFromName,
		TwilioAccountSID:  cfg.Notify.TwilioAccountSID,
		TwilioAuthToken:   cfg.Notify.TwilioAuthToken,
		TwilioFromNumber:  cfg.Notify.TwilioFromNumber,
	}, logger)

	reservationSvc := service.NewReservationService(store, registry, clk, logger, snapshots, notifier)
	parkingSvc := service.NewParkingService(store, registry, reservationSvc, pricing, clk, logger, snapshots)
	reportSvc := service.NewReportService(store)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Backup.Schedule, snapshots.Save); err != nil {
		logger.Error("scheduling snapshots", "schedule", cfg.Backup.Schedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(
		api.NewParkingHandler(parkingSvc),
		api.NewReservationHandler(reservationSvc),
		api.NewReportHandler(reportSvc),
	)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	h := handlers.LoggingHandler(os.Stdout, cors(router))

	logger.Info("server running", "port", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, h); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openStore returns the Postgres-backed store when DATABASE_URL is set and
// the in-memory store otherwise.
func openStore(cfg config.Config, logger *slog.Logger) (*repository.Store, func(), error) {
	if cfg.DB.URL == "" {
		logger.Info("no DATABASE_URL set, using in-memory store")
		return repository.NewMemoryStore(), func() {}, nil
	}

	database, err := sql.Open("postgres", cfg.DB.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, nil, err
	}
	store, err := repository.NewPostgresStore(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	logger.Info("connected to postgres")
	return store, func() { database.Close() }, nil
}
