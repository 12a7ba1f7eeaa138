// NetBridge - NetBox inventory bridge
//
// NetBridge fronts a NetBox deployment through two channels: an MCP
// tool-invocation bridge as the primary path, and NetBox's REST API as
// an optional direct fallback. It exposes a small HTTP API for entity
// lookups, choice catalogues, device payload preparation and batch
// creation of devices and their ports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "netbridge/migrations"

	"netbridge/internal/api"
	"netbridge/internal/audit"
	"netbridge/internal/infrastructure/config"
	"netbridge/internal/infrastructure/database"
	"netbridge/internal/infrastructure/logging"
	"netbridge/internal/infrastructure/metrics"
	"netbridge/internal/inventory"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting NetBridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database for the audit trail (optional)
	var auditRepo audit.Repository
	if cfg.Audit.Enabled {
		db, dbErr := database.Open(database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if dbErr != nil {
			return fmt.Errorf("opening database: %w", dbErr)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database connected", "path", cfg.Database.Path)

		if migrateErr := db.Migrate(ctx); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("database migrations complete")

		auditRepo = audit.NewSQLiteRepository(db.DB)
	} else {
		log.Info("audit trail disabled")
	}

	// Connect to InfluxDB for channel-call metrics (optional)
	var recorder inventory.Recorder
	if cfg.InfluxDB.Enabled {
		metricsClient, metricsErr := metrics.Connect(cfg.InfluxDB)
		if metricsErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", metricsErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := metricsClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		metricsClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		recorder = metricsClient
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the inventory service and its two channels
	bridgeClient := inventory.NewBridgeClient(cfg.Bridge, recorder)
	directClient := inventory.NewDirectClient(cfg.NetBox, recorder)

	inventoryService, err := inventory.New(inventory.Deps{
		Bridge:       bridgeClient,
		Direct:       directClient,
		Logger:       log,
		DefaultLimit: cfg.Inventory.DefaultLimit,
	})
	if err != nil {
		return fmt.Errorf("creating inventory service: %w", err)
	}
	log.Info("inventory service initialised",
		"bridge_url", cfg.Bridge.URL,
		"direct_fallback", directClient.Configured(),
	)

	// Start the HTTP API server
	server, err := api.New(api.Deps{
		Config:    cfg,
		Logger:    log,
		Inventory: inventoryService,
		Audit:     auditRepo,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("API server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, cleaning up")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error shutting down API server", "error", closeErr)
		}
	}

	log.Info("NetBridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses NETBRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("NETBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
