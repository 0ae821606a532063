package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/ITS-ERP/qms-risk-backend/internal/auth"
	"github.com/ITS-ERP/qms-risk-backend/internal/cache"
	"github.com/ITS-ERP/qms-risk-backend/internal/catalog"
	"github.com/ITS-ERP/qms-risk-backend/internal/config"
	"github.com/ITS-ERP/qms-risk-backend/internal/fallback"
	"github.com/ITS-ERP/qms-risk-backend/internal/forecast"
	"github.com/ITS-ERP/qms-risk-backend/internal/gateway"
	"github.com/ITS-ERP/qms-risk-backend/internal/handlers"
	"github.com/ITS-ERP/qms-risk-backend/internal/logging"
	natsclient "github.com/ITS-ERP/qms-risk-backend/internal/messaging/nats"
	"github.com/ITS-ERP/qms-risk-backend/internal/rpc"
	"github.com/ITS-ERP/qms-risk-backend/internal/server"
	"github.com/ITS-ERP/qms-risk-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("risk"))
	logging.SetDefault(logger)

	slog.Info("Starting risk reporting service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *addr != "" {
		listenAddr = *addr
	}

	if cfg.Databases.CatalogURL == "" {
		slog.Error("databases.catalog_url is required")
		os.Exit(1)
	}

	// Run DB migrations against the catalog store
	slog.Info("Running database migrations")
	m, err := migrate.New("file://migrations", cfg.Databases.CatalogURL)
	if err != nil {
		slog.Error("Failed to initialize migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	ctx := context.Background()

	catalogRepo, err := catalog.NewRepository(ctx, cfg.Databases.CatalogURL)
	if err != nil {
		log.Fatalf("connect catalog db: %v", err)
	}
	defer catalogRepo.Close()

	// Fallback stores; domains without a dedicated URL share the catalog DB
	stores := map[string]*fallback.Store{}
	openStore := func(name, url string) *fallback.Store {
		resolved := cfg.Databases.DomainURL(url)
		if s, ok := stores[resolved]; ok {
			return s
		}
		s, err := fallback.Connect(ctx, resolved)
		if err != nil {
			log.Fatalf("connect %s fallback store: %v", name, err)
		}
		stores[resolved] = s
		return s
	}
	inventoryStore := openStore("inventory", cfg.Databases.InventoryURL)
	manufacturingStore := openStore("manufacturing", cfg.Databases.ManufacturingURL)
	procurementStore := openStore("procurement", cfg.Databases.ProcurementURL)
	contractStore := openStore("contract", cfg.Databases.ContractURL)
	requisitionStore := openStore("requisition", cfg.Databases.RequisitionURL)
	defer func() {
		for _, s := range stores {
			s.Close()
		}
	}()

	// Broker connection is long-lived; each RPC call gets its own inbox
	var broker *natsclient.Client
	if cfg.NATS.Enabled {
		broker, err = natsclient.NewClient(natsclient.Config{
			URL:           cfg.NATS.URL,
			Name:          "qms-risk-backend",
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: cfg.NATS.ReconnectWaitDuration(),
			Timeout:       5 * time.Second,
		})
		if err != nil {
			// The service still works without the broker: every gateway
			// call will take the fallback path.
			slog.Warn("NATS unavailable, all reads will use fallback stores",
				slog.String("error", err.Error()))
			broker = nil
		} else {
			defer broker.Close()
			slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))

			// Answer the liveness queue so peer services can probe us
			// over the broker.
			if sub, err := rpc.ServePing(broker, "qms-risk-backend"); err != nil {
				slog.Warn("ping responder not started", slog.String("error", err.Error()))
			} else {
				slog.Info("Ping responder subscribed", logging.Queue(sub.Subject()))
			}
		}
	}

	var transport gateway.Transport
	if broker != nil {
		transport = rpc.NewCaller(broker, cfg.RPC.Timeout())
	} else {
		transport = rpc.Unavailable{}
	}

	gateways := gateway.New(transport, inventoryStore, manufacturingStore, procurementStore, contractStore, requisitionStore)
	observers := service.NewObservers(gateways, time.Now)
	registry := service.DefaultRegistry(observers)
	forecastClient := forecast.NewClient(cfg.Forecast.URL, cfg.Forecast.Timeout())

	svc := service.NewRiskService(catalogRepo, registry, observers, forecastClient)

	if cfg.Redis.Enabled && cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		svc = svc.WithCache(cache.New(rdb, cfg.Redis.TTL()))
		slog.Info("Report cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	h := handlers.New(svc, catalogRepo).WithReadiness(
		handlers.ReadinessCheck{Name: "catalog_db", Check: catalogRepo.Ping},
		handlers.ReadinessCheck{Name: "inventory_db", Check: inventoryStore.Ping},
	)
	if broker != nil {
		h = h.WithReadiness(handlers.ReadinessCheck{Name: "broker", Check: func(ctx context.Context) error {
			if !broker.IsConnected() {
				return errors.New("nats not connected")
			}
			return nil
		}})
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      server.NewRouter(h, verifier),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("HTTP server listening", slog.String("addr", listenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutting down")

	shutdownTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		slog.Error("HTTP shutdown failed", slog.String("error", err.Error()))
	}
	if broker != nil {
		if err := broker.Drain(); err != nil {
			slog.Warn("NATS drain failed", slog.String("error", err.Error()))
		}
	}
}
