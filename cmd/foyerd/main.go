package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/bridge"
	"github.com/thibaultdory/foyer/internal/cache"
	"github.com/thibaultdory/foyer/internal/device"
	"github.com/thibaultdory/foyer/internal/logging"
	"github.com/thibaultdory/foyer/internal/pin"
	"github.com/thibaultdory/foyer/internal/server"
	"github.com/thibaultdory/foyer/internal/service"
	"github.com/thibaultdory/foyer/internal/session"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.Setup(env("FOYER_LOG_LEVEL", "info"), env("FOYER_LOG_FORMAT", "text"))

	backendURL := env("FOYER_BACKEND_URL", "http://localhost:56000")
	listenAddr := env("FOYER_LISTEN_ADDR", "127.0.0.1:7600")
	devicePath := env("FOYER_DEVICE_DB", "foyer-device.db")

	store, err := device.Open(devicePath)
	if err != nil {
		log.Fatalf("open device store: %v", err)
	}
	defer store.Close()

	client := api.NewClient(backendURL)
	services := service.NewRegistry(client, logger)
	sessions := session.NewManager(client, logger.With("component", "session"))

	gate, err := pin.NewGate(store, pin.Config{}, logger.With("component", "pin"))
	if err != nil {
		log.Fatalf("init pin gate: %v", err)
	}
	sessions.SetDelegationSource(gate)
	watcher := pin.NewWatcher(gate, 0, logger.With("component", "screenlock"))
	defer watcher.Stop()

	data := cache.New(services, logger.With("component", "cache"))
	defer data.Close()

	hub := bridge.NewHub(logger.With("component", "bridge"))
	for _, ds := range []cache.Dataset{
		cache.DatasetTasks, cache.DatasetPrivileges, cache.DatasetViolations, cache.DatasetRules,
	} {
		ds := ds
		data.SubscribeToDataChanges(ds, func() {
			hub.Broadcast(bridge.DataChanged(string(ds)))
		})
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sessions.Bootstrap(bootCtx); err != nil {
		// The agent still serves /status and the login URL; the UI can
		// start the OAuth flow from there.
		logger.Warn("session bootstrap failed", "error", err)
	} else if sessions.PrimaryUser() != nil {
		if err := data.Start(bootCtx); err != nil {
			logger.Error("initial data fetch failed", "error", err)
		}
	}
	cancelBoot()

	srv := server.New(sessions, services, data, gate, watcher, hub, logger.With("component", "http"))

	httpServer := &http.Server{
		Addr:         listenAddr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("foyer agent listening", "addr", listenAddr, "backend", backendURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
