package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hostel-desk/config"
	"hostel-desk/internal/db"
	"hostel-desk/internal/devstore"
)

// hostelstore serves a db.json-style REST store for local development of the desk.
func main() {
	logger := log.New(os.Stdout, "hostel-store ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("could not read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	gormDB, err := db.Init(&cfg.Store)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	records := devstore.NewGormStore(gormDB)
	if cfg.Store.SeedPath != "" {
		data, err := os.ReadFile(cfg.Store.SeedPath)
		if err != nil {
			logger.Fatalf("failed to read seed file %s: %v", cfg.Store.SeedPath, err)
		}
		n, err := records.Seed(context.Background(), data)
		if err != nil {
			logger.Fatalf("failed to seed from %s: %v", cfg.Store.SeedPath, err)
		}
		logger.Printf("seeded %d records from %s", n, cfg.Store.SeedPath)
	}

	router := devstore.NewRouter(devstore.NewHandler(records, cfg.Store.Collections), &cfg.Store)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Store.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("store listening on port %d (collections %v)", cfg.Store.Port, cfg.Store.Collections)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}
	logger.Println("Store stopped")
}
