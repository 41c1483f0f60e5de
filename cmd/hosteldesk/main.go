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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hostel-desk/config"
	"hostel-desk/internal/actions"
	"hostel-desk/internal/api"
	"hostel-desk/internal/form"
	"hostel-desk/internal/metrics"
	"hostel-desk/internal/notification"
	"hostel-desk/internal/resource"
	"hostel-desk/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "hostel-desk ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("could not read .env: %v", err)
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	client, err := resource.NewClient(&cfg.Backend, m)
	if err != nil {
		logger.Fatalf("failed to create backend client: %v", err)
	}
	hostel := resource.NewHostel(client, cfg.Backend.RoomsCollection, cfg.Backend.BookingsCollection)

	state := store.NewState(hostel, m)
	notes := notification.NewSurface(cfg.Notification.Duration)
	bookingForm := form.New(state, state, hostel, notes)
	dispatcher := actions.NewDispatcher(bookingForm, state, hostel, notes)
	handler := api.NewHandler(cfg.Server.Title, state, bookingForm, dispatcher, notes)

	// The desk serves even when the backend is down; the page retries the load.
	if err := handler.Load(context.Background()); err != nil {
		logger.Printf("initial load from %s failed: %v", cfg.Backend.BaseURL, err)
	} else {
		logger.Printf("loaded %d rooms from %s", len(state.Rooms()), cfg.Backend.BaseURL)
	}

	// Initialize router
	router := api.NewRouter(handler, &cfg.Server, registry)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
