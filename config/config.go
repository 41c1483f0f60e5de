package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Backend      BackendConfig      `yaml:"backend"`
	Notification NotificationConfig `yaml:"notification"`
	Store        StoreConfig        `yaml:"store"`
}

// ServerConfig holds the desk's HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	Title           string  `yaml:"title"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// BackendConfig describes the REST resource store the desk talks to.
type BackendConfig struct {
	BaseURL            string            `yaml:"base_url"`
	Headers            map[string]string `yaml:"headers"`
	HTTPProxy          string            `yaml:"http_proxy"`
	RoomsCollection    string            `yaml:"rooms_collection"`
	BookingsCollection string            `yaml:"bookings_collection"`
}

// NotificationConfig controls the transient message slot.
type NotificationConfig struct {
	DurationMillis int           `yaml:"duration_ms"`
	Duration       time.Duration `yaml:"-"` // Derived from DurationMillis
}

// StoreConfig holds the development resource store configuration.
type StoreConfig struct {
	Port                   int      `yaml:"port"`
	DSN                    string   `yaml:"dsn"`
	SeedPath               string   `yaml:"seed_path"`
	Collections            []string `yaml:"collections"`
	CORSOrigins            []string `yaml:"cors_origins"`
	LogSQL                 bool     `yaml:"log_sql"`
	ReadCacheSeconds       int      `yaml:"read_cache_seconds"` // 0 disables the GET response cache
	MaxOpenConns           int      `yaml:"max_open_conns"`
	MaxIdleConns           int      `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int      `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path and fills in defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields and applies environment overrides.
func (cfg *Config) ApplyDefaults() {
	if v := os.Getenv("HOSTEL_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("HOSTEL_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = "Hostel Room Booking"
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}

	if cfg.Backend.BaseURL == "" {
		log.Printf("backend.base_url is not set; defaulting to http://localhost:3000")
		cfg.Backend.BaseURL = "http://localhost:3000"
	}
	if cfg.Backend.RoomsCollection == "" {
		cfg.Backend.RoomsCollection = "rooms"
	}
	if cfg.Backend.BookingsCollection == "" {
		cfg.Backend.BookingsCollection = "bookings"
	}

	if cfg.Notification.DurationMillis <= 0 {
		cfg.Notification.DurationMillis = 2000
	}
	cfg.Notification.Duration = time.Duration(cfg.Notification.DurationMillis) * time.Millisecond

	if cfg.Store.Port <= 0 {
		cfg.Store.Port = 3000
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "file:hostel.db"
	}
	if len(cfg.Store.Collections) == 0 {
		cfg.Store.Collections = []string{cfg.Backend.RoomsCollection, cfg.Backend.BookingsCollection}
	}
	if len(cfg.Store.CORSOrigins) == 0 {
		cfg.Store.CORSOrigins = []string{"*"}
	}
}
