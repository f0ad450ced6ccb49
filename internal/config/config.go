package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weatherapp/internal/session"
	"github.com/i474232898/weatherapp/internal/weather"
	"github.com/i474232898/weatherapp/internal/weather/providers"
)

const DefaultStateFile = "weatherapp.json"

type AppConfig struct {
	OpenWeatherAPIKey string `validate:"required"`
	OpenWeatherURL    string `validate:"required,url"`
	IconBaseURL       string `validate:"required,url"`

	// HTTPTimeout bounds every single provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	StateFile       string `validate:"required"`
	DefaultLocation string `validate:"required"`

	// AutosaveInterval of 0 disables periodic saving.
	AutosaveInterval time.Duration `validate:"gte=0"`

	Port string `validate:"required,numeric"`
}

var (
	validate   = validator.New()
	dotenvOnce sync.Once
)

// loadDotEnv reads .env into the environment at most once per process.
// Variables already set are not overridden.
func loadDotEnv() {
	dotenvOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("INFO: No .env file found or error loading it: %v", err)
		}
	})
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	loadDotEnv()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherURL:    getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherBaseURL),
		IconBaseURL:       getenvDefault("OPENWEATHER_ICON_URL", weather.DefaultIconBaseURL),
		StateFile:         getenvDefault("STATE_FILE", DefaultStateFile),
		DefaultLocation:   getenvDefault("DEFAULT_LOCATION", session.DefaultFallbackLocation),
		Port:              strconv.Itoa(getenvInt("PORT", 8080)),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	autosave, err := time.ParseDuration(getenvDefault("AUTOSAVE_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTOSAVE_INTERVAL: %w", err)
	}
	cfg.AutosaveInterval = autosave

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// StatePath returns STATE_FILE, or the default file in the working directory.
// Offline commands call it without loading the rest of the configuration.
func StatePath() string {
	loadDotEnv()
	return getenvDefault("STATE_FILE", DefaultStateFile)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
