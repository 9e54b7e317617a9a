package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where tripnavi stores its own data
	DSN string
	// Driver is the database driver (sqlite only)
	Driver string
	// Version is the current version of server
	Version string
	// InstanceURL is the url of your tripnavi instance.
	InstanceURL string

	// Guide provider endpoints. All are optional overrides; the defaults
	// point at the public instances.
	DirectionsBaseURL string // TRIPNAVI_DIRECTIONS_BASE_URL (default: https://router.project-osrm.org)
	PlacesBaseURL     string // TRIPNAVI_PLACES_BASE_URL (default: https://overpass-api.de/api/interpreter)
	PhotosBaseURL     string // TRIPNAVI_PHOTOS_BASE_URL (default: https://en.wikipedia.org/w/api.php)
	WeatherBaseURL    string // TRIPNAVI_WEATHER_BASE_URL (default: https://api.open-meteo.com)
	CurrencyBaseURL   string // TRIPNAVI_CURRENCY_BASE_URL (default: https://api.frankfurter.dev)

	// Cache TTLs per provider. Zero means the built-in default.
	DirectionsTTL time.Duration // default 24h
	PlacesTTL     time.Duration // default 24h
	PhotosTTL     time.Duration // default 24h
	WeatherTTL    time.Duration // default 4h
	CurrencyTTL   time.Duration // default 1h

	// AI travel tips configuration. Tips are disabled unless an API key is set.
	AIEnabled bool   // TRIPNAVI_AI_ENABLED
	AIBaseURL string // TRIPNAVI_AI_BASE_URL (default: https://api.openai.com/v1)
	AIAPIKey  string // TRIPNAVI_AI_API_KEY
	AIModel   string // TRIPNAVI_AI_MODEL (default: gpt-4o-mini)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI tips are enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", slog.String("key", key), slog.String("value", raw))
		return defaultValue
	}
	return d
}

// FromEnv loads configuration from TRIPNAVI_* environment variables.
func (p *Profile) FromEnv() {
	p.DirectionsBaseURL = getEnvOrDefault("TRIPNAVI_DIRECTIONS_BASE_URL", "https://router.project-osrm.org")
	p.PlacesBaseURL = getEnvOrDefault("TRIPNAVI_PLACES_BASE_URL", "https://overpass-api.de/api/interpreter")
	p.PhotosBaseURL = getEnvOrDefault("TRIPNAVI_PHOTOS_BASE_URL", "https://en.wikipedia.org/w/api.php")
	p.WeatherBaseURL = getEnvOrDefault("TRIPNAVI_WEATHER_BASE_URL", "https://api.open-meteo.com")
	p.CurrencyBaseURL = getEnvOrDefault("TRIPNAVI_CURRENCY_BASE_URL", "https://api.frankfurter.dev")

	p.DirectionsTTL = getDurationEnv("TRIPNAVI_DIRECTIONS_TTL", 24*time.Hour)
	p.PlacesTTL = getDurationEnv("TRIPNAVI_PLACES_TTL", 24*time.Hour)
	p.PhotosTTL = getDurationEnv("TRIPNAVI_PHOTOS_TTL", 24*time.Hour)
	p.WeatherTTL = getDurationEnv("TRIPNAVI_WEATHER_TTL", 4*time.Hour)
	p.CurrencyTTL = getDurationEnv("TRIPNAVI_CURRENCY_TTL", time.Hour)

	p.AIEnabled = os.Getenv("TRIPNAVI_AI_ENABLED") == "true"
	p.AIBaseURL = getEnvOrDefault("TRIPNAVI_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIAPIKey = os.Getenv("TRIPNAVI_AI_API_KEY")
	p.AIModel = getEnvOrDefault("TRIPNAVI_AI_MODEL", "gpt-4o-mini")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/tripnavi"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("tripnavi_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
