package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the image location finder.
// It includes the environment, server addresses, reverse geocoding provider
// selection, and the history document path.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Listen: The listen address for the API server.
// - Port: The port for the monitoring server.
// - ProviderType: The type of reverse geocoding provider to use (nominatim, google).
// - APIKey: The API key for accessing external services (required for Google).
// - HistoryPath: The path of the persisted history document.
// - GeocodeTimeout: The timeout for a single reverse geocoding request.
// - ThumbnailSize: The longest side of generated thumbnails, in pixels.
// - CORSOrigin: The allowed origin for browser clients.
type Config struct {
	Env            string        // Env is the current environment: local, dev, prod.
	Listen         string        // Listen is the API server address.
	Port           int           // Port is the monitoring server port.
	ProviderType   string        // ProviderType specifies which reverse geocoding provider to use.
	APIKey         string        // The API key for accessing external services.
	HistoryPath    string        // HistoryPath is the persisted history document path.
	GeocodeTimeout time.Duration // The timeout for a single reverse geocoding request.
	ThumbnailSize  int           // The longest side of generated thumbnails, in pixels.
	CORSOrigin     string        // The allowed origin for browser clients.
}

// MustLoad loads the configuration from the environment and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(setDefaultEnv("ILF_GEOCODE_TIMEOUT", "15s"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("ILF_HEALTH_PORT", "8081"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	thumbSize, err := strconv.Atoi(setDefaultEnv("ILF_THUMB_SIZE", "96"))
	if err != nil {
		panic("failed to parse thumbnail size from configuration, must be an integer type")
	}

	return &Config{
		Env:            setDefaultEnv("ILF_ENV", "production"),
		Listen:         setDefaultEnv("ILF_LISTEN", ":8080"),
		Port:           healthPort,
		ProviderType:   setDefaultEnv("ILF_PROVIDER_TYPE", "nominatim"),
		APIKey:         os.Getenv("ILF_PROVIDER_KEY"),
		HistoryPath:    setDefaultEnv("ILF_HISTORY_FILE", "history.json"),
		GeocodeTimeout: timeout,
		ThumbnailSize:  thumbSize,
		CORSOrigin:     setDefaultEnv("ILF_CORS_ORIGIN", "*"),
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
