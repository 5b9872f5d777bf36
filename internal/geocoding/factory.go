package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of reverse geocoding provider.
type ProviderType string

const (
	// ProviderTypeNominatim represents OpenStreetMap Nominatim reverse geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeGoogle represents Google Maps reverse geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a reverse geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key (used by Google provider)
	RateLimit int           // Rate limit for requests per second (used by Google provider)
	Timeout   time.Duration // Timeout for a single geocoding request
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a reverse geocoding provider based on the provided
// configuration. It applies the Factory pattern to decouple provider
// instantiation from business logic.
//
// Supported provider types:
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "google": Google Maps Geocoding API (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newNominatimProvider creates a Nominatim reverse geocoding provider.
func newNominatimProvider(config ProviderConfig) (Provider, error) {
	// Nominatim is free and doesn't require an API key
	return NewNominatimProvider(config.Logger, config.Timeout), nil
}

// newGoogleProvider creates a Google Maps reverse geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	// Apply rate limiting if specified
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
