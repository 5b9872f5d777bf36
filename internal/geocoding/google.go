package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kishore3106/image-location-finder/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps reverse geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient defines the Google Maps API surface used by the provider.
// This allows for easy mocking in tests.
type GoogleAPIClient interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// ReverseGeocode takes a context and coordinates as input, and returns the
// formatted address of the provided point using the Google Maps Geocoding API.
// If the point cannot be resolved or if the response is empty, it returns an
// appropriate error.
func (gp *GoogleProvider) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps",
		"lat", coords.Latitude, "lon", coords.Longitude)

	req := maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: coords.Latitude, Lng: coords.Longitude},
	}
	results, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode coordinates: %w", err)
	}

	if len(results) == 0 {
		return "", ErrEmptyResponse
	}

	return results[0].FormattedAddress, nil
}
