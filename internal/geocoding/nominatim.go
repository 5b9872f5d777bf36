package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kishore3106/image-location-finder/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim reverse geocoding API. This is a free service with usage limits
// (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim reverse API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter honoring the fair-use policy
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimReverseResponse represents the JSON response from the Nominatim
// reverse endpoint. Lookups without a result return an object carrying only
// an "error" field.
type nominatimReverseResponse struct {
	DisplayName string `json:"display_name"` // Full human-readable address
	Error       string `json:"error"`        // Set when no address exists at the point
}

// ErrNominatimNoAddress is returned when the API response carries no display name.
var ErrNominatimNoAddress = errors.New("nominatim API returned no address")

const nominatimReverseURL = "https://nominatim.openstreetmap.org/reverse"

// NewNominatimProvider creates a new Nominatim reverse geocoding provider.
// Uses the public Nominatim API endpoint with the given request timeout.
func NewNominatimProvider(log *slog.Logger, timeout time.Duration) *NominatimProvider {
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: nominatimReverseURL,
		log:     log,
		// Public Nominatim allows at most 1 request per second:
		// https://operations.osmfoundation.org/policies/nominatim/
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		// User-Agent MUST identify the application per Nominatim usage policy.
		userAgent: "ImageLocationFinder/1.0 (https://github.com/kishore3106/image-location-finder)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client and no rate limiting. Useful for testing with mocked clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   nominatimReverseURL,
		log:       log,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		userAgent: "ImageLocationFinder/1.0 (https://github.com/kishore3106/image-location-finder)",
	}
}

// ReverseGeocode converts coordinates to a human-readable address using the
// Nominatim reverse API. Each call is a single independent request with no
// retries and no caching.
func (np *NominatimProvider) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim",
		"lat", coords.Latitude, "lon", coords.Longitude)

	if err := np.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var result nominatimReverseResponse
	if err = json.Unmarshal(body, &result); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if result.DisplayName == "" {
		if result.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrNominatimNoAddress, result.Error)
		}
		return "", ErrNominatimNoAddress
	}

	np.log.DebugContext(ctx, "Nominatim resolved address", "address", result.DisplayName)

	return result.DisplayName, nil
}
