package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/kishore3106/image-location-finder/internal/geocoding"
	"github.com/kishore3106/image-location-finder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestNominatimProvider_ReverseGeocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	coords := models.Coordinates{Latitude: 40.4461, Longitude: -79.9767}

	t.Run("successful reverse geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org/reverse")
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "40.4461", req.URL.Query().Get("lat"))
				assert.Equal(t, "-79.9767", req.URL.Query().Get("lon"))
				assert.Equal(
					t,
					"ImageLocationFinder/1.0 (https://github.com/kishore3106/image-location-finder)",
					req.Header.Get("User-Agent"),
				)

				// Return mock response
				responseBody := `{"display_name":"Pittsburgh, Allegheny County, Pennsylvania, United States"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(ctx, coords)

		require.NoError(t, err)
		assert.Equal(t, "Pittsburgh, Allegheny County, Pennsylvania, United States", address)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Internal Server Error"}`
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, address)
		assert.Contains(t, err.Error(), "nominatim API returned status 500")
	})

	t.Run("response without display name", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Unable to geocode"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, address)
		assert.ErrorIs(t, err, geocoding.ErrNominatimNoAddress)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `invalid json`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, address)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(ctx, coords)

		require.Error(t, err)
		assert.Empty(t, address)
		assert.Contains(t, err.Error(), "failed to execute reverse geocoding request")
	})

	t.Run("context cancellation", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(newCtx, coords)

		require.Error(t, err)
		assert.Empty(t, address)
	})
}
