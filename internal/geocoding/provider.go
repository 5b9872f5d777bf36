package geocoding

import (
	"context"

	"github.com/kishore3106/image-location-finder/internal/models"
)

// FallbackAddress is the fixed string shown to the user whenever an address
// cannot be resolved, whatever the cause.
const FallbackAddress = "Address not found"

// Provider is an interface that defines a method for reverse geocoding.
// The ReverseGeocode method takes a context and a pair of coordinates as
// input, and returns the corresponding human-readable address and an error
// if any occurs.
type Provider interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error)
}
