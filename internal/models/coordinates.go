package models

// Coordinates represents a geographical point in signed decimal degrees.
// South latitudes and west longitudes are negative.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}
