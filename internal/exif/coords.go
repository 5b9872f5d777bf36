package exif

import (
	"github.com/kishore3106/image-location-finder/internal/models"
)

// GPS tag names used by the coordinate decoder.
const (
	tagLatitude     = "GPSLatitude"
	tagLatitudeRef  = "GPSLatitudeRef"
	tagLongitude    = "GPSLongitude"
	tagLongitudeRef = "GPSLongitudeRef"
)

const (
	minutesPerDegree = 60.0
	secondsPerDegree = 3600.0
)

// DecodeCoordinates extracts signed decimal coordinates from a GPS tag
// mapping, as produced by Reader under the GPSInfo key. It returns false if
// either coordinate triple is missing or malformed; malformed metadata never
// becomes an error.
//
// Hemisphere refs follow the source policy: a present ref other than "N"/"E"
// negates the value, an absent or empty ref leaves the sign unchanged.
func DecodeCoordinates(gps map[string]any) (models.Coordinates, bool) {
	if gps == nil {
		return models.Coordinates{}, false
	}

	lat, ok := tripleToDegrees(gps[tagLatitude])
	if !ok {
		return models.Coordinates{}, false
	}
	lon, ok := tripleToDegrees(gps[tagLongitude])
	if !ok {
		return models.Coordinates{}, false
	}

	if ref, refOK := gps[tagLatitudeRef].(string); refOK && ref != "" && ref != "N" {
		lat = -lat
	}
	if ref, refOK := gps[tagLongitudeRef].(string); refOK && ref != "" && ref != "E" {
		lon = -lon
	}

	const maxLat, maxLon = 90.0, 180.0
	if lat < -maxLat || lat > maxLat || lon < -maxLon || lon > maxLon {
		return models.Coordinates{}, false
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, true
}

// tripleToDegrees converts a (degrees, minutes, seconds) triple to a decimal
// value. Any unconvertible component aborts the whole coordinate.
func tripleToDegrees(value any) (float64, bool) {
	const tripleLen = 3

	triple, ok := value.([]any)
	if !ok || len(triple) < tripleLen {
		return 0, false
	}

	degrees, ok := toFloat(triple[0])
	if !ok {
		return 0, false
	}
	minutes, ok := toFloat(triple[1])
	if !ok {
		return 0, false
	}
	seconds, ok := toFloat(triple[2])
	if !ok {
		return 0, false
	}

	return degrees + minutes/minutesPerDegree + seconds/secondsPerDegree, true
}

// toFloat converts a single tag component: ratio pairs are divided, plain
// numerics are used as-is, everything else fails the conversion.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case Rational:
		if v.Den == 0 {
			return 0, false
		}
		return float64(v.Num) / float64(v.Den), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	default:
		return 0, false
	}
}
