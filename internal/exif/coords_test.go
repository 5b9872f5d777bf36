package exif_test

import (
	"testing"

	"github.com/kishore3106/image-location-finder/internal/exif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gpsTags(lat, lon []any, latRef, lonRef string) map[string]any {
	tags := make(map[string]any)
	if lat != nil {
		tags["GPSLatitude"] = lat
	}
	if lon != nil {
		tags["GPSLongitude"] = lon
	}
	if latRef != "" {
		tags["GPSLatitudeRef"] = latRef
	}
	if lonRef != "" {
		tags["GPSLongitudeRef"] = lonRef
	}
	return tags
}

func rationalTriple(d, m, s int64) []any {
	return []any{
		exif.Rational{Num: d, Den: 1},
		exif.Rational{Num: m, Den: 1},
		exif.Rational{Num: s, Den: 1},
	}
}

func TestDecodeCoordinates(t *testing.T) {
	t.Run("northern and eastern hemisphere stays positive", func(t *testing.T) {
		tags := gpsTags(rationalTriple(40, 26, 46), rationalTriple(79, 58, 36), "N", "E")

		coords, ok := exif.DecodeCoordinates(tags)

		require.True(t, ok)
		assert.InDelta(t, 40.4461, coords.Latitude, 0.0001)
		assert.InDelta(t, 79.9767, coords.Longitude, 0.0001)
	})

	t.Run("southern and western hemisphere negates", func(t *testing.T) {
		tags := gpsTags(rationalTriple(40, 26, 46), rationalTriple(79, 58, 36), "S", "W")

		coords, ok := exif.DecodeCoordinates(tags)

		require.True(t, ok)
		assert.InDelta(t, -40.4461, coords.Latitude, 0.0001)
		assert.InDelta(t, -79.9767, coords.Longitude, 0.0001)
	})

	t.Run("absent refs leave sign unchanged", func(t *testing.T) {
		tags := gpsTags(rationalTriple(10, 30, 0), rationalTriple(20, 0, 0), "", "")

		coords, ok := exif.DecodeCoordinates(tags)

		require.True(t, ok)
		assert.InDelta(t, 10.5, coords.Latitude, 0.0001)
		assert.InDelta(t, 20.0, coords.Longitude, 0.0001)
	})

	t.Run("plain numeric components are used as-is", func(t *testing.T) {
		tags := gpsTags(
			[]any{40.0, 26.0, 46.0},
			[]any{79, 58, 36},
			"N", "W",
		)

		coords, ok := exif.DecodeCoordinates(tags)

		require.True(t, ok)
		assert.InDelta(t, 40.4461, coords.Latitude, 0.0001)
		assert.InDelta(t, -79.9767, coords.Longitude, 0.0001)
	})

	t.Run("missing longitude is absent", func(t *testing.T) {
		tags := gpsTags(rationalTriple(40, 26, 46), nil, "N", "")

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("missing latitude is absent", func(t *testing.T) {
		tags := gpsTags(nil, rationalTriple(79, 58, 36), "", "E")

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("nil mapping is absent", func(t *testing.T) {
		_, ok := exif.DecodeCoordinates(nil)

		assert.False(t, ok)
	})

	t.Run("malformed component aborts coordinate", func(t *testing.T) {
		tags := gpsTags(
			[]any{exif.Rational{Num: 40, Den: 1}, "not a number", exif.Rational{Num: 46, Den: 1}},
			rationalTriple(79, 58, 36),
			"N", "E",
		)

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("zero denominator aborts coordinate", func(t *testing.T) {
		tags := gpsTags(
			[]any{exif.Rational{Num: 40, Den: 0}, exif.Rational{Num: 26, Den: 1}, exif.Rational{Num: 46, Den: 1}},
			rationalTriple(79, 58, 36),
			"N", "E",
		)

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("short triple is absent", func(t *testing.T) {
		tags := gpsTags(
			[]any{exif.Rational{Num: 40, Den: 1}, exif.Rational{Num: 26, Den: 1}},
			rationalTriple(79, 58, 36),
			"N", "E",
		)

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("triple that is not a slice is absent", func(t *testing.T) {
		tags := map[string]any{
			"GPSLatitude":  "40,26,46",
			"GPSLongitude": rationalTriple(79, 58, 36),
		}

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("out of range latitude is rejected", func(t *testing.T) {
		tags := gpsTags(rationalTriple(91, 0, 0), rationalTriple(79, 58, 36), "N", "E")

		_, ok := exif.DecodeCoordinates(tags)

		assert.False(t, ok)
	})

	t.Run("fractional rationals divide", func(t *testing.T) {
		tags := gpsTags(
			[]any{
				exif.Rational{Num: 40, Den: 1},
				exif.Rational{Num: 53, Den: 2},
				exif.Rational{Num: 4615, Den: 100},
			},
			rationalTriple(79, 58, 36),
			"N", "E",
		)

		coords, ok := exif.DecodeCoordinates(tags)

		require.True(t, ok)
		assert.InDelta(t, 40.0+26.5/60.0+46.15/3600.0, coords.Latitude, 1e-9)
	})
}
