// Package exif reads image metadata and decodes embedded GPS coordinates.
//
// The reader is the only place that touches the image codec; everything
// downstream works on the generic tag mapping it produces. Malformed or
// missing metadata is a normal, expected input and never surfaces as an error.
package exif

import (
	"log/slog"
	"os"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// GPSInfoKey is the mapping key under which GPS sub-tags are nested.
const GPSInfoKey = "GPSInfo"

// Rational is a raw EXIF rational tag component.
type Rational struct {
	Num int64
	Den int64
}

// Reader extracts EXIF tag tables from image files.
type Reader struct {
	log *slog.Logger
}

// NewReader creates a metadata reader.
func NewReader(log *slog.Logger) *Reader {
	return &Reader{log: log}
}

// Read opens the image at path and returns its resolved EXIF tag table.
// GPS sub-tags are nested under the GPSInfo key. Any failure, such as an
// unreadable file, an unsupported format, or absent metadata, yields an
// empty mapping.
func (r *Reader) Read(path string) map[string]any {
	tags := make(map[string]any)

	file, err := os.Open(path)
	if err != nil {
		r.log.Debug("failed to open image", "path", path, "error", err)
		return tags
	}
	defer file.Close()

	meta, err := goexif.Decode(file)
	if err != nil || meta == nil {
		r.log.Debug("no EXIF metadata in image", "path", path, "error", err)
		return tags
	}

	gps := make(map[string]any)
	collector := &tagCollector{tags: tags, gps: gps}
	if err = meta.Walk(collector); err != nil {
		r.log.Debug("failed to walk EXIF tags", "path", path, "error", err)
		return make(map[string]any)
	}

	if len(gps) > 0 {
		tags[GPSInfoKey] = gps
	}

	return tags
}

// tagCollector accumulates walked EXIF fields, routing GPS-prefixed fields
// into the nested GPS sub-table.
type tagCollector struct {
	tags map[string]any
	gps  map[string]any
}

func (c *tagCollector) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	key := string(name)
	if strings.HasPrefix(key, "GPS") {
		c.gps[key] = tagValue(tag)
	} else {
		c.tags[key] = tagValue(tag)
	}
	return nil
}

// tagValue converts a raw TIFF tag into a plain Go value: rationals become
// Rational pairs, numerics become ints or floats, text becomes a string, and
// multi-component tags become a slice of components. Components that cannot
// be converted are represented as nil so the coordinate decoder can reject
// them.
func tagValue(tag *tiff.Tag) any {
	count := int(tag.Count)

	switch tag.Format() {
	case tiff.RatVal:
		vals := make([]any, count)
		for i := 0; i < count; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				vals[i] = nil
				continue
			}
			vals[i] = Rational{Num: num, Den: den}
		}
		return scalarOrSlice(vals)
	case tiff.IntVal:
		vals := make([]any, count)
		for i := 0; i < count; i++ {
			v, err := tag.Int(i)
			if err != nil {
				vals[i] = nil
				continue
			}
			vals[i] = v
		}
		return scalarOrSlice(vals)
	case tiff.FloatVal:
		vals := make([]any, count)
		for i := 0; i < count; i++ {
			v, err := tag.Float(i)
			if err != nil {
				vals[i] = nil
				continue
			}
			vals[i] = v
		}
		return scalarOrSlice(vals)
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil
		}
		return s
	default:
		return tag.String()
	}
}

func scalarOrSlice(vals []any) any {
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}
