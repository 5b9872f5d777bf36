package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kishore3106/image-location-finder/internal/exif"
	"github.com/kishore3106/image-location-finder/internal/geocoding"
	"github.com/kishore3106/image-location-finder/internal/metrics"
	"github.com/kishore3106/image-location-finder/internal/models"
)

// NoGPSReason is the fixed explanatory text attached to records of images
// without usable GPS metadata.
const NoGPSReason = "No GPS data found because:\n" +
	"1) The sender stripped location data before sending, OR\n" +
	"2) The camera’s location setting was OFF when the photo was taken."

// History is the subset of the history store used by the locator.
type History interface {
	Append(record models.Record) error
	Remove(record models.Record) error
	Records() []models.Record
	Len() int
}

// TagReader is the subset of the metadata reader used by the locator.
type TagReader interface {
	Read(path string) map[string]any
}

// Locator runs the processing pipeline for a single image: metadata read,
// coordinate decode, reverse geocode, history append. It owns no UI concerns;
// the presentation layer calls it on user action.
type Locator struct {
	log          *slog.Logger       // Logger for logging service activities
	reader       TagReader          // Metadata reader for extracting EXIF tags
	provider     geocoding.Provider // Reverse geocoding provider for external services
	providerName string             // Name of the provider for metrics labeling
	store        History            // History store owning the persisted records
	metrics      *metrics.Metrics   // Metrics for tracking service performance
}

// NewLocator creates a new instance of Locator. It takes a logger, a metadata
// reader, a reverse geocoding provider, the provider name for metrics, the
// history store, and metrics for monitoring.
func NewLocator(
	log *slog.Logger,
	reader TagReader,
	provider geocoding.Provider,
	providerName string,
	store History,
	metrics *metrics.Metrics,
) *Locator {
	locator := &Locator{
		log:          log,
		reader:       reader,
		provider:     provider,
		providerName: providerName,
		store:        store,
		metrics:      metrics,
	}
	locator.metrics.HistoryEntries.Set(float64(store.Len()))

	return locator
}

// ProcessImage runs the full pipeline for the image at path and appends the
// resulting record to the history. Missing or malformed metadata and geocoding
// failures degrade to an unlocated record or the fallback address; the only
// surfaced error is a history persistence failure.
func (l *Locator) ProcessImage(ctx context.Context, path string) (models.Record, error) {
	name := filepath.Base(path)

	tags := l.reader.Read(path)
	gps, _ := tags[exif.GPSInfoKey].(map[string]any)

	coords, ok := exif.DecodeCoordinates(gps)
	if !ok {
		l.log.InfoContext(ctx, "Image has no usable GPS metadata", "path", path)
		record := models.NewUnlocated(name, path, NoGPSReason)
		if err := l.store.Append(record); err != nil {
			return models.Record{}, err
		}
		l.metrics.ImagesProcessed.WithLabelValues("no_gps").Inc()
		l.metrics.HistoryEntries.Set(float64(l.store.Len()))

		return record, nil
	}

	address := l.lookupAddress(ctx, coords)

	record := models.NewLocated(name, path, coords, address)
	if err := l.store.Append(record); err != nil {
		return models.Record{}, err
	}
	l.metrics.ImagesProcessed.WithLabelValues("located").Inc()
	l.metrics.HistoryEntries.Set(float64(l.store.Len()))

	l.log.InfoContext(ctx, "Processed image",
		"path", path, "lat", coords.Latitude, "lon", coords.Longitude)

	return record, nil
}

// DeleteRecord removes the record from the history. A missing record is a
// local condition reported as history.ErrNotFound, not a fatal error.
func (l *Locator) DeleteRecord(record models.Record) error {
	if err := l.store.Remove(record); err != nil {
		return err
	}
	l.metrics.HistoryEntries.Set(float64(l.store.Len()))
	l.log.Info("Deleted record from history", "name", record.Name)

	return nil
}

// History returns the current record sequence in insertion order.
func (l *Locator) History() []models.Record {
	return l.store.Records()
}

// lookupAddress resolves coordinates through the provider, absorbing every
// failure into the fixed fallback string. No retries, no caching.
func (l *Locator) lookupAddress(ctx context.Context, coords models.Coordinates) string {
	startTime := time.Now()
	address, err := l.provider.ReverseGeocode(ctx, coords)
	duration := time.Since(startTime).Seconds()
	l.metrics.GeocodeSeconds.WithLabelValues(l.providerName).Observe(duration)

	if err != nil {
		l.log.WarnContext(ctx, "Failed to reverse geocode, using fallback address",
			"lat", coords.Latitude, "lon", coords.Longitude, "error", err)
		l.metrics.GeocodeErrors.Inc()

		return geocoding.FallbackAddress
	}

	return address
}
