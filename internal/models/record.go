package models

import (
	"encoding/json"
	"fmt"
)

// Status describes the outcome of processing a single image.
type Status string

const (
	// StatusLocated marks a record whose image carried decodable GPS coordinates.
	StatusLocated Status = "ok"
	// StatusNoGPS marks a record whose image had no usable GPS metadata.
	StatusNoGPS Status = "no_gps"
)

// Record is one history entry describing a processed image. A located record
// carries coordinates and a resolved address; an unlocated record carries a
// fixed explanatory reason instead. Name and Path are always set. Path points
// at the original file, which is never copied, so the entry goes stale if the
// file is moved.
type Record struct {
	Status  Status  `json:"status"`
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Reason  string  `json:"reason"`
}

// NewLocated builds a record for an image with decoded coordinates.
func NewLocated(name, path string, coords Coordinates, address string) Record {
	return Record{
		Status:  StatusLocated,
		Name:    name,
		Path:    path,
		Lat:     coords.Latitude,
		Lon:     coords.Longitude,
		Address: address,
	}
}

// NewUnlocated builds a record for an image without usable GPS metadata.
func NewUnlocated(name, path, reason string) Record {
	return Record{
		Status: StatusNoGPS,
		Name:   name,
		Path:   path,
		Reason: reason,
	}
}

// Located reports whether the record carries coordinates.
func (r Record) Located() bool {
	return r.Status == StatusLocated
}

// Coordinates returns the record's coordinates. Only meaningful for located records.
func (r Record) Coordinates() Coordinates {
	return Coordinates{Latitude: r.Lat, Longitude: r.Lon}
}

// MapURL returns a Google Maps link pointing at the record's coordinates.
func (r Record) MapURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", r.Lat, r.Lon)
}

// MarshalJSON emits only the fields that belong to the record's variant:
// located records carry lat/lon/address, unlocated records carry reason.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Status == StatusLocated {
		return json.Marshal(struct {
			Status  Status  `json:"status"`
			Name    string  `json:"name"`
			Path    string  `json:"path"`
			Lat     float64 `json:"lat"`
			Lon     float64 `json:"lon"`
			Address string  `json:"address"`
		}{r.Status, r.Name, r.Path, r.Lat, r.Lon, r.Address})
	}

	return json.Marshal(struct {
		Status Status `json:"status"`
		Name   string `json:"name"`
		Path   string `json:"path"`
		Reason string `json:"reason"`
	}{r.Status, r.Name, r.Path, r.Reason})
}
