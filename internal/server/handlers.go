package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/kishore3106/image-location-finder/internal/history"
	"github.com/kishore3106/image-location-finder/internal/models"
)

// uploadRequest is the body of a POST /api/images call: the filesystem path
// supplied by the presentation layer on an upload action.
type uploadRequest struct {
	Path string `json:"path"`
}

// uploadResponse carries the resulting record plus a short status message
// for the UI.
type uploadResponse struct {
	Message string        `json:"message"`
	Record  models.Record `json:"record"`
}

// uploadImage processes the image at the supplied path and appends the
// resulting record to the history.
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON with a 'path' field")
		return
	}
	if req.Path == "" {
		writeAPIError(w, http.StatusBadRequest, "missing_path", "no file selected")
		return
	}

	record, err := s.locator.ProcessImage(r.Context(), req.Path)
	if err != nil {
		s.log.Error("failed to process image", "path", req.Path, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "persist_failed", "failed to save history")
		return
	}

	message := fmt.Sprintf("Saved: %s", record.Name)
	if !record.Located() {
		message = fmt.Sprintf("Saved (no GPS): %s", record.Name)
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Message: message, Record: record})
}

// listHistory returns the full record sequence in insertion order.
func (s *Server) listHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.locator.History())
}

// deleteRecord removes the structurally-equal record supplied in the request
// body. The UI is expected to have confirmed the delete with the user.
func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", "request body must be a history record")
		return
	}

	if err := s.locator.DeleteRecord(record); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "not_found", "record not found in history")
			return
		}
		s.log.Error("failed to delete record", "name", record.Name, "error", err)
		writeAPIError(w, http.StatusInternalServerError, "persist_failed", "failed to save history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Deleted: %s", record.Name),
	})
}

// thumbnail renders a JPEG thumbnail of the record's source image. An
// unreadable source degrades to a neutral placeholder so history rows always
// render.
func (s *Server) thumbnail(w http.ResponseWriter, r *http.Request) {
	record, ok := s.recordByIndex(w, r)
	if !ok {
		return
	}

	img, err := imaging.Open(record.Path, imaging.AutoOrientation(true))
	if err != nil {
		s.log.Debug("failed to open image for thumbnail, using placeholder",
			"path", record.Path, "error", err)
		img = imaging.New(s.thumbSize, s.thumbSize, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	}
	thumb := imaging.Fit(img, s.thumbSize, s.thumbSize, imaging.Lanczos)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := imaging.Encode(w, thumb, imaging.JPEG); err != nil {
		s.log.Error("failed to encode thumbnail", "path", record.Path, "error", err)
	}
}

// openInMaps redirects to a Google Maps view of the record's coordinates.
func (s *Server) openInMaps(w http.ResponseWriter, r *http.Request) {
	record, ok := s.recordByIndex(w, r)
	if !ok {
		return
	}
	if !record.Located() {
		writeAPIError(w, http.StatusNotFound, "no_coordinates", "record has no coordinates")
		return
	}

	http.Redirect(w, r, record.MapURL(), http.StatusFound)
}

// recordByIndex resolves the {index} URL parameter against the current
// history, writing the error response itself on failure.
func (s *Server) recordByIndex(w http.ResponseWriter, r *http.Request) (models.Record, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_index", "index must be a non-negative integer")
		return models.Record{}, false
	}

	records := s.locator.History()
	if index >= len(records) {
		writeAPIError(w, http.StatusNotFound, "not_found", "no history record at index")
		return models.Record{}, false
	}

	return records[index], true
}

// apiError is the standardized error response body.
type apiError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeAPIError(w http.ResponseWriter, httpStatus int, code, detail string) {
	writeJSON(w, httpStatus, map[string]apiError{"error": {Code: code, Detail: detail}})
}

func writeJSON(w http.ResponseWriter, httpStatus int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(body)
}
