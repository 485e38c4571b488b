package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/skola/internal/metrics"
	"github.com/shrimpsizemoose/skola/internal/store"
)

// ErrInvalidRecord marks input that was rejected before it reached the database.
var ErrInvalidRecord = errors.New("invalid record")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

// serveFind answers with the record, or null and 404 when there is none.
func serveFind[T any](w http.ResponseWriter, r *http.Request, find func(context.Context, int64) (*T, error)) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, nil)
		return
	}

	record, err := find(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	if err != nil {
		logger.Error.Printf("Find %s: %v", r.URL.Path, err)
		http.Error(w, "Failed to fetch record", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func serveList[T any](w http.ResponseWriter, r *http.Request, list func(context.Context, string) ([]T, error)) {
	records, err := list(r.Context(), r.URL.Query().Get("SearchKey"))
	if err != nil {
		logger.Error.Printf("List %s: %v", r.URL.Path, err)
		http.Error(w, "Failed to fetch records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// serveAdd keeps the historical contract of a bare integer body with 0 meaning failure;
// the status code is what tells a failure apart from a real id.
func serveAdd[T any](w http.ResponseWriter, r *http.Request, add func(context.Context, *T) (int64, error)) {
	var record T
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.Debug.Printf("Invalid request body for %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusBadRequest, 0)
		return
	}

	id, err := add(r.Context(), &record)
	if errors.Is(err, ErrInvalidRecord) {
		logger.Debug.Printf("Rejected %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusBadRequest, 0)
		return
	}
	if err != nil {
		logger.Error.Printf("Add %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, 0)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

func serveDelete(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) (int64, error)) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, 0)
		return
	}

	affected, err := del(r.Context(), id)
	if err != nil {
		logger.Error.Printf("Delete %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, 0)
		return
	}

	writeJSON(w, http.StatusOK, affected)
}

// track counts a store call result for the entity/operation pair.
func track(entity, operation string, err error) {
	if err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, ErrInvalidRecord) {
		metrics.StoreErrorsTotal.WithLabelValues(entity, operation).Inc()
		return
	}
	if err == nil && (operation == "add" || operation == "delete") {
		metrics.RecordMutationsTotal.WithLabelValues(entity, operation).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument records request duration per route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}
