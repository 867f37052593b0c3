// Package handler: export.go implements GET /export.
// Returns one summary row per trip.
// Supports ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// GetExport handles GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "format must be json or csv")
		return
	}

	rows, err := s.export.TripSummaries(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "export")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, summaryToResponse))
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.TripSummary) {
	var buf bytes.Buffer
	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	domain.WriteSummariesCSV(&buf, rows)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
