package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into dst. On failure it writes
// the error response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. On failure it writes a 422 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, fmt.Sprintf("id %q is not an integer", raw))
		return 0, false
	}
	return id, true
}

// pagination reads ?page= and ?limit=. Absent values fall back to the
// defaults in domain.NewPageRequest; non-numeric values are rejected.
func pagination(w http.ResponseWriter, r *http.Request) (domain.PageRequest, bool) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return domain.PageRequest{}, false
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
		return domain.PageRequest{}, false
	}
	return domain.NewPageRequest(page, limit), true
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// paginate slices one page out of items and wraps it in the list envelope.
func paginate[T, U any](items []T, p domain.PageRequest, f func(T) U) Page[U] {
	total := len(items)
	start, end := p.Bounds(total)
	return Page[U]{
		Data:       mapSlice(items[start:end], f),
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	}
}
