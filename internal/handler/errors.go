package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Error codes returned in ErrorDetail.Code.
const (
	codeNotFound         = "not_found"
	codeValidation       = "validation_error"
	codeDuplicateID      = "duplicate_id"
	codeInvalidReference = "invalid_reference"
	codeDeletionBlocked  = "deletion_blocked"
	codeTooLarge         = "payload_too_large"
	codeUnavailable      = "unavailable"
	codeConflict         = "conflict"
	codeSyncFailed       = "sync_failed"
	codeInternal         = "internal_error"
)

// Reasons returned in ErrorDetail.Reason for a blocked deletion.
var blockedReasons = map[error]string{
	domain.ErrHasDependents: "has_dependents",
	domain.ErrPastSchedule:  "past_schedule",
	domain.ErrTooOld:        "too_old",
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// writeError writes an ErrorResponse with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody(code, message))
}

// writeServiceError maps a store error onto a status code and error body.
// what names the resource for not-found messages, e.g. "trip".
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, what+" not found")
	case errors.Is(err, domain.ErrDeletionBlocked):
		body := errorBody(codeDeletionBlocked, unwrapMessage(err, domain.ErrDeletionBlocked))
		if reason, ok := blockedReasons[domain.BlockedReason(err)]; ok {
			body.Error.Reason = &reason
		}
		writeJSON(w, http.StatusConflict, body)
	case errors.Is(err, domain.ErrDuplicateID):
		writeError(w, http.StatusConflict, codeDuplicateID, unwrapMessage(err, domain.ErrDuplicateID))
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidReference, unwrapMessage(err, domain.ErrInvalidReference))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage drops the "pkg.Type.Method: " call-site prefixes from a
// wrapped sentinel error, keeping the text from the sentinel onwards.
// e.g. "service.Store.AddTrip: invalid reference: destination 5 does not exist"
// → "invalid reference: destination 5 does not exist"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}
