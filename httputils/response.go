package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/tomyedwab/conndesk/database"
	"github.com/tomyedwab/conndesk/middleware"
)

// StatusForError maps an error kind to the HTTP status the front-end sees.
func StatusForError(err error) int {
	switch {
	case database.IsValidationError(err):
		return http.StatusBadRequest
	case database.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIResponse writes resp as JSON, or err as a plain text body with a
// status derived from its kind.
func HandleAPIResponse(w http.ResponseWriter, r *http.Request, resp interface{}, err error) {
	if err != nil {
		HandleAPIError(w, r, err, StatusForError(err))
		return
	}
	json, err := json.Marshal(resp)
	if err != nil {
		HandleAPIError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(json)
}

// HandleAPIError writes err as a plain text body with the given status. The
// failure is logged through the request-scoped logger so it carries the
// request id.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, status int) {
	middleware.Logger(r.Context()).Error("Request failed",
		"remote", r.RemoteAddr,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	http.Error(w, err.Error(), status)
}
