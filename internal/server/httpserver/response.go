package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	chimid "github.com/go-chi/chi/v5/middleware"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgValidationFailed   = "Validation failed"
	msgDuplicateEmail     = "User with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUnauthenticated    = "Authentication required"
	msgInvalidToken       = "Invalid or expired token"
	msgNotFound           = "Resource not found"
	msgMethodNotAllowed   = "Method not allowed"
	msgRateLimited        = "Too many requests, please try again later"
	msgUnsupportedMedia   = "Content-Type must be application/json"
	msgInternal           = "Internal server error"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  []common.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{Success: false, Message: message})
}

// writeError maps a service error onto a status and envelope. Unexpected
// errors are logged and answered with fallback; their text never reaches
// the client.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error, fallback string) {
	var verr *common.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, envelope{Message: msgValidationFailed, Errors: verr.Fields})
	case errors.Is(err, common.ErrDuplicateEmail):
		writeFailure(w, http.StatusConflict, msgDuplicateEmail)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeFailure(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, common.ErrorUnauthorized):
		writeFailure(w, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, common.ErrorNotFound):
		writeFailure(w, http.StatusNotFound, msgNotFound)
	default:
		log.Error(r.Context(), fallback, "request_id", chimid.GetReqID(r.Context()), "error", err)
		writeFailure(w, http.StatusInternalServerError, fallback)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusNotFound, msgNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
