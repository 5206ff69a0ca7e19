package client

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many requests")
)

// APIError is a failure envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []common.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(msgs, "; ") + ")"
}

// Is lets callers match server failures against the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == common.ErrValidation && len(e.Fields) > 0
	case http.StatusConflict:
		return target == common.ErrDuplicateEmail
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return false
}
