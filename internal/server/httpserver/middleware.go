package httpserver

import (
	"mime"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	chimid "github.com/go-chi/chi/v5/middleware"
)

// recoverMiddleware turns a handler panic into an enveloped 500.
func recoverMiddleware(log logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				log.Error(r.Context(), "panic recovered",
					"request_id", chimid.GetReqID(r.Context()),
					"panic", rvr,
					"stack", string(debug.Stack()),
				)
				if r.Header.Get("Connection") != "Upgrade" {
					writeFailure(w, http.StatusInternalServerError, msgInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requireJSON rejects request bodies that are not application/json.
// Bodiless requests pass.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || strings.ToLower(mt) != "application/json" {
			writeFailure(w, http.StatusUnsupportedMediaType, msgUnsupportedMedia)
			return
		}
		next.ServeHTTP(w, r)
	})
}
