package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/aristide1997/version-vault/internal/service"
)

// Every response carries the same envelope: a fixed content type, a
// permissive CORS header, and either a JSON object (success) or a short
// plain-text message (failure). Error bodies never include internals.

func writeHeaders(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	writeHeaders(w, status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	writeHeaders(w, status)
	if _, err := w.Write([]byte(msg)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write error response")
	}
}

// Err maps a service error to its HTTP status. Auth failures are collapsed
// to a bare "Unauthorized" so the caller cannot distinguish sub-reasons;
// unexpected errors get a generic 500 body.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var httpError *service.HTTPError
	if !errors.As(err, &httpError) {
		Error(w, r, "An internal server error occurred", http.StatusInternalServerError)
		return
	}

	switch httpError.Kind {
	case service.KindAuth:
		Error(w, r, "Unauthorized", httpError.StatusCode)
	case service.KindStorage, service.KindInternal:
		Error(w, r, "An internal server error occurred", httpError.StatusCode)
	default:
		Error(w, r, httpError.Error(), httpError.StatusCode)
	}
}
