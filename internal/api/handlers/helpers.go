package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hub-route-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain failure kinds to HTTP statuses.
// Unclassified errors stay opaque to callers.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)

	switch {
	case errors.Is(err, domain.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrExternal):
		writeError(w, r, http.StatusBadGateway, "navigation service unavailable")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// Caller identity is injected by the gateway.
func actor(r *http.Request) string { return r.Header.Get("X-User-Name") }
func role(r *http.Request) string  { return r.Header.Get("X-User-Role") }
