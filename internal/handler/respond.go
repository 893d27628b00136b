package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nanostack/backend/internal/logging"
	"github.com/nanostack/backend/internal/repository"
	"github.com/nanostack/backend/pkg/auth"
)

// writeJSON sets the JSON content type, writes status and encodes v.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeStoreError maps ErrNotFound to 404 and logs everything else as a 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, code string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	logging.FromContext(r.Context()).Error(code, "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, code)
}

// requireAdmin rejects requests without a session (401) or from a non-superuser (403).
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
