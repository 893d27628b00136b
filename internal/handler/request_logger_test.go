package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/nanostack/backend/internal/logging"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	id := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid request id, got %q", id)
	}
	if seen != id {
		t.Errorf("context id %q does not match header id %q", seen, id)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status must pass through, got %d", rec.Code)
	}
}

func TestRequestLogger_ReusesIncomingID(t *testing.T) {
	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", incoming)

	rec := httptest.NewRecorder()
	RequestLogger(http.NotFoundHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != incoming {
		t.Errorf("expected %q, got %q", incoming, got)
	}
}

func TestRequestLogger_ReplacesMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid\nInjected: yes")

	rec := httptest.NewRecorder()
	RequestLogger(http.NotFoundHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got == req.Header.Get("X-Request-ID") {
		t.Error("malformed incoming id must be replaced")
	}
}
