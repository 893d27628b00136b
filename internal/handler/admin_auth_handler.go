package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nanostack/backend/internal/logging"
	"github.com/nanostack/backend/internal/service"
	"github.com/nanostack/backend/pkg/auth"
)

// AdminAuthHandler handles sign-in and sign-out for the back office.
type AdminAuthHandler struct {
	authService   service.AdminAuthService
	sessionSecret []byte
	secureCookie  bool
	now           func() time.Time
}

// NewAdminAuthHandler creates an AdminAuthHandler. secureCookie should be true
// when the panel is served over HTTPS.
func NewAdminAuthHandler(authService service.AdminAuthService, sessionSecret []byte, secureCookie bool) *AdminAuthHandler {
	return &AdminAuthHandler{
		authService:   authService,
		sessionSecret: sessionSecret,
		secureCookie:  secureCookie,
		now:           time.Now,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login handles POST /admin/api/login.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	u, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	case errors.Is(err, service.ErrNotSuperuser):
		writeError(w, http.StatusForbidden, "forbidden")
		return
	case err != nil:
		logging.FromContext(r.Context()).Error("admin login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}

	exp := h.now().Add(auth.SessionTTL)
	token := auth.CreateSessionToken(u.ID, exp, h.sessionSecret)
	http.SetCookie(w, auth.SessionCookie(token, exp, h.secureCookie))

	logging.FromContext(r.Context()).Info("admin signed in", "user_id", u.ID)
	writeJSON(w, http.StatusOK, meResponse{ID: u.ID, Username: u.Username, IsAdmin: true})
}

// Logout handles POST /admin/api/logout.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie())
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /admin/api/me. It runs behind the admin middleware.
func (h *AdminAuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: userID, IsAdmin: auth.IsAdminFromContext(r.Context())})
}
