package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nanostack/backend/internal/config"
	"github.com/nanostack/backend/internal/handler"
	"github.com/nanostack/backend/internal/logging"
	"github.com/nanostack/backend/internal/repository"
	"github.com/nanostack/backend/internal/service"
	"github.com/nanostack/backend/internal/spam"
	"github.com/nanostack/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "json")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	classifier, err := spam.NewClassifier(cfg.SpamRules)
	if err != nil {
		logging.Fatal("invalid spam rules", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	clientRepo := repository.NewPgClientRepository(pool)
	clientProjectRepo := repository.NewPgClientProjectRepository(pool)
	adminUserRepo := repository.NewPgAdminUserRepository(pool)

	contactService := service.NewContactService(contactRepo, classifier)
	clientService := service.NewClientService(clientRepo)
	clientProjectService := service.NewClientProjectService(clientProjectRepo)
	analyticsService := service.NewAnalyticsService(clientProjectRepo, cfg.AnalyticsLocation)
	dashboardService := service.NewDashboardService(contactService, clientService, clientProjectService, analyticsService)
	adminAuthService := service.NewAdminAuthService(adminUserRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)
	secureCookie := strings.HasPrefix(cfg.FrontendURL, "https://")

	h := handler.New(pool, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService, classifier.HoneypotField(), cfg.ContactRedirectURL)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	clientHandler := handler.NewClientHandler(clientService, clientProjectService)
	clientProjectHandler := handler.NewClientProjectHandler(clientProjectService)
	adminAuthHandler := handler.NewAdminAuthHandler(adminAuthService, sessionSecret, secureCookie)

	contactLimiter := handler.NewRateLimiter(cfg.ContactRateLimit)
	defer contactLimiter.Stop()
	loginLimiter := handler.NewRateLimiter(10)
	defer loginLimiter.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// Public contact channels
	mux.Handle("POST /contact", contactLimiter.Middleware(http.HandlerFunc(contactHandler.SubmitForm)))
	mux.Handle("/api/contact", contactLimiter.Middleware(http.HandlerFunc(contactHandler.SubmitAPI)))

	// Admin session
	mux.Handle("POST /admin/api/login", loginLimiter.Middleware(http.HandlerFunc(adminAuthHandler.Login)))
	mux.HandleFunc("POST /admin/api/logout", adminAuthHandler.Logout)

	wrapAdmin := func(next http.HandlerFunc) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireAdmin(sessionSecret, adminAuthService)(next)
		}
		return auth.DevAuth(next)
	}
	mux.Handle("GET /admin/api/me", wrapAdmin(adminAuthHandler.Me))
	mux.Handle("GET /admin/api/dashboard", wrapAdmin(dashboardHandler.Get))
	mux.Handle("GET /admin/api/analytics/data", wrapAdmin(analyticsHandler.Data))

	mux.Handle("GET /admin/api/messages", wrapAdmin(contactHandler.AdminList))
	mux.Handle("GET /admin/api/messages/{id}", wrapAdmin(contactHandler.AdminGet))
	mux.Handle("DELETE /admin/api/messages/{id}", wrapAdmin(contactHandler.AdminDelete))

	mux.Handle("GET /admin/api/clients", wrapAdmin(clientHandler.List))
	mux.Handle("POST /admin/api/clients", wrapAdmin(clientHandler.Create))
	mux.Handle("GET /admin/api/clients/{id}", wrapAdmin(clientHandler.Get))
	mux.Handle("PUT /admin/api/clients/{id}", wrapAdmin(clientHandler.Update))
	mux.Handle("DELETE /admin/api/clients/{id}", wrapAdmin(clientHandler.Delete))

	mux.Handle("GET /admin/api/client-projects", wrapAdmin(clientProjectHandler.List))
	mux.Handle("POST /admin/api/client-projects", wrapAdmin(clientProjectHandler.Create))
	mux.Handle("GET /admin/api/client-projects/{id}", wrapAdmin(clientProjectHandler.Get))
	mux.Handle("PUT /admin/api/client-projects/{id}", wrapAdmin(clientProjectHandler.Update))
	mux.Handle("DELETE /admin/api/client-projects/{id}", wrapAdmin(clientProjectHandler.Delete))

	if !cfg.AuthRequired {
		slog.Warn("AUTH_REQUIRED is not true; admin routes are open")
	}

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
