// Package server implements the landing site's HTTP server: the
// public pages, static assets, and the lead submission endpoint that
// forwards validated leads to Telegram.
package server

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pvolkov/certup/internal/config"
	"github.com/pvolkov/certup/internal/logger"
	"github.com/pvolkov/certup/internal/notify"
)

// Server serves the landing site.
type Server struct {
	cfg      config.ServerConfig
	notifier notify.Notifier
	tokens   *TokenSource
	router   chi.Router
}

// New creates a Server from the given configuration and notifier.
func New(cfg config.ServerConfig, notifier notify.Notifier) *Server {
	s := &Server{
		cfg:      cfg,
		notifier: notifier,
		tokens:   NewTokenSource(cfg.FormTokenSecret),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/privacy", s.handlePrivacy)
	r.Post("/api/lead", s.handleLead)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleIndex renders the landing page with a fresh form token.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "index.html", map[string]interface{}{
		"FormToken": s.tokens.Make(),
	})
}

// handlePrivacy renders the privacy policy, 404ing when the page was
// not deployed.
func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.TemplatesDir, "privacy.html")
	if _, err := os.Stat(path); err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("privacy.html not found"))
		return
	}
	s.renderTemplate(w, "privacy.html", nil)
}

// renderTemplate parses and executes a page template from the
// templates directory. Templates are read per request so deploys can
// replace them without a restart, matching the container volume mount.
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	tmpl, err := template.ParseFiles(filepath.Join(s.cfg.TemplatesDir, name))
	if err != nil {
		logger.Error("failed to parse template %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error("failed to render template %s: %v", name, err)
	}
}
