package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pvolkov/certup/internal/config"
)

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	t.Run("renders with form token", func(t *testing.T) {
		templates := t.TempDir()
		page := `<form><input type="hidden" name="form_token" value="{{.FormToken}}"></form>`
		if err := os.WriteFile(filepath.Join(templates, "index.html"), []byte(page), 0644); err != nil {
			t.Fatal(err)
		}

		s := New(config.ServerConfig{
			TemplatesDir:    templates,
			StaticDir:       t.TempDir(),
			FormTokenSecret: "secret",
		}, &mockNotifier{})

		rec := get(s, "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		start := strings.Index(body, `value="`)
		if start < 0 {
			t.Fatalf("no token in body: %q", body)
		}
		token := body[start+len(`value="`):]
		token = token[:strings.Index(token, `"`)]
		if !s.tokens.Verify(token) {
			t.Errorf("rendered token should verify, got %q", token)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		s := New(config.ServerConfig{
			TemplatesDir: t.TempDir(),
			StaticDir:    t.TempDir(),
		}, &mockNotifier{})

		rec := get(s, "/")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHandlePrivacy(t *testing.T) {
	t.Run("renders when deployed", func(t *testing.T) {
		templates := t.TempDir()
		if err := os.WriteFile(filepath.Join(templates, "privacy.html"), []byte("<h1>Privacy</h1>"), 0644); err != nil {
			t.Fatal(err)
		}

		s := New(config.ServerConfig{
			TemplatesDir: templates,
			StaticDir:    t.TempDir(),
		}, &mockNotifier{})

		rec := get(s, "/privacy")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Privacy") {
			t.Errorf("unexpected body: %q", rec.Body.String())
		}
	})

	t.Run("missing page", func(t *testing.T) {
		s := New(config.ServerConfig{
			TemplatesDir: t.TempDir(),
			StaticDir:    t.TempDir(),
		}, &mockNotifier{})

		rec := get(s, "/privacy")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if rec.Body.String() != "privacy.html not found" {
			t.Errorf("unexpected body: %q", rec.Body.String())
		}
	})
}

func TestStaticFiles(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "site.css"), []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(config.ServerConfig{
		TemplatesDir: t.TempDir(),
		StaticDir:    static,
	}, &mockNotifier{})

	rec := get(s, "/static/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}
