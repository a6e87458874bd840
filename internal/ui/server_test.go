package ui_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kanbd/kanbd/internal/ui"
)

var testFS = fstest.MapFS{
	"index.html": {Data: []byte("<html><body>board</body></html>")},
	"app.js":     {Data: []byte("// client")},
}

func newTestHandler(t *testing.T, cfg ui.HandlerConfig) http.Handler {
	t.Helper()
	if cfg.StaticFS == nil {
		cfg.StaticFS = testFS
	}
	handler, err := ui.NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return handler
}

func TestDetermineAccessLoopback(t *testing.T) {
	t.Parallel()

	requireAuth, err := ui.DetermineAccess("127.0.0.1:3333", false)
	if err != nil {
		t.Fatalf("DetermineAccess returned error: %v", err)
	}
	if requireAuth {
		t.Fatalf("expected loopback binding to skip auth requirement")
	}
}

func TestDetermineAccessRemoteWithoutAllow(t *testing.T) {
	t.Parallel()

	if _, err := ui.DetermineAccess("0.0.0.0:3333", false); err == nil {
		t.Fatalf("expected remote binding to fail without allow-remote flag")
	}
}

func TestDetermineAccessRemoteWithAllow(t *testing.T) {
	t.Parallel()

	requireAuth, err := ui.DetermineAccess("0.0.0.0:3333", true)
	if err != nil {
		t.Fatalf("DetermineAccess returned error: %v", err)
	}
	if !requireAuth {
		t.Fatalf("expected remote binding to require auth")
	}
}

func TestIndexServedWithoutCaching(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, ui.HandlerConfig{})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("expected Cache-Control no-store, got %q", cc)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "board") {
		t.Fatalf("expected index content, got %q", body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, ui.HandlerConfig{})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/definitely/not/here")
	if err != nil {
		t.Fatalf("GET unknown path: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // nolint:errcheck

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, ui.HandlerConfig{})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected healthz body: %q", body)
	}
}

func TestAuthEnforcement(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, ui.HandlerConfig{
		RequireAuth: true,
		AuthToken:   "secret-token",
	})
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz without auth: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // nolint:errcheck

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Authorization", "Bearer secret-token")

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /healthz with auth: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with Authorization header, got %d", resp.StatusCode)
	}
}

func TestAuthRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := ui.NewHandler(ui.HandlerConfig{
		StaticFS:    testFS,
		RequireAuth: true,
	})
	if err == nil {
		t.Fatalf("expected error when auth is required without a token")
	}
}
