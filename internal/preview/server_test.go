package preview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stencil-dev/stencil/internal/config"
)

// siteConfig builds a project with a dist directory containing the given
// files and returns the loaded config.
func siteConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(`{ "name": "site" }`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	for rel, content := range files {
		full := filepath.Join(cfg.OutputPath(), filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return cfg
}

func TestInjectReloadScript(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{name: "with body tag", html: "<html><body><h1>hi</h1></body></html>"},
		{name: "uppercase body tag", html: "<HTML><BODY>x</BODY></HTML>"},
		{name: "no body tag", html: "<p>fragment</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(InjectReloadScript([]byte(tt.html)))
			if !strings.Contains(out, ReloadPath) {
				t.Error("injected output missing reload endpoint")
			}
			if !strings.Contains(out, "<script>") {
				t.Error("injected output missing script tag")
			}
			// Original content is preserved
			if !strings.Contains(out, "hi") && !strings.Contains(out, "x") && !strings.Contains(out, "fragment") {
				t.Error("original content lost")
			}
		})
	}

	// Script lands before </body> when one exists
	out := string(InjectReloadScript([]byte("<body>content</body>")))
	if strings.Index(out, "<script>") > strings.Index(out, "</body>") {
		t.Error("script injected after </body>")
	}
}

func TestServeHTMLWithInjection(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"index.html": "<html><body>home</body></html>",
		"about.html": "<html><body>about</body></html>",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "home"},
		{path: "/index.html", want: "home"},
		{path: "/about.html", want: "about"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
			if !strings.Contains(string(body), ReloadPath) {
				t.Error("reload script not injected")
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestServeAssetWithoutInjection(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"styles.css": "body { margin: 0 }",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/styles.css")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "<script>") {
		t.Error("script injected into non-HTML asset")
	}
}

func TestNotFound(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"index.html": "<html><body>home</body></html>",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/missing.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCustom404Page(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"404.html": "<html><body>custom not found</body></html>",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "custom not found") {
		t.Error("custom 404 page not served")
	}
}

func TestPathTraversalBlocked(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"index.html": "<html></html>",
	})

	// A secret outside the served root
	secret := filepath.Join(cfg.Dir(), "secret.txt")
	if err := os.WriteFile(secret, []byte("s3cret"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/../secret.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "s3cret") {
		t.Error("path traversal leaked file outside root")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"index.html": "<html></html>",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// Generate one request so counters are non-empty.
	if _, err := http.Get(ts.URL + "/index.html"); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "stencil_preview_requests_total") {
		t.Errorf("metrics output missing request counter:\n%.500s", body)
	}
}

func TestReloadWebSocket(t *testing.T) {
	cfg := siteConfig(t, map[string]string{
		"index.html": "<html></html>",
	})

	srv := NewServer(ServerOptions{Config: cfg})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server to register the client.
	deadline := time.Now().Add(2 * time.Second)
	for srv.reload.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.reload.NotifyReload()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), `"type":"reload"`) {
		t.Errorf("message = %s", msg)
	}
}
