package preview

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
)

// ServerOptions configures the preview server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Root is the directory to serve. Defaults to the build output path.
	Root string

	// OnReload is called after browsers are notified, with the client count.
	OnReload func(clients int)

	// OnRequest is called for every served request (verbose logging).
	OnRequest func(method, path string, status int)
}

// Server serves a built site locally with live reload.
type Server struct {
	config  *config.Config
	options ServerOptions
	root    string
	watcher *Watcher
	reload  *ReloadServer
	metrics *metrics

	httpServer *http.Server
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new preview server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config

	root := options.Root
	if root == "" {
		root = cfg.OutputPath()
	}

	watchPaths := []string{root}
	for _, extra := range cfg.Preview.Watch {
		if filepath.IsAbs(extra) {
			watchPaths = append(watchPaths, extra)
		} else {
			watchPaths = append(watchPaths, filepath.Join(cfg.Dir(), extra))
		}
	}

	return &Server{
		config:  cfg,
		options: options,
		root:    root,
		watcher: NewWatcher(WatcherConfig{
			Paths:    watchPaths,
			Ignore:   append(append([]string(nil), DefaultIgnore...), cfg.Preview.Ignore...),
			Debounce: 100 * time.Millisecond,
		}),
		reload:  NewReloadServer(),
		metrics: newMetrics(),
	}
}

// Handler returns the HTTP handler for the preview server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// The websocket endpoint stays uninstrumented: the status recorder
	// wrapper would hide the http.Hijacker the upgrade needs.
	r.Get(ReloadPath, s.reload.HandleWebSocket)
	r.Handle("/metrics", s.metrics.handler())
	r.Handle("/*", s.metrics.instrument(http.HandlerFunc(s.handleStatic)))

	return r
}

// Start runs the preview server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return errors.New("E162").
			WithDetail("No build output at " + s.root).
			WithSuggestion("Run 'stencil build' first")
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.httpServer = &http.Server{
		Addr:    s.config.PreviewAddress(),
		Handler: s.Handler(),
	}
	srv := s.httpServer
	s.mu.Unlock()

	// Watch for changes and notify browsers.
	s.watcher.OnChange(func(change Change) {
		if change.Type == ChangeCSS {
			s.reload.NotifyCSS(filepath.Base(change.Path))
		} else {
			s.reload.NotifyReload()
		}
		s.metrics.reloadsTotal.Inc()
		s.metrics.reloadClients.Set(float64(s.reload.ClientCount()))
		if s.options.OnReload != nil {
			s.options.OnReload(s.reload.ClientCount())
		}
	})
	go s.watcher.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	s.mu.Lock()
	srv := s.httpServer
	s.running = false
	s.mu.Unlock()

	s.watcher.Stop()
	s.reload.Close()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}
}

// handleStatic serves files from the root directory, injecting the live
// reload script into HTML responses.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	full := filepath.Join(s.root, filepath.FromSlash(urlPath))

	// Clean + Join keeps us inside root, but be explicit about it.
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		http.Error(w, "forbidden", http.StatusForbidden)
		s.logRequest(r, http.StatusForbidden)
		return
	}

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil {
		s.notFound(w, r)
		return
	}

	if strings.EqualFold(filepath.Ext(full), ".html") || strings.EqualFold(filepath.Ext(full), ".htm") {
		data, err := os.ReadFile(full)
		if err != nil {
			s.notFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(InjectReloadScript(data))
		s.logRequest(r, http.StatusOK)
		return
	}

	http.ServeFile(w, r, full)
	s.logRequest(r, http.StatusOK)
}

// notFound serves a 404. If the site ships its own 404.html, that page is
// used.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	custom := filepath.Join(s.root, "404.html")
	if data, err := os.ReadFile(custom); err == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write(InjectReloadScript(data))
		s.logRequest(r, http.StatusNotFound)
		return
	}

	http.NotFound(w, r)
	s.logRequest(r, http.StatusNotFound)
}

func (s *Server) logRequest(r *http.Request, status int) {
	if s.options.OnRequest != nil {
		s.options.OnRequest(r.Method, r.URL.Path, status)
	}
}

// InjectReloadScript inserts the live reload client script into an HTML
// document, before </body> when present, appended otherwise.
func InjectReloadScript(html []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(html), []byte("</body>"))
	if idx < 0 {
		return append(html, []byte("\n"+ClientScript+"\n")...)
	}

	var buf bytes.Buffer
	buf.Grow(len(html) + len(ClientScript) + 2)
	buf.Write(html[:idx])
	buf.WriteString(ClientScript)
	buf.WriteString("\n")
	buf.Write(html[idx:])
	return buf.Bytes()
}
