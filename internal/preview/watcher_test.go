package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		path string
		want ChangeType
	}{
		{path: "index.html", want: ChangeHTML},
		{path: "sub/page.HTM", want: ChangeHTML},
		{path: "styles.css", want: ChangeCSS},
		{path: "theme.scss", want: ChangeCSS},
		{path: "logo.svg", want: ChangeAsset},
		{path: "app.js", want: ChangeAsset},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := classifyChange(tt.path); got != tt.want {
				t.Errorf("classifyChange(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	w := NewWatcher(WatcherConfig{Ignore: []string{"node_modules", "*.tmp", ".git"}})

	tests := []struct {
		path string
		want bool
	}{
		{path: "dist/index.html", want: false},
		{path: "dist/cache.tmp", want: true},
		{path: "node_modules", want: true},
		{path: "a/node_modules/b/x.js", want: true},
		{path: "a/.git/config", want: true},
		{path: "a/normal/file.css", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.shouldIgnore(tt.path); got != tt.want {
				t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// waitForChange polls until a change arrives or the deadline passes.
func waitForChange(t *testing.T, ch <-chan Change, timeout time.Duration) Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(timeout):
		t.Fatal("no change detected before timeout")
		return Change{}
	}
}

func TestWatcherDetectsModification(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(WatcherConfig{
		Paths:    []string{dir},
		Debounce: 10 * time.Millisecond,
	})

	changes := make(chan Change, 8)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	defer w.Stop()

	// Give the initial scan a moment, then bump the mtime explicitly so the
	// test doesn't depend on filesystem timestamp granularity.
	time.Sleep(50 * time.Millisecond)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(file, future, future); err != nil {
		t.Fatal(err)
	}

	change := waitForChange(t, changes, 2*time.Second)
	if change.Type != ChangeHTML {
		t.Errorf("change type = %d, want ChangeHTML", change.Type)
	}
	if filepath.Base(change.Path) != "index.html" {
		t.Errorf("change path = %q", change.Path)
	}
}

func TestWatcherDetectsNewAndDeletedFiles(t *testing.T) {
	dir := t.TempDir()

	w := NewWatcher(WatcherConfig{
		Paths:    []string{dir},
		Debounce: 10 * time.Millisecond,
	})

	changes := make(chan Change, 8)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)

	file := filepath.Join(dir, "styles.css")
	if err := os.WriteFile(file, []byte("body{}"), 0644); err != nil {
		t.Fatal(err)
	}

	change := waitForChange(t, changes, 2*time.Second)
	if change.Type != ChangeCSS {
		t.Errorf("change type = %d, want ChangeCSS", change.Type)
	}

	if err := os.Remove(file); err != nil {
		t.Fatal(err)
	}
	change = waitForChange(t, changes, 2*time.Second)
	if filepath.Base(change.Path) != "styles.css" {
		t.Errorf("delete change path = %q", change.Path)
	}
}

func TestWatcherStop(t *testing.T) {
	w := NewWatcher(WatcherConfig{Paths: []string{t.TempDir()}, Debounce: 10 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	time.Sleep(30 * time.Millisecond)
	if !w.IsRunning() {
		t.Fatal("watcher should be running")
	}

	w.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}

	if w.IsRunning() {
		t.Error("watcher still reports running")
	}
}
