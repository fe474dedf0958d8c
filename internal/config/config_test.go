package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultPackageManager, cfg.PackageManager)
	assert.Equal(t, "src/pages", cfg.Paths.Pages)
	assert.Equal(t, "src/components/ui", cfg.Paths.UI)
	assert.Equal(t, DefaultOutput, cfg.Build.Output)
	assert.Equal(t, DefaultPreviewPort, cfg.Preview.Port)
	assert.Equal(t, DefaultRegistry, cfg.Installer.Registry)
	assert.Equal(t, DefaultInstallerCommand, cfg.Installer.Command)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "name": "my-app",
  "packageManager": "pnpm",
  "paths": { "ui": "app/ui" },
  "build": { "output": "out" },
  "preview": { "port": 5000 }
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-app", cfg.Name)
	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.Equal(t, "app/ui", cfg.Paths.UI)
	assert.Equal(t, "out", cfg.Build.Output)
	assert.Equal(t, 5000, cfg.Preview.Port)

	// Unset fields still get defaults
	assert.Equal(t, "src/pages", cfg.Paths.Pages)
	assert.Equal(t, DefaultPreviewHost, cfg.Preview.Host)
	assert.Equal(t, dir, cfg.Dir())
}

func TestLoadFileWithComments(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  // project identity
  "name": "commented-app",
  /* the package manager used by dev/build */
  "packageManager": "bun",
  "scripts": { "dev": "start" }
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "commented-app", cfg.Name)
	assert.Equal(t, "bun", cfg.PackageManager)
	assert.Equal(t, "start", cfg.Scripts.Dev)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E121")
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{ not json at all`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E120")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{ "name": "roundtrip" }`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.Deploy.Bucket = "my-bucket"
	require.NoError(t, cfg.Save())

	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", again.Name)
	assert.Equal(t, "my-bucket", again.Deploy.Bucket)
}

func TestSaveWithoutPath(t *testing.T) {
	cfg := New()
	assert.Error(t, cfg.Save())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative port",
			mutate:  func(c *Config) { c.Preview.Port = -1 },
			wantErr: true,
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Preview.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "empty installer command",
			mutate:  func(c *Config) { c.Installer.Command = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{ "name": "nested" }`)

	nested := filepath.Join(root, "src", "pages")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindProjectRoot(nested)
	require.NoError(t, err)

	// Resolve symlinks on both sides; macOS temp dirs live behind /private.
	wantReal, _ := filepath.EvalSymlinks(root)
	gotReal, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, wantReal, gotReal)
}

func TestFindProjectRootNotFound(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E121")
}

func TestPathHelpers(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{ "build": { "output": "dist" } }`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(dir, "src", "components", "ui"), cfg.UIComponentsPath())
	assert.Equal(t, filepath.Join(dir, "public"), cfg.PublicPath())

	// Absolute paths pass through
	cfg.Build.Output = "/abs/out"
	assert.Equal(t, "/abs/out", cfg.OutputPath())
}

func TestPreviewAddress(t *testing.T) {
	cfg := New()
	cfg.Preview.Host = "0.0.0.0"
	cfg.Preview.Port = 8080

	assert.Equal(t, "0.0.0.0:8080", cfg.PreviewAddress())
	assert.Equal(t, "http://0.0.0.0:8080", cfg.PreviewURL())
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))

	writeConfig(t, dir, `{}`)
	assert.True(t, Exists(dir))
}
