package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/stencil-dev/stencil/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "stencil.json"

	// DefaultPreviewPort is the default preview server port.
	DefaultPreviewPort = 4173

	// DefaultPreviewHost is the default preview server host.
	DefaultPreviewHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultRegistry is the default component registry URL.
	DefaultRegistry = "https://stencil.dev/registry.json"

	// DefaultPackageManager is used when stencil.json doesn't name one.
	DefaultPackageManager = "npm"
)

// DefaultInstallerCommand is the command the add command delegates to.
// The component name is appended as the final argument.
var DefaultInstallerCommand = []string{"npx", "shadcn@latest", "add"}

// Config represents the complete stencil.json configuration.
// The file may contain // and /* */ comments; they are stripped before
// parsing.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Description is a short project description.
	Description string `json:"description,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// PackageManager is the package manager used for scripts (npm, pnpm, bun).
	PackageManager string `json:"packageManager,omitempty"`

	// Paths contains path configuration for the starter layout.
	Paths PathsConfig `json:"paths,omitempty"`

	// Installer contains component installer configuration.
	Installer InstallerConfig `json:"installer,omitempty"`

	// Scripts contains the package manager script names stencil wraps.
	Scripts ScriptsConfig `json:"scripts,omitempty"`

	// Build contains production build configuration.
	Build BuildConfig `json:"build,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Deploy contains deploy target configuration.
	Deploy DeployConfig `json:"deploy,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Pages is the path to the pages directory.
	Pages string `json:"pages,omitempty"`

	// Components is the path to the components directory.
	Components string `json:"components,omitempty"`

	// UI is the path to the installed UI components directory.
	UI string `json:"ui,omitempty"`

	// Hooks is the path to the hooks directory.
	Hooks string `json:"hooks,omitempty"`

	// Services is the path to the server-side service layer.
	Services string `json:"services,omitempty"`

	// Repositories is the path to the server-side repository layer.
	Repositories string `json:"repositories,omitempty"`

	// Public is the path to the public static files directory.
	Public string `json:"public,omitempty"`
}

// InstallerConfig contains component installer settings.
type InstallerConfig struct {
	// Command is the external command the add command delegates to.
	// The component name is appended as the final argument.
	Command []string `json:"command,omitempty"`

	// Registry is the URL of the component registry manifest.
	Registry string `json:"registry,omitempty"`
}

// ScriptsConfig names the package manager scripts stencil wraps.
type ScriptsConfig struct {
	// Dev is the development script name.
	Dev string `json:"dev,omitempty"`

	// Build is the production build script name.
	Build string `json:"build,omitempty"`
}

// BuildConfig contains production build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Port is the port to run the preview server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// OpenBrowser opens the browser automatically on start.
	OpenBrowser bool `json:"openBrowser,omitempty"`

	// Watch contains extra paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains patterns to ignore during watch.
	Ignore []string `json:"ignore,omitempty"`
}

// DeployConfig contains deploy target settings.
type DeployConfig struct {
	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region. Empty means the SDK default chain decides.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version:        "0.1.0",
		PackageManager: DefaultPackageManager,
		Paths: PathsConfig{
			Pages:        "src/pages",
			Components:   "src/components",
			UI:           "src/components/ui",
			Hooks:        "src/hooks",
			Services:     "src/server/services",
			Repositories: "src/server/repositories",
			Public:       "public",
		},
		Installer: InstallerConfig{
			Command:  append([]string(nil), DefaultInstallerCommand...),
			Registry: DefaultRegistry,
		},
		Scripts: ScriptsConfig{
			Dev:   "dev",
			Build: "build",
		},
		Build: BuildConfig{
			Output: DefaultOutput,
		},
		Preview: PreviewConfig{
			Port: DefaultPreviewPort,
			Host: DefaultPreviewHost,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for stencil.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No stencil.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'stencil create' to create a new project or create stencil.json manually")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse stencil.json: " + err.Error()).
			WithSuggestion("Check that stencil.json is valid JSON (comments are allowed)")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
// Comments in the original file are not preserved.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.PackageManager == "" {
		c.PackageManager = DefaultPackageManager
	}

	// Paths
	if c.Paths.Pages == "" {
		c.Paths.Pages = "src/pages"
	}
	if c.Paths.Components == "" {
		c.Paths.Components = "src/components"
	}
	if c.Paths.UI == "" {
		c.Paths.UI = c.Paths.Components + "/ui"
	}
	if c.Paths.Hooks == "" {
		c.Paths.Hooks = "src/hooks"
	}
	if c.Paths.Services == "" {
		c.Paths.Services = "src/server/services"
	}
	if c.Paths.Repositories == "" {
		c.Paths.Repositories = "src/server/repositories"
	}
	if c.Paths.Public == "" {
		c.Paths.Public = "public"
	}

	// Installer
	if len(c.Installer.Command) == 0 {
		c.Installer.Command = append([]string(nil), DefaultInstallerCommand...)
	}
	if c.Installer.Registry == "" {
		c.Installer.Registry = DefaultRegistry
	}

	// Scripts
	if c.Scripts.Dev == "" {
		c.Scripts.Dev = "dev"
	}
	if c.Scripts.Build == "" {
		c.Scripts.Build = "build"
	}

	// Build
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}

	// Preview
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPreviewPort
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultPreviewHost
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E122").
			WithDetail("Preview port must be between 0 and 65535")
	}
	if len(c.Installer.Command) == 0 {
		return errors.New("E122").
			WithDetail("installer.command must not be empty")
	}
	return nil
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return c.abs(c.Build.Output)
}

// UIComponentsPath returns the absolute path to the UI components directory.
func (c *Config) UIComponentsPath() string {
	return c.abs(c.Paths.UI)
}

// PublicPath returns the absolute path to the public directory.
func (c *Config) PublicPath() string {
	return c.abs(c.Paths.Public)
}

// abs resolves a config-relative path against the project root.
func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing stencil.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No stencil.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'stencil create' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
