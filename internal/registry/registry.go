package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
)

// Manifest represents the registry manifest.
type Manifest struct {
	ManifestVersion int                  `json:"manifestVersion"`
	Version         string               `json:"version"`
	Registry        string               `json:"registry"`
	Components      map[string]Component `json:"components"`
}

// Component represents a component in the registry.
type Component struct {
	Files     []string `json:"files"`
	DependsOn []string `json:"dependsOn"`
	Internal  bool     `json:"internal,omitempty"`
}

// InstalledComponent represents a locally installed component.
type InstalledComponent struct {
	Name string
	File string
}

// Client reads the component registry. Installation itself is always
// delegated to the external installer tool; this client only answers
// "what exists" and "what is installed" questions.
type Client struct {
	config   *config.Config
	manifest *Manifest
	http     *http.Client
}

// New creates a new registry Client.
func New(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchManifest downloads and parses the registry manifest.
// The manifest is cached for the lifetime of the Client.
func (c *Client) FetchManifest(ctx context.Context) (*Manifest, error) {
	if c.manifest != nil {
		return c.manifest, nil
	}

	registryURL := c.config.Installer.Registry
	if registryURL == "" {
		registryURL = config.DefaultRegistry
	}

	req, err := http.NewRequestWithContext(ctx, "GET", registryURL, nil)
	if err != nil {
		return nil, errors.New("E141").Wrap(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.New("E141").
			WithDetail("Could not connect to registry: " + err.Error()).
			WithSuggestion("Check your internet connection")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("E141").
			WithDetail(fmt.Sprintf("Registry returned status %d", resp.StatusCode))
	}

	var manifest Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, errors.New("E141").
			WithDetail("Invalid registry manifest: " + err.Error())
	}

	c.manifest = &manifest
	return &manifest, nil
}

// ResolveDependencies returns the requested components plus their transitive
// dependencies, in install order (dependencies first).
func ResolveDependencies(manifest *Manifest, components []string) ([]string, error) {
	resolved := make(map[string]bool)
	var order []string

	var resolve func(name string) error
	resolve = func(name string) error {
		if resolved[name] {
			return nil
		}

		comp, ok := manifest.Components[name]
		if !ok {
			return errors.New("E140").
				WithDetail("Component '" + name + "' not found in registry")
		}

		for _, dep := range comp.DependsOn {
			if err := resolve(dep); err != nil {
				return err
			}
		}

		resolved[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range components {
		if err := resolve(name); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// ListInstalled returns the components present in the UI components
// directory. Because installation is performed by an external tool, presence
// of a file is the only signal available: each non-hidden file maps to one
// component named after its base name without extension.
func (c *Client) ListInstalled() ([]InstalledComponent, error) {
	outputDir := c.config.UIComponentsPath()
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}

	var components []InstalledComponent
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == "" {
			continue
		}

		components = append(components, InstalledComponent{
			Name: stem,
			File: filepath.Join(outputDir, name),
		})
	}

	return components, nil
}

// IsInstalled reports whether a component file exists locally.
func (c *Client) IsInstalled(name string) bool {
	installed, err := c.ListInstalled()
	if err != nil {
		return false
	}
	for _, ic := range installed {
		if ic.Name == name {
			return true
		}
	}
	return false
}

// ComponentInfo describes a component for display.
type ComponentInfo struct {
	Name            string
	Files           []string
	Dependencies    []string
	InstallOrder    []string
	Installed       bool
	RegistryVersion string
}

// Info returns information about a component, including the order its
// transitive dependencies would be installed in.
func (c *Client) Info(ctx context.Context, name string) (*ComponentInfo, error) {
	manifest, err := c.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}

	comp, ok := manifest.Components[name]
	if !ok {
		return nil, errors.New("E140").
			WithDetail("Component '" + name + "' not found")
	}

	order, err := ResolveDependencies(manifest, []string{name})
	if err != nil {
		return nil, err
	}

	return &ComponentInfo{
		Name:            name,
		Files:           comp.Files,
		Dependencies:    comp.DependsOn,
		InstallOrder:    order,
		Installed:       c.IsInstalled(name),
		RegistryVersion: manifest.Version,
	}, nil
}
