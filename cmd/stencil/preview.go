package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/preview"
)

func previewCmd() *cobra.Command {
	var (
		port        int
		host        string
		openBrowser bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the production build locally",
		Long: `Serve the production build output locally.

The preview server watches the output directory and reloads connected
browsers when files change, so you can rebuild in another terminal and
see the result immediately.

Examples:
  stencil preview
  stencil preview --port=8080
  stencil preview --host=0.0.0.0 --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(port, host, openBrowser, verbose)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from "+config.ConfigFileName+")")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")

	return cmd
}

func runPreview(port int, host string, openBrowser, verbose bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}
	if openBrowser {
		cfg.Preview.OpenBrowser = true
	}

	printBanner()
	fmt.Println("  preview")
	fmt.Println()

	options := preview.ServerOptions{
		Config: cfg,
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	}
	if verbose {
		options.OnRequest = func(method, path string, status int) {
			info("%d %s %s", status, method, path)
		}
	}
	server := preview.NewServer(options)

	ctx, cancel := signalContext()
	defer cancel()

	info("Serving %s/ at %s", cfg.Build.Output, cfg.PreviewURL())
	fmt.Println()

	if cfg.Preview.OpenBrowser {
		go openURL(cfg.PreviewURL())
	}

	return server.Start(ctx)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
