package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/errors"
	"github.com/stencil-dev/stencil/internal/installer"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┌─┐┌┐┌┌─┐┬┬
  ╚═╗ │ ├┤ ││││  ││
  ╚═╝ ┴ └─┘┘└┘└─┘┴┴─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "stencil",
		Short: "Companion CLI for the Stencil web-app starter",
		Long: `Stencil is the companion CLI for the Stencil web-app starter kit.

Scaffold a project, pull in UI components, and run the everyday
workflow without leaving the terminal:

  • Project scaffolding from built-in templates
  • One-command UI component installation
  • Dev and build script passthrough
  • Local preview server with live reload
  • Static deploys to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		createCmd(),
		addCmd(),
		componentsCmd(),
		devCmd(),
		buildCmd(),
		previewCmd(),
		deployCmd(),
		doctorCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err and returns the process exit code for it.
//
// Delegated commands (the component installer, package manager scripts)
// pass their exit codes through verbatim; everything else exits 1.
func exitCode(err error) int {
	var instErr *installer.ExitError
	if stderrors.As(err, &instErr) {
		errorMsg("Failed to add %s component (exit code %d)", instErr.Component, instErr.Code)
		return instErr.Code
	}

	var execErr *exec.ExitError
	if stderrors.As(err, &execErr) {
		errorMsg("Command failed with exit code %d", execErr.ExitCode())
		return execErr.ExitCode()
	}

	var stencilErr *errors.StencilError
	if stderrors.As(err, &stencilErr) {
		fmt.Fprintln(os.Stderr, stencilErr.Format())
		return 1
	}

	fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
	return 1
}

// printBanner prints the Stencil ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
