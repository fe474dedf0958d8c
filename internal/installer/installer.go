// Package installer delegates UI component installation to an external
// component-fetching tool.
//
// The installer owns none of the installation logic itself: it validates the
// request, launches the configured tool with the project root as working
// directory and the parent's standard streams, and surfaces the tool's exit
// status unchanged. The tool's exit code is authoritative; there are no
// retries and no timeout.
package installer

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
)

// ExitError reports a non-zero exit from the delegated tool.
// The code is propagated verbatim to the stencil process exit status.
type ExitError struct {
	// Component is the component that was being installed.
	Component string

	// Code is the delegated tool's exit code. Always >= 1.
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("component installer exited with code %d", e.Code)
}

// Installer runs the configured external installer command.
type Installer struct {
	// Command is the argv prefix of the delegated tool. The component name
	// is appended as the final argument.
	Command []string

	// Dir is the working directory for the delegated tool, normally the
	// project root.
	Dir string

	// Stdin, Stdout, and Stderr are handed to the child so its interactive
	// output reaches the user directly. Nil values default to the process
	// streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an Installer from the project configuration.
func New(cfg *config.Config) *Installer {
	return &Installer{
		Command: cfg.Installer.Command,
		Dir:     cfg.Dir(),
	}
}

// Tool returns the executable name of the delegated tool.
func (i *Installer) Tool() string {
	if len(i.Command) == 0 {
		return ""
	}
	return i.Command[0]
}

// buildCommand constructs the delegated command for a component.
// The component identifier is always the final argument.
func (i *Installer) buildCommand(ctx context.Context, component string) *exec.Cmd {
	args := append(append([]string(nil), i.Command[1:]...), component)
	cmd := exec.CommandContext(ctx, i.Command[0], args...)
	cmd.Dir = i.Dir

	cmd.Stdin = i.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = i.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = i.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd
}

// Install runs the delegated tool for a single component and blocks until it
// exits. It returns nil on exit code 0, an *ExitError on a non-zero exit,
// and a coded error when the tool could not be started at all.
func (i *Installer) Install(ctx context.Context, component string) error {
	if len(i.Command) == 0 {
		return errors.New("E103").
			WithDetail("No installer command configured").
			WithSuggestion("Set installer.command in stencil.json")
	}

	cmd := i.buildCommand(ctx, component)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 1 {
			// The child was killed by a signal; there is no meaningful
			// code to forward.
			code = 1
		}
		return &ExitError{Component: component, Code: code}
	}

	// The process never started (tool missing, permission denied, ...).
	return errors.New("E103").
		WithDetail("Could not run '" + i.Tool() + "': " + err.Error()).
		WithSuggestion("Check that the installer command in stencil.json is installed and in PATH")
}

// ToolAvailable reports whether the delegated tool's executable can be found
// in PATH.
func (i *Installer) ToolAvailable() bool {
	if len(i.Command) == 0 {
		return false
	}
	_, err := exec.LookPath(i.Command[0])
	return err == nil
}
