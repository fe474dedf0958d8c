package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
)

func devCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the project's development server.

Runs the dev script from package.json through the configured package
manager, with stencil staying out of the way: output streams straight
to your terminal and Ctrl-C stops the server.

Examples:
  stencil dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev()
		},
	}
}

func runDev() error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	return runScript(ctx, cfg, cfg.Scripts.Dev)
}

// runScript runs a package.json script through the configured package
// manager with the project root as working directory. The child's exit
// code is passed through to the caller untouched.
func runScript(ctx context.Context, cfg *config.Config, script string) error {
	pm := cfg.PackageManager

	if _, err := exec.LookPath(pm); err != nil {
		return errors.New("E107").
			WithDetail(fmt.Sprintf("'%s' was not found in PATH", pm)).
			WithSuggestion("Install " + pm + " or set \"packageManager\" in " + config.ConfigFileName)
	}

	cmd := exec.CommandContext(ctx, pm, "run", script)
	cmd.Dir = cfg.Dir()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return err
		}
		return errors.New("E106").
			WithDetail(fmt.Sprintf("Could not run '%s run %s'", pm, script)).
			Wrap(err)
	}

	return nil
}
