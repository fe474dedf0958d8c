package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
)

func buildCmd() *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build for production",
		Long: `Build the application for production deployment.

Runs the build script from package.json through the configured package
manager. The build output lands in the configured output directory
(dist by default), ready for stencil preview or stencil deploy.

Examples:
  stencil build
  stencil build --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildCmd(clean)
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before build")

	return cmd
}

func runBuildCmd(clean bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if clean {
		info("Cleaning %s/...", cfg.Build.Output)
		if err := os.RemoveAll(cfg.OutputPath()); err != nil {
			return err
		}
	}

	fmt.Println("  Building for production...")
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	if err := runScript(ctx, cfg, cfg.Scripts.Build); err != nil {
		return err
	}

	fmt.Println()
	success("Build complete")
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s/\n", cfg.Build.Output)
	fmt.Println()
	fmt.Println("  Preview locally:")
	fmt.Println()
	fmt.Println("    stencil preview")
	fmt.Println()

	return nil
}
