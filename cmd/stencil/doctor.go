package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
	"github.com/stencil-dev/stencil/internal/installer"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment",
		Long: `Check that the tools stencil relies on are available.

Looks for the package manager, the component installer tool, Node.js,
and git, and reports whether the current directory is inside a Stencil
project.

Examples:
  stencil doctor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

func runDoctor() error {
	printBanner()
	fmt.Println("  doctor")
	fmt.Println()

	ok := true

	// Project checks need a config; everything else is global.
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	var cfg *config.Config
	if root, err := config.FindProjectRoot(cwd); err == nil {
		cfg, err = config.Load(root)
		if err != nil {
			errorMsg("Project config: %v", err)
			ok = false
		} else {
			success("Project: %s (%s)", cfg.Name, root)
		}
	} else {
		info("Not inside a Stencil project (checked %s and parents)", cwd)
	}

	pm := config.DefaultPackageManager
	if cfg != nil {
		pm = cfg.PackageManager
	}
	ok = checkTool(pm, "Install "+pm+" or set \"packageManager\" in "+config.ConfigFileName) && ok
	ok = checkTool("node", "Install Node.js from https://nodejs.org") && ok
	ok = checkTool("git", "Install git to track your project") && ok

	if cfg != nil {
		inst := installer.New(cfg)
		if inst.ToolAvailable() {
			success("%s found", inst.Tool())
		} else {
			errorMsg("%s not found in PATH", inst.Tool())
			ok = false
		}
	}

	fmt.Println()
	if !ok {
		return errors.New("E108").
			WithSuggestion("Install the missing tools listed above")
	}
	success("Everything looks good!")
	fmt.Println()

	return nil
}

func checkTool(name, suggestion string) bool {
	if _, err := exec.LookPath(name); err != nil {
		errorMsg("%s not found in PATH", name)
		info(suggestion)
		return false
	}
	success("%s found", name)
	return true
}
