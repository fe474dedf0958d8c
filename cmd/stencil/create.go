package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
	"github.com/stencil-dev/stencil/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		description string
		pm          string
		skipInstall bool
		skipPrompts bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Stencil project",
		Long: `Create a new Stencil project with the specified name.

Templates:
  default   Complete starter layout with pages, components, and server dirs
  minimal   Just the essentials

Examples:
  stencil create my-app
  stencil create my-app --template=minimal
  stencil create my-app --pm=pnpm --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], template, description, pm, skipInstall, skipPrompts)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "default", "Project template (default, minimal)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&pm, "pm", config.DefaultPackageManager, "Package manager (npm, pnpm, bun)")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Skip installing dependencies")
	cmd.Flags().BoolVarP(&skipPrompts, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func runCreate(name, templateName, description, pm string, skipInstall, skipPrompts bool) error {
	printBanner()
	fmt.Println("  Creating a new Stencil project...")
	fmt.Println()

	// Validate project name
	if !isValidProjectName(name) {
		return errors.New("E100").
			WithDetail("Project name must be a valid directory name").
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	// Check if directory exists
	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E101").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	// Interactive prompts if not skipped
	if !skipPrompts {
		description, err = promptForDescription(description)
		if err != nil {
			return err
		}
	}

	// Set defaults
	if description == "" {
		description = "A Stencil web application"
	}

	// Get template
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	// Create project directory
	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	info("Creating project from '%s' template...", templateName)
	err = tmpl.Create(projectDir, templates.Config{
		ProjectName:    name,
		Description:    description,
		PackageManager: pm,
	})
	if err != nil {
		// Clean up on error
		os.RemoveAll(projectDir)
		return err
	}

	// Install dependencies
	if !skipInstall {
		info("Installing dependencies with %s...", pm)
		if err := runPackageInstall(projectDir, pm); err != nil {
			warn("Could not run '%s install': %v", pm, err)
			warn("Run it manually inside %s/", name)
		}
	}

	// Print success message
	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    stencil dev")
	fmt.Println()

	return nil
}

func promptForDescription(description string) (string, error) {
	if description != "" {
		return description, nil
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("? Description: ")
	desc, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

func isValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	// Basic validation: no spaces, no path separators, no leading digit
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

func runPackageInstall(dir, pm string) error {
	if _, err := exec.LookPath(pm); err != nil {
		return fmt.Errorf("%s not found in PATH", pm)
	}

	cmd := exec.Command(pm, "install")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
