package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/registry"
)

func componentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Browse the component registry",
		Long: `Browse the component registry.

Commands:
  list     List all available components
  info     Show details for a single component

Examples:
  stencil components list
  stencil components info button`,
	}

	cmd.AddCommand(
		componentsListCmd(),
		componentsInfoCmd(),
	)

	return cmd
}

func componentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available components",
		Long:  `List all components available in the registry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponentsList()
		},
	}
}

func componentsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <component>",
		Short: "Show details for a component",
		Long:  `Show files, dependencies, and install status for a component.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponentsInfo(args[0])
		},
	}
}

func runComponentsList() error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	reg := registry.New(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	manifest, err := reg.FetchManifest(ctx)
	if err != nil {
		return err
	}

	fmt.Println("  Available components:")
	fmt.Println()

	// Get installed components for status
	installed, _ := reg.ListInstalled()
	installedMap := make(map[string]bool)
	for _, ic := range installed {
		installedMap[ic.Name] = true
	}

	var names []string
	for name := range manifest.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		comp := manifest.Components[name]
		if comp.Internal {
			continue
		}

		status := "    "
		if installedMap[name] {
			status = " ✓  "
		}

		deps := ""
		if len(comp.DependsOn) > 0 {
			deps = fmt.Sprintf(" (requires: %s)", strings.Join(comp.DependsOn, ", "))
		}

		fmt.Printf("%s%s%s\n", status, name, deps)
	}

	fmt.Println()
	fmt.Printf("  Registry version: %s\n", manifest.Version)
	fmt.Println()
	fmt.Println("  Install with:")
	fmt.Println()
	fmt.Println("    stencil add <component>")
	fmt.Println()

	return nil
}

func runComponentsInfo(name string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	reg := registry.New(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	ci, err := reg.Info(ctx, name)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s\n", ci.Name)
	fmt.Println()

	if ci.Installed {
		success("Installed")
	} else {
		info("Not installed")
	}

	if len(ci.Dependencies) > 0 {
		fmt.Printf("  Requires:  %s\n", strings.Join(ci.Dependencies, ", "))
	}
	if len(ci.InstallOrder) > 1 {
		fmt.Printf("  Install order: %s\n", strings.Join(ci.InstallOrder, " → "))
	}
	if len(ci.Files) > 0 {
		fmt.Println("  Files:")
		for _, f := range ci.Files {
			fmt.Printf("    %s\n", f)
		}
	}
	fmt.Printf("  Registry:  %s\n", ci.RegistryVersion)
	fmt.Println()

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}
