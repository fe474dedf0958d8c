package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stencil-dev/stencil/internal/config"
	"github.com/stencil-dev/stencil/internal/errors"
	"github.com/stencil-dev/stencil/internal/installer"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <component>",
		Short: "Add a UI component to your project",
		Long: `Add a UI component to your project.

The component is fetched by the configured installer tool and copied
into your project as source code that you own. You can modify it as
needed.

Examples:
  stencil add button
  stencil add dialog`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
}

func runAdd(args []string) error {
	if len(args) == 0 {
		fmt.Println()
		fmt.Println("  Specify the component you want to add:")
		fmt.Println()
		fmt.Println("    stencil add button")
		fmt.Println()
		return errors.New("E102")
	}
	if len(args) > 1 {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("Got %d component names, expected one", len(args))).
			WithSuggestion("Add components one at a time: stencil add " + args[0])
	}

	component := args[0]

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	inst := installer.New(cfg)

	fmt.Println()
	info("Adding %s with %s in %s...", component, inst.Tool(), cfg.Dir())
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := inst.Install(ctx, component); err != nil {
		return err
	}

	fmt.Println()
	success("Successfully added %s component!", component)
	fmt.Println()

	return nil
}
