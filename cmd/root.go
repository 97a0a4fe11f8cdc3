// Package cmd assembles the sprout command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/catalog"
	"github.com/thenoetrevino/sprout/internal/cli/garden"
	"github.com/thenoetrevino/sprout/internal/cli/plant"
	"github.com/thenoetrevino/sprout/internal/launcher"
)

// NewRootCmd builds the sprout command. Without a subcommand it opens the TUI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sprout",
		Short: "Sprout - a plant catalog and garden tracker",
		Long: `Sprout keeps a catalog of plants and tracks the ones in your garden.

Run without arguments to open the interactive terminal UI, or use the
subcommands for scripting. Every subcommand accepts --json and --quiet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := launcher.Launch(cmd.Context()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return cli.Exit(cli.ExitError, err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(plant.PlantCmd())
	rootCmd.AddCommand(garden.GardenCmd())
	rootCmd.AddCommand(catalog.SeedCmd())
	rootCmd.AddCommand(catalog.SearchCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	// Commands report their own failures; anything else is a cobra usage error
	var coded *cli.CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return cli.ExitUsage
}
