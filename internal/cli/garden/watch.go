package garden

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
)

// WatchCmd returns the garden watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <plant-id>",
		Short: "Print whether a plant is planted, and again on every change",
		Long: `Print whether a plant is in your garden, then print again whenever that
changes. Changes made by other sprout processes show up while the daemon
is running.

Examples:
  # Follow until interrupted
  sprout garden watch solanum-lycopersicum

  # Current state only
  sprout garden watch solanum-lycopersicum --count 1 --quiet
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().Int("count", 0, "Exit after this many updates (0 = until interrupted)")
	cli.AddOutputFlags(cmd)

	return cmd
}

type watchUpdate struct {
	PlantID string `json:"plant_id"`
	Planted bool   `json:"planted"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := cli.FormatterFromCmd(cmd)

	plantID, err := handler.ParsePlantID(args)
	if err != nil {
		return formatter.Fail(err)
	}
	count, _ := cmd.Flags().GetInt("count")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing CLI", "error", err)
		}
	}()

	// Unknown ids would otherwise watch "false" forever
	if _, err := cliInstance.App.PlantService.FindPlant(ctx, plantID); err != nil {
		return formatter.Fail(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := cliInstance.App.ListenForChanges(ctx); err != nil {
			slog.Warn("not following remote changes", "error", err)
		}
	}()

	encoder := json.NewEncoder(os.Stdout)
	seen := 0
	var last *bool
	for planted := range cliInstance.App.GardenService.IsPlanted(ctx, plantID) {
		// Waterings re-run the query without changing the answer
		if last != nil && *last == planted {
			continue
		}
		last = &planted

		switch {
		case formatter.Quiet:
			fmt.Println(planted)
		case formatter.JSON:
			if err := encoder.Encode(watchUpdate{PlantID: plantID, Planted: planted}); err != nil {
				return err
			}
		case planted:
			fmt.Printf("%s: planted\n", plantID)
		default:
			fmt.Printf("%s: not planted\n", plantID)
		}

		seen++
		if count > 0 && seen >= count {
			return nil
		}
	}

	return nil
}
