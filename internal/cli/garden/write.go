package garden

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	gardenservice "github.com/thenoetrevino/sprout/internal/services/garden"
)

// writeOp runs one garden write through the use case.
type writeOp func(svc gardenservice.Service, ctx context.Context, plantID string) gardenservice.Result

// AddCmd returns the garden add subcommand
func AddCmd() *cobra.Command {
	return writeCmd("add <plant-id>", "Add a plant to your garden", `Add a plant to your garden. Adding a plant that is already planted
succeeds and changes nothing.

Examples:
  sprout garden add solanum-lycopersicum
  sprout garden add solanum-lycopersicum --json
`, gardenservice.Service.CreateGardenPlanting)
}

// RemoveCmd returns the garden remove subcommand
func RemoveCmd() *cobra.Command {
	return writeCmd("remove <plant-id>", "Remove a plant from your garden", `Remove a plant from your garden. Removing a plant that is not planted
succeeds and changes nothing.
`, gardenservice.Service.RemoveGardenPlanting)
}

// WaterCmd returns the garden water subcommand
func WaterCmd() *cobra.Command {
	return writeCmd("water <plant-id>", "Record that a planted plant was watered", "",
		gardenservice.Service.WaterGardenPlanting)
}

func writeCmd(use, short, long string, op writeOp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
	}

	cli.AddOutputFlags(cmd)

	cmd.RunE = handler.SimpleCommand(handler.HandlerFunc(
		func(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
			plantID, err := handler.ParsePlantID(args.Args)
			if err != nil {
				return nil, err
			}
			res := op(c.App.GardenService, ctx, plantID)
			if !res.OK() {
				return nil, res.Err
			}
			return writeResult{PlantID: res.PlantID, Action: res.Action, Planted: res.Action != gardenservice.ActionRemoved}, nil
		}))

	return cmd
}

// writeResult is the output of the garden write commands
type writeResult struct {
	PlantID string               `json:"plant_id"`
	Action  gardenservice.Action `json:"action"`
	Planted bool                 `json:"planted"`
}

func (r writeResult) GetID() string {
	return r.PlantID
}

func (r writeResult) String() string {
	switch r.Action {
	case gardenservice.ActionPlanted:
		return fmt.Sprintf("Planted %s", r.PlantID)
	case gardenservice.ActionRemoved:
		return fmt.Sprintf("Removed %s from your garden", r.PlantID)
	default:
		return fmt.Sprintf("Watered %s", r.PlantID)
	}
}
