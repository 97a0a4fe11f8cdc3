package plant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	"github.com/thenoetrevino/sprout/internal/models"
)

// ShowCmd returns the plant show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <plant-id>",
		Short: "Show a plant and whether it is in the garden",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runShow)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

// showResult is the output of plant show
type showResult struct {
	Plant    *models.Plant          `json:"plant"`
	Planted  bool                   `json:"planted"`
	Planting *models.GardenPlanting `json:"planting,omitempty"`
}

func (r showResult) GetID() string {
	return r.Plant.ID
}

func (r showResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", r.Plant.Name, r.Plant.ID)
	fmt.Fprintf(&b, "  Grow zone: %d\n", r.Plant.GrowZoneNumber)
	fmt.Fprintf(&b, "  Watering:  every %d days\n", r.Plant.WateringInterval)
	if r.Planted {
		fmt.Fprintf(&b, "  Planted:   %s\n", r.Planting.PlantDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "  Watered:   %s\n", r.Planting.LastWateringDate.Format("2006-01-02"))
	} else {
		b.WriteString("  Not in your garden\n")
	}
	if r.Plant.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Plant.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	plantID, err := handler.ParsePlantID(args.Args)
	if err != nil {
		return nil, err
	}

	p, err := c.App.PlantService.FindPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}

	result := showResult{Plant: p}
	planting, err := c.App.GardenService.GetGardenPlanting(ctx, plantID)
	switch {
	case err == nil:
		result.Planted = true
		result.Planting = planting
	case errors.Is(err, models.ErrNotPlanted):
	default:
		return nil, err
	}

	return result, nil
}
