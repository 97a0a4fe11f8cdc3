package garden

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	"github.com/thenoetrevino/sprout/internal/models"
)

// now is replaced in tests
var now = time.Now

// ListCmd returns the garden list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the plants in your garden",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type gardenRow struct {
	PlantID      string    `json:"plant_id"`
	Name         string    `json:"name"`
	PlantDate    time.Time `json:"plant_date"`
	LastWatering time.Time `json:"last_watering"`
	NeedsWater   bool      `json:"needs_water"`
}

// listResult is the output of garden list
type listResult struct {
	Plantings []gardenRow `json:"plantings"`
}

func (r listResult) GetIDs() []string {
	ids := make([]string, len(r.Plantings))
	for i, row := range r.Plantings {
		ids[i] = row.PlantID
	}
	return ids
}

func (r listResult) String() string {
	if len(r.Plantings) == 0 {
		return "Your garden is empty"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d plants in your garden:\n\n", len(r.Plantings))
	for _, row := range r.Plantings {
		mark := " "
		if row.NeedsWater {
			mark = "!"
		}
		fmt.Fprintf(&b, "  %s [%s] %s, planted %s, watered %s\n", mark, row.PlantID, row.Name,
			row.PlantDate.Format("2006-01-02"), row.LastWatering.Format("2006-01-02"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func toRows(gardens []*models.PlantAndGardenPlanting, at time.Time) []gardenRow {
	rows := make([]gardenRow, 0, len(gardens))
	for _, g := range gardens {
		rows = append(rows, gardenRow{
			PlantID:      g.Plant.ID,
			Name:         g.Plant.Name,
			PlantDate:    g.Planting.PlantDate,
			LastWatering: g.Planting.LastWateringDate,
			NeedsWater:   g.NeedsWater(at),
		})
	}
	return rows
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	gardens, err := c.App.GardenService.ListPlantedGardens(ctx)
	if err != nil {
		return nil, err
	}
	return listResult{Plantings: toRows(gardens, now())}, nil
}
