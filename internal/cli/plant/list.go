package plant

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	"github.com/thenoetrevino/sprout/internal/models"
)

// ListCmd returns the plant list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog plants",
		Long: `List the plants in the catalog, optionally only those suited to one
USDA grow zone.

Examples:
  # Every plant
  sprout plant list

  # Plants for zone 9, ids only
  sprout plant list --zone 9 --quiet
`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().Int("zone", 0, "Only plants for this grow zone (1-13)")
	cli.AddOutputFlags(cmd)

	cmd.RunE = handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
		_, _, err := handler.NewFlagParser(cmd).ParseZone("zone")
		return err
	})

	return cmd
}

// listResult is the output of plant list
type listResult struct {
	Zone   int             `json:"zone,omitempty"`
	Plants []*models.Plant `json:"plants"`
}

func (r listResult) GetIDs() []string {
	ids := make([]string, len(r.Plants))
	for i, p := range r.Plants {
		ids[i] = p.ID
	}
	return ids
}

func (r listResult) String() string {
	if len(r.Plants) == 0 {
		if r.Zone != 0 {
			return fmt.Sprintf("No plants found for grow zone %d", r.Zone)
		}
		return "No plants found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d plants:\n\n", len(r.Plants))
	for _, p := range r.Plants {
		fmt.Fprintf(&b, "  [%s] %s (zone %d, water every %d days)\n", p.ID, p.Name, p.GrowZoneNumber, p.WateringInterval)
	}
	return strings.TrimRight(b.String(), "\n")
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	zone, filtered, err := handler.NewFlagParser(args.GetCmd()).ParseZone("zone")
	if err != nil {
		return nil, err
	}

	var plants []*models.Plant
	if filtered {
		plants, err = c.App.PlantService.ListPlantsInGrowZone(ctx, zone)
	} else {
		plants, err = c.App.PlantService.ListPlants(ctx)
	}
	if err != nil {
		return nil, err
	}
	if plants == nil {
		plants = []*models.Plant{}
	}

	return listResult{Zone: zone, Plants: plants}, nil
}
