// Package catalog holds the commands that feed the plant catalog: dataset
// seeding and remote image search.
package catalog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	"github.com/thenoetrevino/sprout/internal/seed"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import plants from a JSON dataset",
		Long: `Import plants from a JSON dataset into the catalog. Plants already in the
catalog are left untouched. Without --file the configured seed file is used,
or the bundled catalog when none is configured.

Examples:
  sprout seed
  sprout seed --file ./my-plants.json --json
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runSeed)),
	}

	cmd.Flags().String("file", "", "Path to a JSON plant dataset")
	cli.AddOutputFlags(cmd)

	return cmd
}

// seedResult is the output of seed
type seedResult struct {
	Source   string `json:"source"`
	Inserted int    `json:"inserted"`
	Total    int    `json:"total"`
}

func (r seedResult) String() string {
	return fmt.Sprintf("Imported %d new plants from %s (%d in catalog)", r.Inserted, r.Source, r.Total)
}

func runSeed(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	path := args.GetString("file", c.App.Config().SeedFile)

	inserted, err := seed.Run(ctx, c.App.PlantService, path)
	if err != nil {
		return nil, err
	}

	total, err := c.App.PlantService.CountPlants(ctx)
	if err != nil {
		return nil, err
	}

	source := path
	if source == "" {
		source = "bundled catalog"
	}
	return seedResult{Source: source, Inserted: inserted, Total: total}, nil
}
