// Package plant holds the catalog commands.
package plant

import (
	"github.com/spf13/cobra"
)

// PlantCmd returns the plant parent command
func PlantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Browse the plant catalog",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
