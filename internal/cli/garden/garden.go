// Package garden holds the commands that change and observe the user's garden.
package garden

import (
	"github.com/spf13/cobra"
)

// GardenCmd returns the garden parent command
func GardenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garden",
		Short: "Manage your garden",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RemoveCmd())
	cmd.AddCommand(WaterCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(WatchCmd())

	return cmd
}
