package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stroke-rate/boathouse/pkg/core/readiness"
	"github.com/stroke-rate/boathouse/pkg/core/services"
)

// FleetStatusCmd creates the fleetStatus command
func FleetStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fleetStatus <team_id>",
		Short: "Show the derived readiness status of a team's fleet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]

			result, err := services.FleetHealth(app.Ctx, app.Store, app.Logger, teamID, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Printf("\nFleet health for team %s:\n\n", teamID)
			for _, status := range readiness.AllStatuses {
				fmt.Printf("  %-16s %d\n", status, result.Counts[status])
			}

			fmt.Printf("\nEquipment:\n")
			for _, item := range result.Equipment {
				fmt.Printf("  %-24s %-16s %s\n",
					item.Equipment.Name,
					item.Result.Status,
					strings.Join(item.Result.Reasons, "; "))
			}
			fmt.Println()

			return nil
		},
	}
}
