package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stroke-rate/boathouse/pkg/core/services"
)

// InspectCmd creates the inspect command
func InspectCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <team_id> <equipment_id>",
		Short: "Record a completed inspection for a piece of equipment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			equipmentID := args[1]

			err := services.RecordInspection(app.Ctx, app.Store, app.Logger, teamID, equipmentID, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Printf("✓ Inspection recorded for %s\n", equipmentID)
			return nil
		},
	}
}
