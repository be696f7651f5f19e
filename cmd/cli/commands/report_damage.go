package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stroke-rate/boathouse/pkg/core/services"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// ReportDamageCmd creates the reportDamage command
func ReportDamageCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportDamage <team_id> <equipment_id> <severity> <description>",
		Short: "File a damage report (severity: MINOR, MODERATE or CRITICAL)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			equipmentID := args[1]
			severity := db.Severity(args[2])
			description := args[3]
			location, _ := cmd.Flags().GetString("location")

			report, err := services.ReportDamage(app.Ctx, app.Store, app.Logger, teamID, equipmentID, services.DamageInput{
				Severity:    severity,
				Location:    location,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Damage report %s filed (%s)\n", report.ID, report.Severity)
			return nil
		},
	}

	cmd.Flags().String("location", "", "Where on the equipment the damage is")

	return cmd
}
