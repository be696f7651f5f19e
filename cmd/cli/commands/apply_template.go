package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stroke-rate/boathouse/pkg/core/services"
)

// ApplyTemplateCmd creates the applyTemplate command
func ApplyTemplateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "applyTemplate <team_id> <template_id> <block_id>",
		Short: "Stamp a saved lineup template onto an empty water block",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			templateID := args[1]
			blockID := args[2]

			result, err := services.ApplyTemplate(app.Ctx, app.Store, app.Sink, app.Logger, teamID, templateID, blockID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Template applied to block %s\n\n", blockID)
			fmt.Printf("Lineup ID:  %s\n", result.Lineup.Lineup.ID)
			if result.Lineup.Lineup.BoatID != nil {
				fmt.Printf("Boat:       %s\n", *result.Lineup.Lineup.BoatID)
			} else {
				fmt.Printf("Boat:       (none assigned)\n")
			}
			fmt.Printf("Seats:      %d\n", len(result.Lineup.Seats))

			if len(result.Warnings) > 0 {
				fmt.Printf("\nWarnings:\n")
				for _, warning := range result.Warnings {
					fmt.Printf("  - %s: %s\n", warning.Code, warning.Message)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
