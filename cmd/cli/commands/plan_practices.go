package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stroke-rate/boathouse/pkg/core/services"
)

// PlanPracticesCmd creates the planPractices command
func PlanPracticesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planPractices <team_id> <rrule> <count>",
		Short: "Create practices from a recurrence rule (e.g. FREQ=WEEKLY;BYDAY=TU,TH)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			rule := args[1]
			count, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}
			title, _ := cmd.Flags().GetString("title")

			result, err := services.PlanPractices(app.Ctx, app.Store, app.Logger, teamID, title, rule, time.Now().UTC(), count)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Planned %d practices:\n\n", len(result.Practices))
			for i, practice := range result.Practices {
				fmt.Printf("  %2d. %s\n", i+1, practice.Date)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("title", "Practice", "Title for the created practices")

	return cmd
}
