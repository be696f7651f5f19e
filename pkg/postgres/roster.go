package postgres

import (
	"context"
	"fmt"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// ListAthletes retrieves a team's active roster
func (d *DB) ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, team_id, first_name, last_name, active
		FROM athlete
		WHERE team_id = $1 AND active
		ORDER BY last_name, first_name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes: %w", err)
	}
	defer rows.Close()

	var athletes []db.Athlete
	for rows.Next() {
		var a db.Athlete
		if err := rows.Scan(&a.ID, &a.TeamID, &a.FirstName, &a.LastName, &a.Active); err != nil {
			return nil, fmt.Errorf("failed to scan athlete: %w", err)
		}
		athletes = append(athletes, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating athletes: %w", err)
	}

	return athletes, nil
}

// ReplaceBlockAssignments fully replaces a block's roster in one transaction
func (d *DB) ReplaceBlockAssignments(ctx context.Context, blockID string, assignments []db.BlockAssignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM block_assignment WHERE block_id = $1`, blockID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, assignment := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO block_assignment (id, block_id, athlete_id)
			VALUES ($1, $2, $3)
		`, assignment.ID, assignment.BlockID, assignment.AthleteID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
