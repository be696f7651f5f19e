package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// GetLineupsForBlock retrieves all lineups on a block
func (d *DB) GetLineupsForBlock(ctx context.Context, blockID string) ([]db.Lineup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, block_id, boat_id, notes
		FROM lineup
		WHERE block_id = $1
		ORDER BY id
	`, blockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lineups: %w", err)
	}
	defer rows.Close()

	var lineups []db.Lineup
	for rows.Next() {
		var l db.Lineup
		var notes *string
		if err := rows.Scan(&l.ID, &l.BlockID, &l.BoatID, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan lineup: %w", err)
		}
		if notes != nil {
			l.Notes = *notes
		}
		lineups = append(lineups, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lineups: %w", err)
	}

	return lineups, nil
}

// SaveLineups applies a desired-state diff for one block in a single
// transaction: deletes first, then in-place updates with full seat
// replacement, then creates. Seat uniqueness is additionally guarded by the
// (lineup_id, position) and (lineup_id, athlete_id) constraints.
func (d *DB) SaveLineups(ctx context.Context, blockID string, create, update []db.LineupWithSeats, deleteIDs []string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, lineupID := range deleteIDs {
		if _, err := tx.Exec(ctx, `DELETE FROM seat_assignment WHERE lineup_id = $1`, lineupID); err != nil {
			return fmt.Errorf("failed to delete seats: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM lineup WHERE id = $1 AND block_id = $2`, lineupID, blockID); err != nil {
			return fmt.Errorf("failed to delete lineup: %w", err)
		}
	}

	for _, lineup := range update {
		tag, err := tx.Exec(ctx, `
			UPDATE lineup SET boat_id = $3, notes = $4
			WHERE id = $1 AND block_id = $2
		`, lineup.Lineup.ID, blockID, lineup.Lineup.BoatID, lineup.Lineup.Notes)
		if err != nil {
			return fmt.Errorf("failed to update lineup: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return db.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM seat_assignment WHERE lineup_id = $1`, lineup.Lineup.ID); err != nil {
			return fmt.Errorf("failed to clear seats: %w", err)
		}
		if err := insertSeats(ctx, tx, lineup.Seats); err != nil {
			return err
		}
	}

	for _, lineup := range create {
		_, err := tx.Exec(ctx, `
			INSERT INTO lineup (id, block_id, boat_id, notes)
			VALUES ($1, $2, $3, $4)
		`, lineup.Lineup.ID, blockID, lineup.Lineup.BoatID, lineup.Lineup.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert lineup: %w", err)
		}
		if err := insertSeats(ctx, tx, lineup.Seats); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertSeats(ctx context.Context, tx pgx.Tx, seats []db.Seat) error {
	for _, seat := range seats {
		_, err := tx.Exec(ctx, `
			INSERT INTO seat_assignment (id, lineup_id, position, side, athlete_id)
			VALUES ($1, $2, $3, $4, $5)
		`, seat.ID, seat.LineupID, seat.Position, seat.Side, seat.AthleteID)
		if err != nil {
			return fmt.Errorf("failed to insert seat: %w", err)
		}
	}
	return nil
}

// GetTemplate retrieves one lineup template scoped to a team
func (d *DB) GetTemplate(ctx context.Context, teamID, templateID string) (*db.LineupTemplate, error) {
	var t db.LineupTemplate
	err := d.pool.QueryRow(ctx, `
		SELECT id, team_id, name, boat_class, default_boat_id
		FROM lineup_template
		WHERE id = $1 AND team_id = $2
	`, templateID, teamID).Scan(&t.ID, &t.TeamID, &t.Name, &t.BoatClass, &t.DefaultBoatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query template: %w", err)
	}
	return &t, nil
}

// ListTemplateSeats retrieves a template's seats in position order
func (d *DB) ListTemplateSeats(ctx context.Context, templateID string) ([]db.TemplateSeat, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, template_id, position, side, athlete_id
		FROM template_seat
		WHERE template_id = $1
		ORDER BY position
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query template seats: %w", err)
	}
	defer rows.Close()

	var seats []db.TemplateSeat
	for rows.Next() {
		var s db.TemplateSeat
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.Position, &s.Side, &s.AthleteID); err != nil {
			return nil, fmt.Errorf("failed to scan template seat: %w", err)
		}
		seats = append(seats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template seats: %w", err)
	}

	return seats, nil
}
