package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// GetEntry retrieves one regatta entry scoped to a team
func (d *DB) GetEntry(ctx context.Context, teamID, entryID string) (*db.Entry, error) {
	var e db.Entry
	err := d.pool.QueryRow(ctx, `
		SELECT id, team_id, regatta_id, event_name, boat_class
		FROM entry
		WHERE id = $1 AND team_id = $2
	`, entryID, teamID).Scan(&e.ID, &e.TeamID, &e.RegattaID, &e.EventName, &e.BoatClass)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	return &e, nil
}

// GetEntryLineup retrieves the lineup for an entry, if any
func (d *DB) GetEntryLineup(ctx context.Context, entryID string) (*db.EntryLineup, error) {
	var l db.EntryLineup
	var notes *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, entry_id, boat_id, notes
		FROM entry_lineup
		WHERE entry_id = $1
	`, entryID).Scan(&l.ID, &l.EntryID, &l.BoatID, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query entry lineup: %w", err)
	}
	if notes != nil {
		l.Notes = *notes
	}
	return &l, nil
}

// ReplaceEntryLineup fully replaces an entry's lineup and seats in one
// transaction
func (d *DB) ReplaceEntryLineup(ctx context.Context, entryID string, lineup db.EntryLineupWithSeats) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM entry_seat
		WHERE entry_lineup_id IN (SELECT id FROM entry_lineup WHERE entry_id = $1)
	`, entryID); err != nil {
		return fmt.Errorf("failed to clear entry seats: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM entry_lineup WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("failed to clear entry lineup: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO entry_lineup (id, entry_id, boat_id, notes)
		VALUES ($1, $2, $3, $4)
	`, lineup.Lineup.ID, entryID, lineup.Lineup.BoatID, lineup.Lineup.Notes); err != nil {
		return fmt.Errorf("failed to insert entry lineup: %w", err)
	}

	for _, seat := range lineup.Seats {
		_, err := tx.Exec(ctx, `
			INSERT INTO entry_seat (id, entry_lineup_id, position, side, athlete_id)
			VALUES ($1, $2, $3, $4, $5)
		`, seat.ID, seat.EntryLineupID, seat.Position, seat.Side, seat.AthleteID)
		if err != nil {
			return fmt.Errorf("failed to insert entry seat: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
