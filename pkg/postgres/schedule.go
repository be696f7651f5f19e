package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// GetBlock retrieves one practice block scoped to a team
func (d *DB) GetBlock(ctx context.Context, teamID, blockID string) (*db.Block, error) {
	var b db.Block
	var title *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, practice_id, team_id, type, title
		FROM block
		WHERE id = $1 AND team_id = $2
	`, blockID, teamID).Scan(&b.ID, &b.PracticeID, &b.TeamID, &b.Type, &title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query block: %w", err)
	}
	if title != nil {
		b.Title = *title
	}
	return &b, nil
}

// GetPractice retrieves one practice scoped to a team
func (d *DB) GetPractice(ctx context.Context, teamID, practiceID string) (*db.Practice, error) {
	var p db.Practice
	var date time.Time
	var title *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, team_id, date, title
		FROM practice
		WHERE id = $1 AND team_id = $2
	`, practiceID, teamID).Scan(&p.ID, &p.TeamID, &date, &title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query practice: %w", err)
	}
	p.Date = date.Format("2006-01-02")
	if title != nil {
		p.Title = *title
	}
	return &p, nil
}

// InsertPractices inserts a batch of practices in one transaction
func (d *DB) InsertPractices(ctx context.Context, practices []db.Practice) error {
	if len(practices) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, practice := range practices {
		_, err := tx.Exec(ctx, `
			INSERT INTO practice (id, team_id, date, title)
			VALUES ($1, $2, $3, $4)
		`, practice.ID, practice.TeamID, practice.Date, practice.Title)
		if err != nil {
			return fmt.Errorf("failed to insert practice: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
