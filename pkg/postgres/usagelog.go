package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// InsertUsageLog records one boat usage
func (d *DB) InsertUsageLog(ctx context.Context, log *db.UsageLog) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO equipment_usage_log (id, equipment_id, team_id, practice_id, lineup_id, used_on)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, log.ID, log.EquipmentID, log.TeamID, log.PracticeID, log.LineupID, log.UsedOn)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

// DeleteUsageLogs removes the logs tying one boat to one practice
func (d *DB) DeleteUsageLogs(ctx context.Context, equipmentID, practiceID string) error {
	_, err := d.pool.Exec(ctx, `
		DELETE FROM equipment_usage_log
		WHERE equipment_id = $1 AND practice_id = $2
	`, equipmentID, practiceID)
	if err != nil {
		return fmt.Errorf("failed to delete usage logs: %w", err)
	}
	return nil
}

// ListUsageLogs retrieves a team's usage history
func (d *DB) ListUsageLogs(ctx context.Context, teamID string) ([]db.UsageLog, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, equipment_id, team_id, practice_id, lineup_id, used_on
		FROM equipment_usage_log
		WHERE team_id = $1
		ORDER BY used_on
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage logs: %w", err)
	}
	defer rows.Close()

	var logs []db.UsageLog
	for rows.Next() {
		var l db.UsageLog
		var usedOn time.Time
		if err := rows.Scan(&l.ID, &l.EquipmentID, &l.TeamID, &l.PracticeID, &l.LineupID, &usedOn); err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		l.UsedOn = usedOn.Format("2006-01-02")
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage logs: %w", err)
	}

	return logs, nil
}
