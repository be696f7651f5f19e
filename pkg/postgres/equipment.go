package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// GetEquipment retrieves one equipment record scoped to a team
func (d *DB) GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, team_id, name, type, boat_class, manual_unavailable, manual_note, last_inspected_at
		FROM equipment
		WHERE id = $1 AND team_id = $2
	`, equipmentID, teamID)

	eq, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	return eq, nil
}

// ListEquipment retrieves a team's whole fleet
func (d *DB) ListEquipment(ctx context.Context, teamID string) ([]db.Equipment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, team_id, name, type, boat_class, manual_unavailable, manual_note, last_inspected_at
		FROM equipment
		WHERE team_id = $1
		ORDER BY name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var fleet []db.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		fleet = append(fleet, *eq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment: %w", err)
	}

	return fleet, nil
}

// UpdateEquipmentInspection stamps the last inspection time
func (d *DB) UpdateEquipmentInspection(ctx context.Context, teamID, equipmentID string, inspectedAt time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE equipment SET last_inspected_at = $3
		WHERE id = $1 AND team_id = $2
	`, equipmentID, teamID, inspectedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to update inspection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// UpdateEquipmentManualFlag sets the manual-override flag and note
func (d *DB) UpdateEquipmentManualFlag(ctx context.Context, teamID, equipmentID string, unavailable bool, note string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE equipment SET manual_unavailable = $3, manual_note = $4
		WHERE id = $1 AND team_id = $2
	`, equipmentID, teamID, unavailable, note)
	if err != nil {
		return fmt.Errorf("failed to update manual flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListOpenDamageReports retrieves the open reports for one piece of equipment
func (d *DB) ListOpenDamageReports(ctx context.Context, equipmentID string) ([]db.DamageReport, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, equipment_id, severity, status, location, description, photo_url, created_at, resolved_at
		FROM damage_report
		WHERE equipment_id = $1 AND status = 'OPEN'
		ORDER BY created_at
	`, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query damage reports: %w", err)
	}
	defer rows.Close()

	return collectDamageReports(rows)
}

// ListOpenDamageReportsForTeam retrieves every open report across a team's fleet
func (d *DB) ListOpenDamageReportsForTeam(ctx context.Context, teamID string) ([]db.DamageReport, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT r.id, r.equipment_id, r.severity, r.status, r.location, r.description, r.photo_url, r.created_at, r.resolved_at
		FROM damage_report r
		JOIN equipment e ON e.id = r.equipment_id
		WHERE e.team_id = $1 AND r.status = 'OPEN'
		ORDER BY r.created_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query damage reports: %w", err)
	}
	defer rows.Close()

	return collectDamageReports(rows)
}

// InsertDamageReport inserts a new damage report
func (d *DB) InsertDamageReport(ctx context.Context, report *db.DamageReport) error {
	var photoURL *string
	if report.PhotoURL != "" {
		photoURL = &report.PhotoURL
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO damage_report (id, equipment_id, severity, status, location, description, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, report.ID, report.EquipmentID, report.Severity, report.Status, report.Location, report.Description, photoURL, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert damage report: %w", err)
	}
	return nil
}

// GetDamageReport retrieves one damage report scoped to a team
func (d *DB) GetDamageReport(ctx context.Context, teamID, reportID string) (*db.DamageReport, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT r.id, r.equipment_id, r.severity, r.status, r.location, r.description, r.photo_url, r.created_at, r.resolved_at
		FROM damage_report r
		JOIN equipment e ON e.id = r.equipment_id
		WHERE r.id = $1 AND e.team_id = $2
	`, reportID, teamID)

	report, err := scanDamageReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query damage report: %w", err)
	}
	return report, nil
}

// ResolveDamageReport marks a report resolved
func (d *DB) ResolveDamageReport(ctx context.Context, teamID, reportID string, resolvedAt time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE damage_report r SET status = 'RESOLVED', resolved_at = $3
		FROM equipment e
		WHERE r.id = $1 AND r.equipment_id = e.id AND e.team_id = $2
	`, reportID, teamID, resolvedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to resolve damage report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// GetTeamSettings retrieves a team's readiness thresholds
func (d *DB) GetTeamSettings(ctx context.Context, teamID string) (*db.TeamSettings, error) {
	var s db.TeamSettings
	err := d.pool.QueryRow(ctx, `
		SELECT team_id, inspect_soon_days, needs_attention_days, out_of_service_days
		FROM team_settings
		WHERE team_id = $1
	`, teamID).Scan(&s.TeamID, &s.InspectSoonDays, &s.NeedsAttentionDays, &s.OutOfServiceDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query team settings: %w", err)
	}
	return &s, nil
}

func scanEquipment(row pgx.Row) (*db.Equipment, error) {
	var eq db.Equipment
	var boatClass, manualNote *string
	var lastInspectedAt *time.Time
	if err := row.Scan(&eq.ID, &eq.TeamID, &eq.Name, &eq.Type, &boatClass, &eq.ManualUnavailable, &manualNote, &lastInspectedAt); err != nil {
		return nil, err
	}
	if boatClass != nil {
		eq.BoatClass = *boatClass
	}
	if manualNote != nil {
		eq.ManualNote = *manualNote
	}
	eq.LastInspectedAt = lastInspectedAt
	return &eq, nil
}

func scanDamageReport(row pgx.Row) (*db.DamageReport, error) {
	var r db.DamageReport
	var location, description, photoURL *string
	if err := row.Scan(&r.ID, &r.EquipmentID, &r.Severity, &r.Status, &location, &description, &photoURL, &r.CreatedAt, &r.ResolvedAt); err != nil {
		return nil, err
	}
	if location != nil {
		r.Location = *location
	}
	if description != nil {
		r.Description = *description
	}
	if photoURL != nil {
		r.PhotoURL = *photoURL
	}
	return &r, nil
}

func collectDamageReports(rows pgx.Rows) ([]db.DamageReport, error) {
	var reports []db.DamageReport
	for rows.Next() {
		report, err := scanDamageReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan damage report: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating damage reports: %w", err)
	}
	return reports, nil
}
