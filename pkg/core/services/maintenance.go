package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// MaintenanceStore defines the equipment lifecycle operations that feed the
// readiness computation
type MaintenanceStore interface {
	GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error)
	UpdateEquipmentInspection(ctx context.Context, teamID, equipmentID string, inspectedAt time.Time) error
	UpdateEquipmentManualFlag(ctx context.Context, teamID, equipmentID string, unavailable bool, note string) error
	InsertDamageReport(ctx context.Context, report *db.DamageReport) error
	GetDamageReport(ctx context.Context, teamID, reportID string) (*db.DamageReport, error)
	ResolveDamageReport(ctx context.Context, teamID, reportID string, resolvedAt time.Time) error
}

// DamageInput describes a new damage report
type DamageInput struct {
	Severity    db.Severity
	Location    string
	Description string
	PhotoURL    string
}

// RecordInspection stamps a completed inspection on a piece of equipment
func RecordInspection(
	ctx context.Context,
	store MaintenanceStore,
	logger *zap.Logger,
	teamID string,
	equipmentID string,
	inspectedAt time.Time,
) error {
	if _, err := store.GetEquipment(ctx, teamID, equipmentID); err != nil {
		if err == db.ErrNotFound {
			return &NotFoundError{Entity: "equipment", ID: equipmentID}
		}
		return fmt.Errorf("failed to fetch equipment: %w", err)
	}

	if err := store.UpdateEquipmentInspection(ctx, teamID, equipmentID, inspectedAt); err != nil {
		return fmt.Errorf("failed to record inspection: %w", err)
	}

	logger.Info("Inspection recorded",
		zap.String("equipment_id", equipmentID),
		zap.Time("inspected_at", inspectedAt))
	return nil
}

// ReportDamage files a new OPEN damage report against a piece of equipment.
// Any team member can file one; readiness reflects it immediately.
func ReportDamage(
	ctx context.Context,
	store MaintenanceStore,
	logger *zap.Logger,
	teamID string,
	equipmentID string,
	input DamageInput,
) (*db.DamageReport, error) {
	if !input.Severity.IsValid() {
		return nil, validationErrorf("invalid severity %q", input.Severity)
	}
	if input.Description == "" {
		return nil, validationErrorf("damage description is required")
	}

	if _, err := store.GetEquipment(ctx, teamID, equipmentID); err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "equipment", ID: equipmentID}
		}
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	report := &db.DamageReport{
		ID:          uuid.New().String(),
		EquipmentID: equipmentID,
		Severity:    input.Severity,
		Status:      db.ReportOpen,
		Location:    input.Location,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := store.InsertDamageReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to insert damage report: %w", err)
	}

	logger.Info("Damage report filed",
		zap.String("equipment_id", equipmentID),
		zap.String("report_id", report.ID),
		zap.String("severity", string(report.Severity)))
	return report, nil
}

// ResolveDamage closes an open damage report. Resolved reports become
// historical and stop affecting readiness.
func ResolveDamage(
	ctx context.Context,
	store MaintenanceStore,
	logger *zap.Logger,
	teamID string,
	reportID string,
) error {
	report, err := store.GetDamageReport(ctx, teamID, reportID)
	if err != nil {
		if err == db.ErrNotFound {
			return &NotFoundError{Entity: "damage report", ID: reportID}
		}
		return fmt.Errorf("failed to fetch damage report: %w", err)
	}

	if report.Status == db.ReportResolved {
		return &ConflictError{Message: fmt.Sprintf("damage report %s is already resolved", reportID)}
	}

	if err := store.ResolveDamageReport(ctx, teamID, reportID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to resolve damage report: %w", err)
	}

	logger.Info("Damage report resolved",
		zap.String("report_id", reportID),
		zap.String("equipment_id", report.EquipmentID))
	return nil
}

// SetManualAvailability toggles the manual-override flag. The note is only
// kept while the override is on.
func SetManualAvailability(
	ctx context.Context,
	store MaintenanceStore,
	logger *zap.Logger,
	teamID string,
	equipmentID string,
	unavailable bool,
	note string,
) error {
	if _, err := store.GetEquipment(ctx, teamID, equipmentID); err != nil {
		if err == db.ErrNotFound {
			return &NotFoundError{Entity: "equipment", ID: equipmentID}
		}
		return fmt.Errorf("failed to fetch equipment: %w", err)
	}

	if !unavailable {
		note = ""
	}

	if err := store.UpdateEquipmentManualFlag(ctx, teamID, equipmentID, unavailable, note); err != nil {
		return fmt.Errorf("failed to update manual availability: %w", err)
	}

	logger.Info("Manual availability updated",
		zap.String("equipment_id", equipmentID),
		zap.Bool("unavailable", unavailable))
	return nil
}
