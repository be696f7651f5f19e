package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/readiness"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// EquipmentReadiness pairs one equipment record with its derived status
type EquipmentReadiness struct {
	Equipment db.Equipment
	Result    readiness.Result
}

// FleetHealthResult is the dashboard view of a team's fleet
type FleetHealthResult struct {
	Counts    map[readiness.Status]int
	Equipment []EquipmentReadiness
}

// FleetHealthStore defines the database operations needed to assess a fleet
type FleetHealthStore interface {
	ListEquipment(ctx context.Context, teamID string) ([]db.Equipment, error)
	ListOpenDamageReportsForTeam(ctx context.Context, teamID string) ([]db.DamageReport, error)
	GetTeamSettings(ctx context.Context, teamID string) (*db.TeamSettings, error)
}

// FleetHealth computes readiness for every piece of a team's equipment and
// tallies the four status buckets. Readiness is derived on every read;
// nothing here is cached or stored.
func FleetHealth(
	ctx context.Context,
	store FleetHealthStore,
	logger *zap.Logger,
	teamID string,
	now time.Time,
) (*FleetHealthResult, error) {
	logger.Debug("Computing fleet health", zap.String("team_id", teamID))

	thresholds, err := teamThresholds(ctx, store, logger, teamID)
	if err != nil {
		return nil, err
	}

	equipment, err := store.ListEquipment(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	openReports, err := store.ListOpenDamageReportsForTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch damage reports: %w", err)
	}

	severitiesByEquipment := make(map[string][]readiness.Severity)
	for _, report := range openReports {
		severitiesByEquipment[report.EquipmentID] = append(
			severitiesByEquipment[report.EquipmentID],
			readiness.Severity(report.Severity),
		)
	}

	items := make([]EquipmentReadiness, len(equipment))
	fleet := make([]readiness.FleetItem, len(equipment))
	for i, eq := range equipment {
		fleet[i] = readiness.FleetItem{
			Equipment:      readinessEquipment(&eq),
			OpenSeverities: severitiesByEquipment[eq.ID],
		}
		items[i] = EquipmentReadiness{
			Equipment: eq,
			Result:    readiness.Compute(fleet[i].Equipment, fleet[i].OpenSeverities, thresholds, now),
		}
	}

	counts := readiness.AggregateFleetHealth(fleet, thresholds, now)

	logger.Info("Fleet health computed",
		zap.String("team_id", teamID),
		zap.Int("fleet_size", len(equipment)),
		zap.Int("out_of_service", counts[readiness.StatusOutOfService]))

	return &FleetHealthResult{Counts: counts, Equipment: items}, nil
}

// GetEquipmentReadiness computes the derived status for a single piece of
// equipment, for detail pages
func GetEquipmentReadiness(
	ctx context.Context,
	store EquipmentDetailStore,
	logger *zap.Logger,
	teamID string,
	equipmentID string,
	now time.Time,
) (*EquipmentReadiness, error) {
	thresholds, err := teamThresholds(ctx, store, logger, teamID)
	if err != nil {
		return nil, err
	}

	eq, err := store.GetEquipment(ctx, teamID, equipmentID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "equipment", ID: equipmentID}
		}
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	reports, err := store.ListOpenDamageReports(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch damage reports: %w", err)
	}

	result := readiness.Compute(readinessEquipment(eq), reportSeverities(reports), thresholds, now)
	logger.Debug("Equipment readiness computed",
		zap.String("equipment_id", equipmentID),
		zap.String("status", string(result.Status)))

	return &EquipmentReadiness{Equipment: *eq, Result: result}, nil
}

// EquipmentDetailStore defines the database operations for one-boat lookups
type EquipmentDetailStore interface {
	GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error)
	ListOpenDamageReports(ctx context.Context, equipmentID string) ([]db.DamageReport, error)
	GetTeamSettings(ctx context.Context, teamID string) (*db.TeamSettings, error)
}

// teamThresholds loads the team's configured thresholds, falling back to
// the defaults when the team has never configured any
func teamThresholds(ctx context.Context, store interface {
	GetTeamSettings(ctx context.Context, teamID string) (*db.TeamSettings, error)
}, logger *zap.Logger, teamID string) (readiness.Thresholds, error) {
	settings, err := store.GetTeamSettings(ctx, teamID)
	if err != nil {
		if err == db.ErrNotFound {
			logger.Debug("No team settings found, using default thresholds", zap.String("team_id", teamID))
			return readiness.DefaultThresholds(), nil
		}
		return readiness.Thresholds{}, fmt.Errorf("failed to fetch team settings: %w", err)
	}
	return readiness.Thresholds{
		InspectSoonDays:    settings.InspectSoonDays,
		NeedsAttentionDays: settings.NeedsAttentionDays,
		OutOfServiceDays:   settings.OutOfServiceDays,
	}, nil
}
