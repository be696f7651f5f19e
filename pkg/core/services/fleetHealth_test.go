package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/readiness"
	"github.com/stroke-rate/boathouse/pkg/db"
)

func fleetNow() time.Time {
	return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
}

func daysAgo(days int) *time.Time {
	t := fleetNow().AddDate(0, 0, -days)
	return &t
}

func TestFleetHealth_DefaultThresholds(t *testing.T) {
	mock := newMockStore()
	mock.equipment["boat-fresh"] = &db.Equipment{ID: "boat-fresh", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(2)}
	mock.equipment["boat-aging"] = &db.Equipment{ID: "boat-aging", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(16)}
	mock.equipment["boat-stale"] = &db.Equipment{ID: "boat-stale", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(40)}
	mock.equipment["boat-damaged"] = &db.Equipment{ID: "boat-damaged", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(1)}
	mock.openReports["boat-damaged"] = []db.DamageReport{
		{ID: "report-1", EquipmentID: "boat-damaged", Severity: db.SeverityCritical, Status: db.ReportOpen},
	}
	logger := zap.NewNop()

	result, err := FleetHealth(context.Background(), mock, logger, "team-1", fleetNow())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Counts[readiness.StatusReady])
	assert.Equal(t, 1, result.Counts[readiness.StatusInspectSoon])
	assert.Equal(t, 2, result.Counts[readiness.StatusOutOfService])
	assert.Len(t, result.Equipment, 4)

	byID := make(map[string]readiness.Status)
	for _, item := range result.Equipment {
		byID[item.Equipment.ID] = item.Result.Status
	}
	assert.Equal(t, readiness.StatusReady, byID["boat-fresh"])
	assert.Equal(t, readiness.StatusInspectSoon, byID["boat-aging"])
	assert.Equal(t, readiness.StatusOutOfService, byID["boat-stale"])
	assert.Equal(t, readiness.StatusOutOfService, byID["boat-damaged"])
}

func TestFleetHealth_TeamThresholdsOverrideDefaults(t *testing.T) {
	mock := newMockStore()
	mock.teamSettings = &db.TeamSettings{
		TeamID:             "team-1",
		InspectSoonDays:    5,
		NeedsAttentionDays: 8,
		OutOfServiceDays:   12,
	}
	// 16 days stale: OUT_OF_SERVICE on team thresholds, INSPECT_SOON on defaults
	mock.equipment["boat-1"] = &db.Equipment{ID: "boat-1", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(16)}
	logger := zap.NewNop()

	result, err := FleetHealth(context.Background(), mock, logger, "team-1", fleetNow())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Counts[readiness.StatusOutOfService])
}

func TestFleetHealth_OtherTeamsEquipmentExcluded(t *testing.T) {
	mock := newMockStore()
	mock.equipment["boat-ours"] = &db.Equipment{ID: "boat-ours", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(1)}
	mock.equipment["boat-theirs"] = &db.Equipment{ID: "boat-theirs", TeamID: "team-2", Type: db.EquipmentShell, LastInspectedAt: daysAgo(1)}
	logger := zap.NewNop()

	result, err := FleetHealth(context.Background(), mock, logger, "team-1", fleetNow())
	require.NoError(t, err)
	assert.Len(t, result.Equipment, 1)
}

func TestFleetHealth_EmptyFleet(t *testing.T) {
	mock := newMockStore()
	logger := zap.NewNop()

	result, err := FleetHealth(context.Background(), mock, logger, "team-1", fleetNow())
	require.NoError(t, err)
	assert.Empty(t, result.Equipment)
	assert.Len(t, result.Counts, len(readiness.AllStatuses))
}

func TestGetEquipmentReadiness(t *testing.T) {
	mock := newMockStore()
	mock.equipment["boat-1"] = &db.Equipment{ID: "boat-1", TeamID: "team-1", Type: db.EquipmentShell, LastInspectedAt: daysAgo(25)}
	mock.openReports["boat-1"] = []db.DamageReport{
		{ID: "report-1", EquipmentID: "boat-1", Severity: db.SeverityModerate, Status: db.ReportOpen},
	}
	logger := zap.NewNop()

	result, err := GetEquipmentReadiness(context.Background(), mock, logger, "team-1", "boat-1", fleetNow())
	require.NoError(t, err)

	assert.Equal(t, readiness.StatusNeedsAttention, result.Result.Status)
	// Both the open report and the stale inspection contribute
	assert.Len(t, result.Result.Reasons, 2)
}

func TestGetEquipmentReadiness_NotFound(t *testing.T) {
	mock := newMockStore()
	logger := zap.NewNop()

	_, err := GetEquipmentReadiness(context.Background(), mock, logger, "team-1", "boat-missing", fleetNow())

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
