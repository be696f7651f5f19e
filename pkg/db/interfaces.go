package db

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a row does not exist or is not
// visible to the requesting team. Stores never distinguish the two cases.
var ErrNotFound = errors.New("not found")

// EquipmentStore defines equipment and damage report operations
type EquipmentStore interface {
	GetEquipment(ctx context.Context, teamID, equipmentID string) (*Equipment, error)
	ListEquipment(ctx context.Context, teamID string) ([]Equipment, error)
	UpdateEquipmentInspection(ctx context.Context, teamID, equipmentID string, inspectedAt time.Time) error
	UpdateEquipmentManualFlag(ctx context.Context, teamID, equipmentID string, unavailable bool, note string) error
	ListOpenDamageReports(ctx context.Context, equipmentID string) ([]DamageReport, error)
	ListOpenDamageReportsForTeam(ctx context.Context, teamID string) ([]DamageReport, error)
	InsertDamageReport(ctx context.Context, report *DamageReport) error
	GetDamageReport(ctx context.Context, teamID, reportID string) (*DamageReport, error)
	ResolveDamageReport(ctx context.Context, teamID, reportID string, resolvedAt time.Time) error
	GetTeamSettings(ctx context.Context, teamID string) (*TeamSettings, error)
}

// ScheduleStore defines practice and block operations
type ScheduleStore interface {
	GetBlock(ctx context.Context, teamID, blockID string) (*Block, error)
	GetPractice(ctx context.Context, teamID, practiceID string) (*Practice, error)
	InsertPractices(ctx context.Context, practices []Practice) error
}

// LineupStore defines lineup, seat and template operations.
// SaveLineups applies a full desired-state diff for one block in a single
// transaction: creates, updates (full seat replace) and deletes together.
type LineupStore interface {
	GetLineupsForBlock(ctx context.Context, blockID string) ([]Lineup, error)
	SaveLineups(ctx context.Context, blockID string, create, update []LineupWithSeats, deleteIDs []string) error
	GetTemplate(ctx context.Context, teamID, templateID string) (*LineupTemplate, error)
	ListTemplateSeats(ctx context.Context, templateID string) ([]TemplateSeat, error)
}

// RosterStore defines athlete and land/erg assignment operations
type RosterStore interface {
	ListAthletes(ctx context.Context, teamID string) ([]Athlete, error)
	ReplaceBlockAssignments(ctx context.Context, blockID string, assignments []BlockAssignment) error
}

// EntryStore defines regatta entry lineup operations
type EntryStore interface {
	GetEntry(ctx context.Context, teamID, entryID string) (*Entry, error)
	GetEntryLineup(ctx context.Context, entryID string) (*EntryLineup, error)
	ReplaceEntryLineup(ctx context.Context, entryID string, lineup EntryLineupWithSeats) error
}

// UsageLogStore defines usage log operations
type UsageLogStore interface {
	InsertUsageLog(ctx context.Context, log *UsageLog) error
	DeleteUsageLogs(ctx context.Context, equipmentID, practiceID string) error
	ListUsageLogs(ctx context.Context, teamID string) ([]UsageLog, error)
}

// Store is the full data access surface the application wires together
type Store interface {
	EquipmentStore
	ScheduleStore
	LineupStore
	RosterStore
	EntryStore
	UsageLogStore
}
