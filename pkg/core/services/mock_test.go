package services

import (
	"context"
	"time"

	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// mockStore implements the per-service store interfaces for tests.
// Records are keyed by ID; team scoping is enforced the way the real
// store does, by returning db.ErrNotFound on a team mismatch.
type mockStore struct {
	blocks        map[string]*db.Block
	practices     map[string]*db.Practice
	equipment     map[string]*db.Equipment
	openReports   map[string][]db.DamageReport
	damageReports map[string]*db.DamageReport
	athletes      []db.Athlete
	lineups       []db.Lineup
	templates     map[string]*db.LineupTemplate
	templateSeats map[string][]db.TemplateSeat
	entries       map[string]*db.Entry
	entryLineup   *db.EntryLineup
	teamSettings  *db.TeamSettings

	savedCreate         []db.LineupWithSeats
	savedUpdate         []db.LineupWithSeats
	savedDeleteIDs      []string
	saveLineupsCalls    int
	replacedAssignments []db.BlockAssignment
	replacedEntryLineup *db.EntryLineupWithSeats
	insertedPractices   []db.Practice
	insertedReports     []*db.DamageReport
	inspections         map[string]time.Time
	manualFlags         map[string]bool
	manualNotes         map[string]string
	resolvedReports     []string

	saveLineupsErr     error
	listAthletesErr    error
	insertPracticesErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		blocks:        make(map[string]*db.Block),
		practices:     make(map[string]*db.Practice),
		equipment:     make(map[string]*db.Equipment),
		openReports:   make(map[string][]db.DamageReport),
		damageReports: make(map[string]*db.DamageReport),
		templates:     make(map[string]*db.LineupTemplate),
		templateSeats: make(map[string][]db.TemplateSeat),
		entries:       make(map[string]*db.Entry),
		inspections:   make(map[string]time.Time),
		manualFlags:   make(map[string]bool),
		manualNotes:   make(map[string]string),
	}
}

func (m *mockStore) GetBlock(ctx context.Context, teamID, blockID string) (*db.Block, error) {
	block, ok := m.blocks[blockID]
	if !ok || block.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return block, nil
}

func (m *mockStore) GetPractice(ctx context.Context, teamID, practiceID string) (*db.Practice, error) {
	practice, ok := m.practices[practiceID]
	if !ok || practice.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return practice, nil
}

func (m *mockStore) GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error) {
	eq, ok := m.equipment[equipmentID]
	if !ok || eq.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return eq, nil
}

func (m *mockStore) ListEquipment(ctx context.Context, teamID string) ([]db.Equipment, error) {
	var result []db.Equipment
	for _, eq := range m.equipment {
		if eq.TeamID == teamID {
			result = append(result, *eq)
		}
	}
	return result, nil
}

func (m *mockStore) ListOpenDamageReports(ctx context.Context, equipmentID string) ([]db.DamageReport, error) {
	return m.openReports[equipmentID], nil
}

func (m *mockStore) ListOpenDamageReportsForTeam(ctx context.Context, teamID string) ([]db.DamageReport, error) {
	var result []db.DamageReport
	for equipmentID, reports := range m.openReports {
		eq, ok := m.equipment[equipmentID]
		if !ok || eq.TeamID != teamID {
			continue
		}
		result = append(result, reports...)
	}
	return result, nil
}

func (m *mockStore) GetTeamSettings(ctx context.Context, teamID string) (*db.TeamSettings, error) {
	if m.teamSettings == nil || m.teamSettings.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return m.teamSettings, nil
}

func (m *mockStore) ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error) {
	if m.listAthletesErr != nil {
		return nil, m.listAthletesErr
	}
	var result []db.Athlete
	for _, athlete := range m.athletes {
		if athlete.TeamID == teamID {
			result = append(result, athlete)
		}
	}
	return result, nil
}

func (m *mockStore) GetLineupsForBlock(ctx context.Context, blockID string) ([]db.Lineup, error) {
	var result []db.Lineup
	for _, lineup := range m.lineups {
		if lineup.BlockID == blockID {
			result = append(result, lineup)
		}
	}
	return result, nil
}

func (m *mockStore) SaveLineups(ctx context.Context, blockID string, create, update []db.LineupWithSeats, deleteIDs []string) error {
	if m.saveLineupsErr != nil {
		return m.saveLineupsErr
	}
	m.saveLineupsCalls++
	m.savedCreate = append(m.savedCreate, create...)
	m.savedUpdate = append(m.savedUpdate, update...)
	m.savedDeleteIDs = append(m.savedDeleteIDs, deleteIDs...)
	return nil
}

func (m *mockStore) GetTemplate(ctx context.Context, teamID, templateID string) (*db.LineupTemplate, error) {
	template, ok := m.templates[templateID]
	if !ok || template.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return template, nil
}

func (m *mockStore) ListTemplateSeats(ctx context.Context, templateID string) ([]db.TemplateSeat, error) {
	return m.templateSeats[templateID], nil
}

func (m *mockStore) ReplaceBlockAssignments(ctx context.Context, blockID string, assignments []db.BlockAssignment) error {
	m.replacedAssignments = assignments
	return nil
}

func (m *mockStore) GetEntry(ctx context.Context, teamID, entryID string) (*db.Entry, error) {
	entry, ok := m.entries[entryID]
	if !ok || entry.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return entry, nil
}

func (m *mockStore) GetEntryLineup(ctx context.Context, entryID string) (*db.EntryLineup, error) {
	if m.entryLineup == nil || m.entryLineup.EntryID != entryID {
		return nil, db.ErrNotFound
	}
	return m.entryLineup, nil
}

func (m *mockStore) ReplaceEntryLineup(ctx context.Context, entryID string, lineup db.EntryLineupWithSeats) error {
	m.replacedEntryLineup = &lineup
	return nil
}

func (m *mockStore) InsertPractices(ctx context.Context, practices []db.Practice) error {
	if m.insertPracticesErr != nil {
		return m.insertPracticesErr
	}
	m.insertedPractices = append(m.insertedPractices, practices...)
	return nil
}

func (m *mockStore) UpdateEquipmentInspection(ctx context.Context, teamID, equipmentID string, inspectedAt time.Time) error {
	m.inspections[equipmentID] = inspectedAt
	return nil
}

func (m *mockStore) UpdateEquipmentManualFlag(ctx context.Context, teamID, equipmentID string, unavailable bool, note string) error {
	m.manualFlags[equipmentID] = unavailable
	m.manualNotes[equipmentID] = note
	return nil
}

func (m *mockStore) InsertDamageReport(ctx context.Context, report *db.DamageReport) error {
	m.insertedReports = append(m.insertedReports, report)
	return nil
}

func (m *mockStore) GetDamageReport(ctx context.Context, teamID, reportID string) (*db.DamageReport, error) {
	report, ok := m.damageReports[reportID]
	if !ok {
		return nil, db.ErrNotFound
	}
	eq, eqOK := m.equipment[report.EquipmentID]
	if !eqOK || eq.TeamID != teamID {
		return nil, db.ErrNotFound
	}
	return report, nil
}

func (m *mockStore) ResolveDamageReport(ctx context.Context, teamID, reportID string, resolvedAt time.Time) error {
	m.resolvedReports = append(m.resolvedReports, reportID)
	return nil
}

// captureSink records published events and optionally fails
type captureSink struct {
	published  []events.LineupBoatChanged
	publishErr error
}

func (s *captureSink) Publish(ctx context.Context, event events.LineupBoatChanged) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.published = append(s.published, event)
	return nil
}

func strPtr(s string) *string {
	return &s
}
