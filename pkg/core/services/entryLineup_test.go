package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

func entryStore() *mockStore {
	mock := newMockStore()
	mock.entries["entry-1"] = &db.Entry{
		ID: "entry-1", TeamID: "team-1", RegattaID: "regatta-1", EventName: "Men's 4+", BoatClass: "4+",
	}
	mock.athletes = []db.Athlete{
		{ID: "athlete-1", TeamID: "team-1", Active: true},
		{ID: "athlete-2", TeamID: "team-1", Active: true},
	}
	mock.equipment["boat-1"] = &db.Equipment{ID: "boat-1", TeamID: "team-1", Name: "Resolute", Type: db.EquipmentShell, BoatClass: "4+"}
	return mock
}

func TestSaveEntryLineup(t *testing.T) {
	mock := entryStore()
	logger := zap.NewNop()

	input := LineupInput{
		BoatID: strPtr("boat-1"),
		Seats: []SeatInput{
			{Position: 1, Side: db.SidePort, AthleteID: strPtr("athlete-1")},
			{Position: 2, Side: db.SideStarboard, AthleteID: strPtr("athlete-2")},
		},
	}

	result, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-1", input)
	require.NoError(t, err)

	assert.Equal(t, "entry-1", result.Lineup.Lineup.EntryID)
	assert.Len(t, result.Lineup.Seats, 2)
	assert.Empty(t, result.Warnings)
	require.NotNil(t, mock.replacedEntryLineup)
	assert.Equal(t, result.Lineup, *mock.replacedEntryLineup)
}

func TestSaveEntryLineup_KeepsLineupIdentity(t *testing.T) {
	mock := entryStore()
	mock.entryLineup = &db.EntryLineup{ID: "entry-lineup-1", EntryID: "entry-1"}
	logger := zap.NewNop()

	input := LineupInput{Seats: []SeatInput{{Position: 1, Side: db.SidePort, AthleteID: strPtr("athlete-1")}}}

	result, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-1", input)
	require.NoError(t, err)
	assert.Equal(t, "entry-lineup-1", result.Lineup.Lineup.ID)
}

func TestSaveEntryLineup_BoatClassMismatchWarns(t *testing.T) {
	mock := entryStore()
	mock.equipment["boat-1"].BoatClass = "8+"
	logger := zap.NewNop()

	input := LineupInput{BoatID: strPtr("boat-1")}

	result, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-1", input)
	require.NoError(t, err)

	// Mismatch warns but does not block: the entry still gets the boat
	require.NotNil(t, result.Lineup.Lineup.BoatID)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningBoatClassMismatch, result.Warnings[0].Code)
}

func TestSaveEntryLineup_SeatInvariantsApply(t *testing.T) {
	mock := entryStore()
	logger := zap.NewNop()

	input := LineupInput{
		Seats: []SeatInput{
			{Position: 1, Side: db.SidePort, AthleteID: strPtr("athlete-1")},
			{Position: 2, Side: db.SideStarboard, AthleteID: strPtr("athlete-1")},
		},
	}

	_, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-1", input)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, mock.replacedEntryLineup)
}

func TestSaveEntryLineup_UnknownEntry(t *testing.T) {
	mock := entryStore()
	logger := zap.NewNop()

	_, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-missing", LineupInput{})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "entry", notFoundErr.Entity)
}

func TestSaveEntryLineup_NonShellBoatRejected(t *testing.T) {
	mock := entryStore()
	mock.equipment["boat-1"].Type = db.EquipmentLaunch
	logger := zap.NewNop()

	_, err := SaveEntryLineup(context.Background(), mock, logger, "team-1", "entry-1", LineupInput{BoatID: strPtr("boat-1")})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
