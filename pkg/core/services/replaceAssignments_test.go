package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

func ergBlockStore() *mockStore {
	mock := newMockStore()
	mock.blocks["block-erg"] = &db.Block{ID: "block-erg", PracticeID: "practice-1", TeamID: "team-1", Type: db.BlockErg}
	mock.athletes = []db.Athlete{
		{ID: "athlete-1", TeamID: "team-1", Active: true},
		{ID: "athlete-2", TeamID: "team-1", Active: true},
	}
	return mock
}

func TestReplaceAssignments(t *testing.T) {
	mock := ergBlockStore()
	logger := zap.NewNop()

	result, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-erg", []string{"athlete-1", "athlete-2"})
	require.NoError(t, err)

	assert.Len(t, result.Assignments, 2)
	assert.Len(t, mock.replacedAssignments, 2)
	for _, assignment := range result.Assignments {
		assert.Equal(t, "block-erg", assignment.BlockID)
		assert.NotEmpty(t, assignment.ID)
	}
}

func TestReplaceAssignments_EmptyRosterClears(t *testing.T) {
	mock := ergBlockStore()
	logger := zap.NewNop()

	result, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-erg", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	assert.NotNil(t, mock.replacedAssignments, "clear still reaches the store")
}

func TestReplaceAssignments_RejectsWaterBlock(t *testing.T) {
	mock := ergBlockStore()
	mock.blocks["block-erg"].Type = db.BlockWater
	logger := zap.NewNop()

	_, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-erg", []string{"athlete-1"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, mock.replacedAssignments)
}

func TestReplaceAssignments_RejectsNonMember(t *testing.T) {
	mock := ergBlockStore()
	logger := zap.NewNop()

	_, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-erg", []string{"athlete-stranger"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestReplaceAssignments_RejectsDuplicates(t *testing.T) {
	mock := ergBlockStore()
	logger := zap.NewNop()

	_, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-erg", []string{"athlete-1", "athlete-1"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, mock.replacedAssignments)
}

func TestReplaceAssignments_UnknownBlock(t *testing.T) {
	mock := ergBlockStore()
	logger := zap.NewNop()

	_, err := ReplaceAssignments(context.Background(), mock, logger, "team-1", "block-missing", []string{"athlete-1"})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
