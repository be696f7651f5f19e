package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// ReplaceAssignmentsResult contains the roster as written
type ReplaceAssignmentsResult struct {
	Assignments []db.BlockAssignment
}

// ReplaceAssignmentsStore defines the database operations needed to replace
// a land/erg roster
type ReplaceAssignmentsStore interface {
	GetBlock(ctx context.Context, teamID, blockID string) (*db.Block, error)
	ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error)
	ReplaceBlockAssignments(ctx context.Context, blockID string, assignments []db.BlockAssignment) error
}

// ReplaceAssignments fully replaces the unordered roster for a non-water
// block. Water blocks use lineups, not rosters, and are rejected here. The
// delete-and-recreate runs in one store transaction.
func ReplaceAssignments(
	ctx context.Context,
	store ReplaceAssignmentsStore,
	logger *zap.Logger,
	teamID string,
	blockID string,
	athleteIDs []string,
) (*ReplaceAssignmentsResult, error) {
	logger.Debug("Replacing block assignments",
		zap.String("team_id", teamID),
		zap.String("block_id", blockID),
		zap.Int("athlete_count", len(athleteIDs)))

	block, err := store.GetBlock(ctx, teamID, blockID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "block", ID: blockID}
		}
		return nil, fmt.Errorf("failed to fetch block: %w", err)
	}

	if block.Type == db.BlockWater {
		return nil, validationErrorf("block %s is a WATER block; use lineups instead of roster assignments", blockID)
	}

	members, err := teamAthleteIDs(ctx, store, teamID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(athleteIDs))
	assignments := make([]db.BlockAssignment, 0, len(athleteIDs))
	for _, athleteID := range athleteIDs {
		if !members[athleteID] {
			return nil, validationErrorf("athlete %s is not on the team", athleteID)
		}
		if seen[athleteID] {
			return nil, validationErrorf("athlete %s is listed more than once", athleteID)
		}
		seen[athleteID] = true
		assignments = append(assignments, db.BlockAssignment{
			ID:        uuid.New().String(),
			BlockID:   blockID,
			AthleteID: athleteID,
		})
	}

	if err := store.ReplaceBlockAssignments(ctx, blockID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	logger.Info("Block assignments replaced",
		zap.String("block_id", blockID),
		zap.Int("count", len(assignments)))

	return &ReplaceAssignmentsResult{Assignments: assignments}, nil
}
