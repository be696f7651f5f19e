package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// CreateOrReplaceLineupResult contains the lineup as written plus warnings
type CreateOrReplaceLineupResult struct {
	Lineup   db.LineupWithSeats
	Warnings []Warning
}

// CreateOrReplaceLineup sets the single lineup for a water block. If the
// block already has a lineup its ID is kept and the seats are fully
// replaced; any extra lineups left over from a multi-boat edit are deleted.
// The work routes through the same desired-state diff as the bulk path, so
// both paths share one transaction shape and one usage-log reconciliation.
func CreateOrReplaceLineup(
	ctx context.Context,
	store SaveLineupsStore,
	sink events.Sink,
	logger *zap.Logger,
	teamID string,
	blockID string,
	input LineupInput,
) (*CreateOrReplaceLineupResult, error) {
	logger.Debug("Replacing single lineup",
		zap.String("team_id", teamID),
		zap.String("block_id", blockID))

	existing, err := store.GetLineupsForBlock(ctx, blockID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing lineups: %w", err)
	}

	// Reuse the first existing lineup's identity; the diff removes the rest
	input.ID = NewLineupIDPrefix + "lineup"
	if len(existing) > 0 {
		input.ID = existing[0].ID
	}

	result, err := SaveLineups(ctx, store, sink, logger, teamID, blockID, []LineupInput{input})
	if err != nil {
		return nil, err
	}

	if len(result.Lineups) != 1 {
		return nil, fmt.Errorf("expected exactly one lineup after save, got %d", len(result.Lineups))
	}

	return &CreateOrReplaceLineupResult{
		Lineup:   result.Lineups[0],
		Warnings: result.Warnings,
	}, nil
}
