// Package usagelog keeps equipment usage logs consistent with lineup boat
// assignments. The recorder consumes LineupBoatChanged events emitted after
// lineup transactions commit; its failures are supplementary-system
// failures and are never surfaced to the lineup caller.
package usagelog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// Recorder reconciles usage logs in response to lineup boat changes
type Recorder struct {
	store  db.UsageLogStore
	logger *zap.Logger
}

// NewRecorder creates a recorder backed by the given store
func NewRecorder(store db.UsageLogStore, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Publish removes the old boat's log for the practice and records the new
// boat's usage. Deleting before inserting keeps exactly one log per
// (boat, practice) across reassignments.
func (r *Recorder) Publish(ctx context.Context, event events.LineupBoatChanged) error {
	if event.OldBoatID != nil {
		r.logger.Debug("Removing usage log for previous boat",
			zap.String("equipment_id", *event.OldBoatID),
			zap.String("practice_id", event.PracticeID))
		if err := r.store.DeleteUsageLogs(ctx, *event.OldBoatID, event.PracticeID); err != nil {
			return fmt.Errorf("failed to delete usage log: %w", err)
		}
	}

	if event.NewBoatID != nil {
		lineupID := event.LineupID
		log := &db.UsageLog{
			ID:          uuid.New().String(),
			EquipmentID: *event.NewBoatID,
			TeamID:      event.TeamID,
			PracticeID:  event.PracticeID,
			LineupID:    &lineupID,
			UsedOn:      event.UsedOn,
		}
		r.logger.Debug("Recording usage log",
			zap.String("equipment_id", *event.NewBoatID),
			zap.String("practice_id", event.PracticeID))
		if err := r.store.InsertUsageLog(ctx, log); err != nil {
			return fmt.Errorf("failed to insert usage log: %w", err)
		}
	}

	return nil
}
