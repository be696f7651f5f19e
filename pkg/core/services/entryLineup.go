package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// SaveEntryLineupResult contains the entry lineup as written plus warnings
type SaveEntryLineupResult struct {
	Lineup   db.EntryLineupWithSeats
	Warnings []Warning
}

// SaveEntryLineupStore defines the database operations needed to save a
// regatta entry lineup
type SaveEntryLineupStore interface {
	GetEntry(ctx context.Context, teamID, entryID string) (*db.Entry, error)
	GetEntryLineup(ctx context.Context, entryID string) (*db.EntryLineup, error)
	ReplaceEntryLineup(ctx context.Context, entryID string, lineup db.EntryLineupWithSeats) error
	GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error)
	ListOpenDamageReports(ctx context.Context, equipmentID string) ([]db.DamageReport, error)
	ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error)
}

// SaveEntryLineup sets the crew for a regatta entry. The seat invariants
// mirror practice lineups exactly; the replace is a full delete-and-recreate
// in one store transaction. Entries have no practice, so no usage log is
// recorded.
func SaveEntryLineup(
	ctx context.Context,
	store SaveEntryLineupStore,
	logger *zap.Logger,
	teamID string,
	entryID string,
	input LineupInput,
) (*SaveEntryLineupResult, error) {
	logger.Debug("Saving entry lineup",
		zap.String("team_id", teamID),
		zap.String("entry_id", entryID))

	entry, err := store.GetEntry(ctx, teamID, entryID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "entry", ID: entryID}
		}
		return nil, fmt.Errorf("failed to fetch entry: %w", err)
	}

	athleteIDs, err := teamAthleteIDs(ctx, store, teamID)
	if err != nil {
		return nil, err
	}

	if err := validateSeats(input.Seats, athleteIDs); err != nil {
		return nil, err
	}

	var warnings []Warning
	if input.BoatID != nil {
		boat, err := store.GetEquipment(ctx, teamID, *input.BoatID)
		if err != nil {
			if err == db.ErrNotFound {
				return nil, &NotFoundError{Entity: "boat", ID: *input.BoatID}
			}
			return nil, fmt.Errorf("failed to fetch boat: %w", err)
		}
		if boat.Type != db.EquipmentShell {
			return nil, validationErrorf("equipment %s is a %s, not a shell", boat.ID, boat.Type)
		}
		if boat.BoatClass != entry.BoatClass {
			warnings = append(warnings, Warning{
				Code:    WarningBoatClassMismatch,
				Message: fmt.Sprintf("boat %s is a %s but the entry is for %s", boat.Name, boat.BoatClass, entry.BoatClass),
			})
		}
	}

	// Keep the existing lineup's identity across replaces
	lineupID := uuid.New().String()
	if existing, err := store.GetEntryLineup(ctx, entryID); err == nil {
		lineupID = existing.ID
	} else if err != db.ErrNotFound {
		return nil, fmt.Errorf("failed to fetch entry lineup: %w", err)
	}

	seats := make([]db.EntrySeat, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = db.EntrySeat{
			ID:            uuid.New().String(),
			EntryLineupID: lineupID,
			Position:      seat.Position,
			Side:          seat.Side,
			AthleteID:     seat.AthleteID,
		}
	}

	lineup := db.EntryLineupWithSeats{
		Lineup: db.EntryLineup{
			ID:      lineupID,
			EntryID: entryID,
			BoatID:  input.BoatID,
			Notes:   input.Notes,
		},
		Seats: seats,
	}

	if err := store.ReplaceEntryLineup(ctx, entryID, lineup); err != nil {
		return nil, fmt.Errorf("failed to replace entry lineup: %w", err)
	}

	logger.Info("Entry lineup saved",
		zap.String("entry_id", entryID),
		zap.Int("seat_count", len(seats)))

	return &SaveEntryLineupResult{Lineup: lineup, Warnings: warnings}, nil
}
