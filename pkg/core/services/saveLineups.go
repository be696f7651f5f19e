package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/core/readiness"
	"github.com/stroke-rate/boathouse/pkg/db"
)

const (
	// MaxLineupsPerBlock caps how many boats a single water block can carry
	MaxLineupsPerBlock = 10

	// NewLineupIDPrefix marks desired-state entries that have no database
	// row yet; the diff creates them with fresh IDs
	NewLineupIDPrefix = "new-"
)

// SeatInput is one submitted seat for a lineup
type SeatInput struct {
	Position  int
	Side      db.Side
	AthleteID *string
}

// LineupInput is one entry in the desired state for a block. IDs prefixed
// with "new-" request creation; real IDs request an in-place update.
type LineupInput struct {
	ID     string
	BoatID *string
	Notes  string
	Seats  []SeatInput
}

// SaveLineupsResult contains the lineups as written plus any warnings
type SaveLineupsResult struct {
	Lineups  []db.LineupWithSeats
	Warnings []Warning
}

// SaveLineupsStore defines the database operations needed to save lineups
type SaveLineupsStore interface {
	GetBlock(ctx context.Context, teamID, blockID string) (*db.Block, error)
	GetPractice(ctx context.Context, teamID, practiceID string) (*db.Practice, error)
	GetEquipment(ctx context.Context, teamID, equipmentID string) (*db.Equipment, error)
	ListOpenDamageReports(ctx context.Context, equipmentID string) ([]db.DamageReport, error)
	ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error)
	GetLineupsForBlock(ctx context.Context, blockID string) ([]db.Lineup, error)
	SaveLineups(ctx context.Context, blockID string, create, update []db.LineupWithSeats, deleteIDs []string) error
}

// SaveLineups reconciles a water block's lineups to the submitted desired
// state: entries with a "new-" prefixed ID are created, entries with a real
// ID are updated (seats fully replaced), and existing lineups absent from
// the list are deleted. All three run in one store transaction; validation
// happens entirely before it starts, so a rejected request writes nothing.
//
// Boat availability is not enforced here: a coach who explicitly picks a
// currently-unavailable boat gets the assignment plus an unavailable_boat
// warning. Concurrent saves for the same block are last-write-wins.
//
// After the transaction commits, a LineupBoatChanged event is published for
// every lineup whose boat assignment changed. Publish failures are logged
// and swallowed; usage logs are analytics, not part of the lineup's
// consistency boundary.
func SaveLineups(
	ctx context.Context,
	store SaveLineupsStore,
	sink events.Sink,
	logger *zap.Logger,
	teamID string,
	blockID string,
	desired []LineupInput,
) (*SaveLineupsResult, error) {
	logger.Debug("Saving lineups",
		zap.String("team_id", teamID),
		zap.String("block_id", blockID),
		zap.Int("desired_count", len(desired)))

	block, err := store.GetBlock(ctx, teamID, blockID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "block", ID: blockID}
		}
		return nil, fmt.Errorf("failed to fetch block: %w", err)
	}

	if block.Type != db.BlockWater {
		return nil, validationErrorf("block %s is a %s block; lineups apply to WATER blocks only", blockID, block.Type)
	}

	if len(desired) > MaxLineupsPerBlock {
		return nil, &ConflictError{Message: fmt.Sprintf("a block can carry at most %d lineups, got %d", MaxLineupsPerBlock, len(desired))}
	}

	practice, err := store.GetPractice(ctx, teamID, block.PracticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch practice: %w", err)
	}

	athleteIDs, err := teamAthleteIDs(ctx, store, teamID)
	if err != nil {
		return nil, err
	}

	existing, err := store.GetLineupsForBlock(ctx, blockID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing lineups: %w", err)
	}
	existingByID := make(map[string]db.Lineup, len(existing))
	for _, lineup := range existing {
		existingByID[lineup.ID] = lineup
	}

	// Validate everything before mutating anything
	var warnings []Warning
	for i, input := range desired {
		if err := validateSeats(input.Seats, athleteIDs); err != nil {
			return nil, err
		}

		if input.BoatID != nil {
			boatWarnings, err := validateBoat(ctx, store, teamID, *input.BoatID)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, boatWarnings...)
		}

		if !strings.HasPrefix(input.ID, NewLineupIDPrefix) {
			if _, ok := existingByID[input.ID]; !ok {
				return nil, validationErrorf("lineup %s does not exist on block %s", input.ID, blockID)
			}
		}

		logger.Debug("Validated lineup input",
			zap.Int("index", i),
			zap.String("id", input.ID),
			zap.Int("seat_count", len(input.Seats)))
	}

	// Diff desired state against existing lineups by ID
	var create, update []db.LineupWithSeats
	var changes []events.LineupBoatChanged
	seen := make(map[string]bool, len(desired))

	for _, input := range desired {
		if strings.HasPrefix(input.ID, NewLineupIDPrefix) {
			lineup := buildLineup(uuid.New().String(), blockID, input)
			create = append(create, lineup)
			if input.BoatID != nil {
				changes = append(changes, boatChange(teamID, practice, blockID, lineup.Lineup.ID, nil, input.BoatID))
			}
			continue
		}

		seen[input.ID] = true
		previous := existingByID[input.ID]
		lineup := buildLineup(input.ID, blockID, input)
		update = append(update, lineup)
		if boatChanged(previous.BoatID, input.BoatID) {
			changes = append(changes, boatChange(teamID, practice, blockID, input.ID, previous.BoatID, input.BoatID))
		}
	}

	var deleteIDs []string
	for _, lineup := range existing {
		if seen[lineup.ID] {
			continue
		}
		deleteIDs = append(deleteIDs, lineup.ID)
		if lineup.BoatID != nil {
			changes = append(changes, boatChange(teamID, practice, blockID, lineup.ID, lineup.BoatID, nil))
		}
	}

	if err := store.SaveLineups(ctx, blockID, create, update, deleteIDs); err != nil {
		return nil, fmt.Errorf("failed to save lineups: %w", err)
	}

	logger.Info("Lineups saved",
		zap.String("block_id", blockID),
		zap.Int("created", len(create)),
		zap.Int("updated", len(update)),
		zap.Int("deleted", len(deleteIDs)))

	publishBoatChanges(ctx, sink, logger, changes)

	result := &SaveLineupsResult{Warnings: warnings}
	result.Lineups = append(result.Lineups, create...)
	result.Lineups = append(result.Lineups, update...)
	return result, nil
}

// teamAthleteIDs loads the team roster as a membership set
func teamAthleteIDs(ctx context.Context, store interface {
	ListAthletes(ctx context.Context, teamID string) ([]db.Athlete, error)
}, teamID string) (map[string]bool, error) {
	athletes, err := store.ListAthletes(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch athletes: %w", err)
	}
	ids := make(map[string]bool, len(athletes))
	for _, athlete := range athletes {
		ids[athlete.ID] = true
	}
	return ids, nil
}

// validateSeats enforces the intra-lineup invariants: unique positions,
// no athlete in two seats, valid sides, team membership for every athlete
func validateSeats(seats []SeatInput, athleteIDs map[string]bool) error {
	positions := make(map[int]bool, len(seats))
	occupants := make(map[string]bool, len(seats))

	for _, seat := range seats {
		if seat.Position < 0 {
			return validationErrorf("seat position %d is negative", seat.Position)
		}
		if !seat.Side.IsValid() {
			return validationErrorf("invalid seat side %q at position %d", seat.Side, seat.Position)
		}
		if positions[seat.Position] {
			return validationErrorf("duplicate seat position %d", seat.Position)
		}
		positions[seat.Position] = true

		if seat.AthleteID == nil {
			continue
		}
		if !athleteIDs[*seat.AthleteID] {
			return validationErrorf("athlete %s is not on the team", *seat.AthleteID)
		}
		if occupants[*seat.AthleteID] {
			return validationErrorf("athlete %s appears in more than one seat", *seat.AthleteID)
		}
		occupants[*seat.AthleteID] = true
	}

	return nil
}

// validateBoat checks that the referenced equipment belongs to the team and
// is a shell. Availability is advisory only: an unavailable boat yields a
// warning, not a rejection.
func validateBoat(ctx context.Context, store SaveLineupsStore, teamID, boatID string) ([]Warning, error) {
	boat, err := store.GetEquipment(ctx, teamID, boatID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "boat", ID: boatID}
		}
		return nil, fmt.Errorf("failed to fetch boat: %w", err)
	}

	if boat.Type != db.EquipmentShell {
		return nil, validationErrorf("equipment %s is a %s, not a shell", boatID, boat.Type)
	}

	reports, err := store.ListOpenDamageReports(ctx, boatID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch damage reports: %w", err)
	}

	if !readiness.Available(readinessEquipment(boat), reportSeverities(reports)) {
		return []Warning{{
			Code:    WarningUnavailableBoat,
			Message: fmt.Sprintf("boat %s is currently unavailable", boat.Name),
		}}, nil
	}

	return nil, nil
}

// buildLineup materializes a desired-state entry with fresh seat rows
func buildLineup(lineupID, blockID string, input LineupInput) db.LineupWithSeats {
	seats := make([]db.Seat, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = db.Seat{
			ID:        uuid.New().String(),
			LineupID:  lineupID,
			Position:  seat.Position,
			Side:      seat.Side,
			AthleteID: seat.AthleteID,
		}
	}
	return db.LineupWithSeats{
		Lineup: db.Lineup{
			ID:      lineupID,
			BlockID: blockID,
			BoatID:  input.BoatID,
			Notes:   input.Notes,
		},
		Seats: seats,
	}
}

func boatChange(teamID string, practice *db.Practice, blockID, lineupID string, oldBoat, newBoat *string) events.LineupBoatChanged {
	return events.LineupBoatChanged{
		TeamID:     teamID,
		PracticeID: practice.ID,
		BlockID:    blockID,
		LineupID:   lineupID,
		OldBoatID:  oldBoat,
		NewBoatID:  newBoat,
		UsedOn:     practice.Date,
	}
}

func boatChanged(old, new *string) bool {
	switch {
	case old == nil && new == nil:
		return false
	case old == nil || new == nil:
		return true
	default:
		return *old != *new
	}
}

// publishBoatChanges emits events post-commit, best effort
func publishBoatChanges(ctx context.Context, sink events.Sink, logger *zap.Logger, changes []events.LineupBoatChanged) {
	for _, change := range changes {
		if err := sink.Publish(ctx, change); err != nil {
			logger.Warn("Failed to publish lineup boat change",
				zap.String("lineup_id", change.LineupID),
				zap.Error(err))
		}
	}
}

// readinessEquipment converts a db record to the engine's input type
func readinessEquipment(eq *db.Equipment) readiness.Equipment {
	return readiness.Equipment{
		ManualUnavailable: eq.ManualUnavailable,
		ManualNote:        eq.ManualNote,
		LastInspectedAt:   eq.LastInspectedAt,
	}
}

// reportSeverities extracts severities for the readiness engine
func reportSeverities(reports []db.DamageReport) []readiness.Severity {
	severities := make([]readiness.Severity, len(reports))
	for i, report := range reports {
		severities[i] = readiness.Severity(report.Severity)
	}
	return severities
}
