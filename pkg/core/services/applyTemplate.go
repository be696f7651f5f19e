package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/core/readiness"
	"github.com/stroke-rate/boathouse/pkg/db"
)

// ApplyTemplateResult contains the freshly stamped lineup and the warnings
// accumulated while degrading around stale template data
type ApplyTemplateResult struct {
	Lineup   db.LineupWithSeats
	Warnings []Warning
}

// ApplyTemplateStore defines the database operations needed to apply a template
type ApplyTemplateStore interface {
	SaveLineupsStore
	GetTemplate(ctx context.Context, teamID, templateID string) (*db.LineupTemplate, error)
	ListTemplateSeats(ctx context.Context, templateID string) ([]db.TemplateSeat, error)
}

// ApplyTemplate stamps a new lineup onto an empty water block from a saved
// template. Template data drifts: athletes leave the team, the default boat
// gets damaged or reassigned to a different class. Each stale reference is
// skipped with a warning rather than failing the apply; an empty warning
// list signals a clean copy.
func ApplyTemplate(
	ctx context.Context,
	store ApplyTemplateStore,
	sink events.Sink,
	logger *zap.Logger,
	teamID string,
	templateID string,
	blockID string,
) (*ApplyTemplateResult, error) {
	logger.Debug("Applying lineup template",
		zap.String("team_id", teamID),
		zap.String("template_id", templateID),
		zap.String("block_id", blockID))

	template, err := store.GetTemplate(ctx, teamID, templateID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "template", ID: templateID}
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	block, err := store.GetBlock(ctx, teamID, blockID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, &NotFoundError{Entity: "block", ID: blockID}
		}
		return nil, fmt.Errorf("failed to fetch block: %w", err)
	}

	if block.Type != db.BlockWater {
		return nil, validationErrorf("block %s is a %s block; templates apply to WATER blocks only", blockID, block.Type)
	}

	existing, err := store.GetLineupsForBlock(ctx, blockID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing lineups: %w", err)
	}
	if len(existing) > 0 {
		return nil, &ConflictError{Message: fmt.Sprintf("block %s already has a lineup; clear it before applying a template", blockID)}
	}

	practice, err := store.GetPractice(ctx, teamID, block.PracticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch practice: %w", err)
	}

	templateSeats, err := store.ListTemplateSeats(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template seats: %w", err)
	}

	athleteIDs, err := teamAthleteIDs(ctx, store, teamID)
	if err != nil {
		return nil, err
	}

	var warnings []Warning

	// Copy seats, dropping references to athletes who have left the team
	lineupID := uuid.New().String()
	seats := make([]db.Seat, 0, len(templateSeats))
	for _, templateSeat := range templateSeats {
		if templateSeat.AthleteID != nil && !athleteIDs[*templateSeat.AthleteID] {
			warnings = append(warnings, Warning{
				Code:     WarningMissingAthlete,
				Position: templateSeat.Position,
				Message:  fmt.Sprintf("athlete for seat %d is no longer on the team", templateSeat.Position),
			})
			logger.Warn("Template seat references missing athlete",
				zap.String("template_id", templateID),
				zap.Int("position", templateSeat.Position))
			continue
		}
		seats = append(seats, db.Seat{
			ID:        uuid.New().String(),
			LineupID:  lineupID,
			Position:  templateSeat.Position,
			Side:      templateSeat.Side,
			AthleteID: templateSeat.AthleteID,
		})
	}

	boatID, boatWarnings := resolveTemplateBoat(ctx, store, logger, teamID, template)
	warnings = append(warnings, boatWarnings...)

	lineup := db.LineupWithSeats{
		Lineup: db.Lineup{
			ID:      lineupID,
			BlockID: blockID,
			BoatID:  boatID,
			Notes:   "",
		},
		Seats: seats,
	}

	if err := store.SaveLineups(ctx, blockID, []db.LineupWithSeats{lineup}, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to save lineup: %w", err)
	}

	logger.Info("Template applied",
		zap.String("template_id", templateID),
		zap.String("block_id", blockID),
		zap.Int("seat_count", len(seats)),
		zap.Bool("boat_assigned", boatID != nil),
		zap.Int("warning_count", len(warnings)))

	if boatID != nil {
		publishBoatChanges(ctx, sink, logger, []events.LineupBoatChanged{
			boatChange(teamID, practice, blockID, lineupID, nil, boatID),
		})
	}

	return &ApplyTemplateResult{Lineup: lineup, Warnings: warnings}, nil
}

// resolveTemplateBoat decides whether the template's default boat can still
// be assigned. Unlike an explicit coach choice, automatic resolution
// declines unavailable boats: a missing or non-shell reference, a boat
// class drift, an open damage report or a manual override each leave the
// lineup boatless with a warning.
func resolveTemplateBoat(
	ctx context.Context,
	store ApplyTemplateStore,
	logger *zap.Logger,
	teamID string,
	template *db.LineupTemplate,
) (*string, []Warning) {
	if template.DefaultBoatID == nil {
		return nil, nil
	}

	boat, err := store.GetEquipment(ctx, teamID, *template.DefaultBoatID)
	if err != nil {
		logger.Warn("Template default boat could not be resolved",
			zap.String("template_id", template.ID),
			zap.Error(err))
		return nil, []Warning{{
			Code:    WarningUnavailableBoat,
			Message: "default boat no longer exists on the team",
		}}
	}

	if boat.Type != db.EquipmentShell {
		return nil, []Warning{{
			Code:    WarningUnavailableBoat,
			Message: fmt.Sprintf("default boat %s is no longer a shell", boat.Name),
		}}
	}

	if boat.BoatClass != template.BoatClass {
		return nil, []Warning{{
			Code:    WarningBoatClassMismatch,
			Message: fmt.Sprintf("boat %s is a %s but the template is for %s", boat.Name, boat.BoatClass, template.BoatClass),
		}}
	}

	reports, err := store.ListOpenDamageReports(ctx, boat.ID)
	if err != nil {
		logger.Warn("Failed to fetch damage reports for template boat",
			zap.String("equipment_id", boat.ID),
			zap.Error(err))
		return nil, []Warning{{
			Code:    WarningUnavailableBoat,
			Message: fmt.Sprintf("could not verify availability of boat %s", boat.Name),
		}}
	}

	if !readiness.Available(readinessEquipment(boat), reportSeverities(reports)) {
		return nil, []Warning{{
			Code:    WarningUnavailableBoat,
			Message: fmt.Sprintf("boat %s is currently unavailable", boat.Name),
		}}
	}

	return &boat.ID, nil
}
