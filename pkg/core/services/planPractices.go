package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/pkg/db"
)

// PlanPracticesResult contains the practices created from a recurrence rule
type PlanPracticesResult struct {
	Practices []db.Practice
}

// PlanPracticesStore defines the database operations needed to plan practices
type PlanPracticesStore interface {
	InsertPractices(ctx context.Context, practices []db.Practice) error
}

// PlanPractices expands an RRULE recurrence into dated practice rows,
// starting from the given date. The insert runs in one store transaction.
func PlanPractices(
	ctx context.Context,
	store PlanPracticesStore,
	logger *zap.Logger,
	teamID string,
	title string,
	rruleStr string,
	from time.Time,
	count int,
) (*PlanPracticesResult, error) {
	if count <= 0 {
		return nil, validationErrorf("practice count must be positive, got %d", count)
	}
	if count > 100 {
		return nil, validationErrorf("practice count must be at most 100, got %d", count)
	}

	rule, err := rrule.StrToRRule(rruleStr)
	if err != nil {
		return nil, validationErrorf("invalid recurrence rule: %v", err)
	}

	// Normalize to start of day so time-of-day never shifts the series
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	rule.DTStart(start)

	logger.Debug("Expanding practice schedule",
		zap.String("team_id", teamID),
		zap.String("rrule", rruleStr),
		zap.Time("from", start),
		zap.Int("count", count))

	iterator := rule.Iterator()
	practices := make([]db.Practice, 0, count)
	for len(practices) < count {
		occurrence, ok := iterator()
		if !ok {
			break
		}
		practices = append(practices, db.Practice{
			ID:     uuid.New().String(),
			TeamID: teamID,
			Date:   occurrence.Format("2006-01-02"),
			Title:  title,
		})
	}

	if len(practices) == 0 {
		return nil, validationErrorf("recurrence rule produced no occurrences")
	}

	if err := store.InsertPractices(ctx, practices); err != nil {
		return nil, fmt.Errorf("failed to insert practices: %w", err)
	}

	logger.Info("Practices planned",
		zap.String("team_id", teamID),
		zap.Int("count", len(practices)),
		zap.String("first", practices[0].Date),
		zap.String("last", practices[len(practices)-1].Date))

	return &PlanPracticesResult{Practices: practices}, nil
}
