// Package events carries the side-effect contracts emitted by the lineup
// services after their primary transaction commits. Consumers apply
// supplementary effects (usage logs, notifications) without being able to
// fail the originating operation.
package events

import "context"

// LineupBoatChanged is emitted whenever a lineup's boat assignment changes,
// including lineup creation (OldBoatID nil) and deletion (NewBoatID nil)
type LineupBoatChanged struct {
	TeamID     string
	PracticeID string
	BlockID    string
	LineupID   string
	OldBoatID  *string
	NewBoatID  *string
	UsedOn     string // Date format
}

// Sink receives lineup events. Publish errors are advisory: callers log
// them and carry on, they never roll back the lineup operation.
type Sink interface {
	Publish(ctx context.Context, event LineupBoatChanged) error
}

// NopSink discards all events
type NopSink struct{}

func (NopSink) Publish(ctx context.Context, event LineupBoatChanged) error {
	return nil
}
