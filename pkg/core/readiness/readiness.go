// Package readiness derives the operational status of a piece of equipment
// from its inspection recency, manual-override flag and open damage reports.
// It is pure computation: no I/O, no clock access, no stored state.
package readiness

import (
	"fmt"
	"time"
)

// Status is the derived operational-availability status of equipment
type Status string

const (
	StatusReady          Status = "READY"
	StatusInspectSoon    Status = "INSPECT_SOON"
	StatusNeedsAttention Status = "NEEDS_ATTENTION"
	StatusOutOfService   Status = "OUT_OF_SERVICE"
)

// AllStatuses lists every status in increasing severity order.
// Fleet aggregation uses this to produce a stable set of buckets.
var AllStatuses = []Status{StatusReady, StatusInspectSoon, StatusNeedsAttention, StatusOutOfService}

// Severity orders open damage reports; only CRITICAL forces OUT_OF_SERVICE
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeverityCritical Severity = "CRITICAL"
)

// Thresholds are the per-team day counts that drive the staleness ladder.
// Correct computation requires InspectSoonDays < NeedsAttentionDays < OutOfServiceDays;
// validating that is a configuration concern, not the engine's.
type Thresholds struct {
	InspectSoonDays    int
	NeedsAttentionDays int
	OutOfServiceDays   int
}

// DefaultThresholds returns the thresholds used when a team has not
// configured its own
func DefaultThresholds() Thresholds {
	return Thresholds{
		InspectSoonDays:    14,
		NeedsAttentionDays: 21,
		OutOfServiceDays:   30,
	}
}

// Equipment is the readiness-relevant slice of an equipment record
type Equipment struct {
	ManualUnavailable bool
	ManualNote        string
	LastInspectedAt   *time.Time
}

// Result is a derived status plus the conditions that contributed to it
type Result struct {
	Status  Status
	Reasons []string
}

// Compute derives the status of one piece of equipment. First match wins,
// most severe first:
//
//  1. manual override            -> OUT_OF_SERVICE
//  2. open CRITICAL report       -> OUT_OF_SERVICE
//  3. any open report            -> NEEDS_ATTENTION
//  4. never inspected            -> NEEDS_ATTENTION
//  5. days since inspection vs thresholds, most severe first
//
// Reasons accumulate every contributing condition, not just the one that
// decided the status, so detail pages can show the full picture.
func Compute(eq Equipment, openSeverities []Severity, t Thresholds, now time.Time) Result {
	status := StatusReady
	var reasons []string

	decide := func(s Status) {
		if status == StatusReady {
			status = s
		}
	}

	if eq.ManualUnavailable {
		note := eq.ManualNote
		if note == "" {
			note = "manually marked unavailable"
		} else {
			note = "manually marked unavailable: " + note
		}
		reasons = append(reasons, note)
		decide(StatusOutOfService)
	}

	critical := 0
	for _, sev := range openSeverities {
		if sev == SeverityCritical {
			critical++
		}
	}

	if critical > 0 {
		reasons = append(reasons, fmt.Sprintf("%d open critical damage report(s)", critical))
		decide(StatusOutOfService)
	} else if len(openSeverities) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d open damage report(s)", len(openSeverities)))
		decide(StatusNeedsAttention)
	}

	if eq.LastInspectedAt == nil {
		// Never inspected counts as maximally stale but never blocks use
		// outright on its own
		reasons = append(reasons, "no inspection on record")
		decide(StatusNeedsAttention)
		return Result{Status: status, Reasons: reasons}
	}

	days := daysSince(*eq.LastInspectedAt, now)
	switch {
	case days >= t.OutOfServiceDays:
		reasons = append(reasons, fmt.Sprintf("not inspected in %d days", days))
		decide(StatusOutOfService)
	case days >= t.NeedsAttentionDays:
		reasons = append(reasons, fmt.Sprintf("not inspected in %d days", days))
		decide(StatusNeedsAttention)
	case days >= t.InspectSoonDays:
		reasons = append(reasons, fmt.Sprintf("last inspected %d days ago", days))
		decide(StatusInspectSoon)
	}

	return Result{Status: status, Reasons: reasons}
}

// Available reports whether equipment can be auto-assigned to a lineup.
// This is the simplified presence check used by template application:
// no manual override and no open damage report of any severity.
func Available(eq Equipment, openSeverities []Severity) bool {
	return !eq.ManualUnavailable && len(openSeverities) == 0
}

// FleetItem pairs one equipment record with its open report severities
type FleetItem struct {
	Equipment      Equipment
	OpenSeverities []Severity
}

// AggregateFleetHealth tallies Compute over a fleet. Every status bucket is
// present in the result, zero-filled if absent, so dashboards render a
// stable set of counts.
func AggregateFleetHealth(fleet []FleetItem, t Thresholds, now time.Time) map[Status]int {
	counts := make(map[Status]int, len(AllStatuses))
	for _, status := range AllStatuses {
		counts[status] = 0
	}
	for _, item := range fleet {
		result := Compute(item.Equipment, item.OpenSeverities, t, now)
		counts[result.Status]++
	}
	return counts
}

// daysSince returns whole days elapsed between two instants
func daysSince(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
