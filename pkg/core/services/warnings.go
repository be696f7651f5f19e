package services

// WarningCode identifies a degraded-application condition. Warnings
// accompany a successful result; they never block the operation.
type WarningCode string

const (
	WarningMissingAthlete    WarningCode = "missing_athlete"
	WarningUnavailableBoat   WarningCode = "unavailable_boat"
	WarningBoatClassMismatch WarningCode = "boat_class_mismatch"
)

// Warning describes one condition the operation degraded around
type Warning struct {
	Code     WarningCode
	Position int // seat position for missing_athlete, 0 otherwise
	Message  string
}
