package db

import "time"

// EquipmentType classifies a physical asset
type EquipmentType string

const (
	EquipmentShell  EquipmentType = "SHELL"
	EquipmentOar    EquipmentType = "OAR"
	EquipmentErg    EquipmentType = "ERG"
	EquipmentLaunch EquipmentType = "LAUNCH"
	EquipmentOther  EquipmentType = "OTHER"
)

// Severity orders damage reports from minor to critical
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) IsValid() bool {
	return s == SeverityMinor || s == SeverityModerate || s == SeverityCritical
}

// ReportStatus tracks whether a damage report still affects readiness
type ReportStatus string

const (
	ReportOpen     ReportStatus = "OPEN"
	ReportResolved ReportStatus = "RESOLVED"
)

// BlockType classifies a practice block; only WATER blocks carry lineups
type BlockType string

const (
	BlockWater   BlockType = "WATER"
	BlockLand    BlockType = "LAND"
	BlockErg     BlockType = "ERG"
	BlockMeeting BlockType = "MEETING"
)

// Side is the rigging side of a seat (NONE for coxswains)
type Side string

const (
	SidePort      Side = "PORT"
	SideStarboard Side = "STARBOARD"
	SideNone      Side = "NONE"
)

func (s Side) IsValid() bool {
	return s == SidePort || s == SideStarboard || s == SideNone
}

// Equipment represents a physical asset owned by a team.
// Readiness is never stored on the record; it is derived on every read
// from LastInspectedAt, ManualUnavailable and the open damage reports.
type Equipment struct {
	ID                string
	TeamID            string
	Name              string
	Type              EquipmentType
	BoatClass         string // empty for non-shells
	ManualUnavailable bool
	ManualNote        string
	LastInspectedAt   *time.Time
}

// DamageReport represents a reported defect on a piece of equipment
type DamageReport struct {
	ID          string
	EquipmentID string
	Severity    Severity
	Status      ReportStatus
	Location    string
	Description string
	PhotoURL    string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// TeamSettings holds per-team readiness thresholds, in days
type TeamSettings struct {
	TeamID             string
	InspectSoonDays    int
	NeedsAttentionDays int
	OutOfServiceDays   int
}

// Athlete represents a rower or coxswain on a team roster
type Athlete struct {
	ID        string
	TeamID    string
	FirstName string
	LastName  string
	Active    bool
}

// Practice represents one scheduled session
type Practice struct {
	ID     string
	TeamID string
	Date   string // Date format
	Title  string
}

// Block represents one segment of a practice
type Block struct {
	ID         string
	PracticeID string
	TeamID     string
	Type       BlockType
	Title      string
}

// Lineup represents the boat+crew assignment for one water block
type Lineup struct {
	ID      string
	BlockID string
	BoatID  *string // nullable; a lineup can exist without a boat
	Notes   string
}

// Seat represents one position within a lineup, optionally occupied
type Seat struct {
	ID        string
	LineupID  string
	Position  int
	Side      Side
	AthleteID *string
}

// LineupWithSeats pairs a lineup with its full seat set for atomic writes
type LineupWithSeats struct {
	Lineup Lineup
	Seats  []Seat
}

// LineupTemplate is a reusable named crew configuration for a boat class
type LineupTemplate struct {
	ID            string
	TeamID        string
	Name          string
	BoatClass     string
	DefaultBoatID *string
}

// TemplateSeat represents one seat in a lineup template
type TemplateSeat struct {
	ID         string
	TemplateID string
	Position   int
	Side       Side
	AthleteID  *string
}

// UsageLog ties a boat to a practice for utilization analytics.
// Append-only aside from reconciliation when a lineup's boat changes.
type UsageLog struct {
	ID          string
	EquipmentID string
	TeamID      string
	PracticeID  string
	LineupID    *string
	UsedOn      string // Date format
}

// BlockAssignment represents one athlete on a land/erg block roster
type BlockAssignment struct {
	ID        string
	BlockID   string
	AthleteID string
}

// Entry represents a regatta entry for a team
type Entry struct {
	ID        string
	TeamID    string
	RegattaID string
	EventName string
	BoatClass string
}

// EntryLineup mirrors Lineup but is scoped to a regatta entry
type EntryLineup struct {
	ID      string
	EntryID string
	BoatID  *string
	Notes   string
}

// EntrySeat mirrors Seat for a regatta entry lineup
type EntrySeat struct {
	ID            string
	EntryLineupID string
	Position      int
	Side          Side
	AthleteID     *string
}

// EntryLineupWithSeats pairs an entry lineup with its seats for atomic writes
type EntryLineupWithSeats struct {
	Lineup EntryLineup
	Seats  []EntrySeat
}
