package types

import "time"

// StatusKind is the verification state of a run.
type StatusKind string

const (
	StatusVerified StatusKind = "verified"
	StatusRejected StatusKind = "rejected"
	StatusNew      StatusKind = "new"
)

// Display returns the sheet rendering of the status kind.
func (k StatusKind) Display() string {
	switch k {
	case StatusVerified:
		return "Verified"
	case StatusRejected:
		return "Rejected"
	case StatusNew:
		return "New"
	default:
		return string(k)
	}
}

// RunStatus carries the verification state plus the moderator's rejection
// reason and verification date when present.
type RunStatus struct {
	Kind       StatusKind
	Reason     string
	VerifyDate *time.Time
}

// Player is one participant slot of a run.
type Player struct {
	Name string
}

// RunTimes holds the per-method elapsed times; a nil entry means the run
// carries no time for that method.
type RunTimes struct {
	RealTime        *time.Duration
	RealTimeNoLoads *time.Duration
	InGame          *time.Duration
}

// Run is a single submitted result belonging to one category.
type Run struct {
	ID         string
	GameID     string
	CategoryID string
	LevelID    string

	// Values maps variable ID to the value ID assigned on this run.
	Values map[string]string

	Players []Player
	Times   RunTimes

	PlatformID string
	Emulated   bool
	RegionID   string

	// Date is the date the run was performed; Submitted when it reached
	// the catalog. Either may be absent.
	Date      *time.Time
	Submitted *time.Time

	Videos  []string
	Splits  string
	Comment string
	Status  RunStatus
}

// EffectiveDate returns the run's submission date, falling back to the
// verification date and then the occurrence date. Nil when the run carries
// no timestamp of any kind; such runs are excluded from staleness
// comparisons.
func (r *Run) EffectiveDate() *time.Time {
	if r.Submitted != nil {
		return r.Submitted
	}
	if r.Status.VerifyDate != nil {
		return r.Status.VerifyDate
	}
	return r.Date
}
