package types

import "time"

// TimingMethod identifies one of the three ways a run can be timed.
type TimingMethod string

// Timing methods a game's ruleset may enable, each independently optional.
const (
	TimingRealTime        TimingMethod = "realtime"
	TimingRealTimeNoLoads TimingMethod = "realtime_noloads"
	TimingInGame          TimingMethod = "ingame"
)

// Game is an immutable snapshot of one archivable game and the collections
// embedded with it. It is fetched fresh at the start of every backup pass
// and never mutated afterwards.
type Game struct {
	ID           string
	Name         string
	Abbreviation string
	Created      *time.Time
	Ruleset      Ruleset
	Levels       []Level
	Categories   []Category
	Platforms    []Platform
	Regions      []Region
	Variables    []Variable
}

// Ruleset carries the per-game timing and hardware policy.
type Ruleset struct {
	TimingMethods    []TimingMethod
	EmulatorsAllowed bool
}

// Times reports whether the ruleset enables the given timing method.
func (r Ruleset) Times(m TimingMethod) bool {
	for _, tm := range r.TimingMethods {
		if tm == m {
			return true
		}
	}
	return false
}

// Level is a sub-location a per-level category's runs are attached to.
type Level struct {
	ID   string
	Name string
}

// Platform is a hardware platform runs can be performed on.
type Platform struct {
	ID   string
	Name string
}

// Region is a release region (NTSC-U, PAL, ...).
type Region struct {
	ID   string
	Name string
}

// GameSummary is the header-only form returned by catalog listings.
type GameSummary struct {
	ID           string
	Name         string
	Abbreviation string
}

// User is a catalog account; backups of a user's portfolio start from the
// set of games the user has submitted runs to.
type User struct {
	ID   string
	Name string
}
