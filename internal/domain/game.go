package domain

import (
	"fmt"
	"time"
)

// GameKey is the canonical identity of a sporting event: the two canonical
// team identifiers in lexicographic order plus the event date. Time-of-day is
// deliberately excluded so that venue clock skew cannot split one game into
// two keys. GameKey is comparable and usable as a map key.
type GameKey struct {
	TeamA string // lexicographically smaller canonical team ID
	TeamB string
	Date  string // "2006-01-02", UTC calendar date
}

// NewGameKey builds a GameKey from two canonical team IDs (in any order) and
// the event date.
func NewGameKey(team1, team2 string, date time.Time) GameKey {
	a, b := team1, team2
	if b < a {
		a, b = b, a
	}
	return GameKey{TeamA: a, TeamB: b, Date: date.UTC().Format("2006-01-02")}
}

func (k GameKey) String() string {
	return fmt.Sprintf("%s@%s/%s", k.TeamA, k.TeamB, k.Date)
}

// ResolvedContract is a Contract annotated with its canonical identity. The
// resolver guarantees Line is the unsigned spread magnitude and Favored is
// the canonical ID of the team laying the points.
type ResolvedContract struct {
	Contract
	Key     GameKey
	RLine   float64 // canonical unsigned line magnitude
	Favored string  // canonical team ID of the favorite
	// FavoredSlotA records whether outcome slot A prices the proposition
	// "the favored team covers the spread". Venues do not agree on slot
	// ordering, so the evaluator must align through this flag rather than
	// comparing array indexes.
	FavoredSlotA bool
}

// FavoredCoverPrice returns the cost of taking "favorite covers" on this
// contract's venue.
func (r ResolvedContract) FavoredCoverPrice() float64 {
	if r.FavoredSlotA {
		return r.OutcomeAPrice
	}
	return r.OutcomeBPrice
}

// UnderdogCoverPrice returns the cost of the logically opposite proposition,
// "underdog covers" (the favorite fails to cover).
func (r ResolvedContract) UnderdogCoverPrice() float64 {
	if r.FavoredSlotA {
		return r.OutcomeBPrice
	}
	return r.OutcomeAPrice
}
