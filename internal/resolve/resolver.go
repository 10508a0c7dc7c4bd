// Package resolve derives the canonical identity of a contract: which game it
// refers to (teams plus date) and what its unsigned line is. Venues spell
// teams differently and disagree on which outcome slot is the favorite, so
// everything downstream of this package works in canonical terms only.
package resolve

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/kwatts/spreadarb/internal/domain"
	"github.com/kwatts/spreadarb/internal/platform/kalshi"
)

// Resolver annotates contracts with their canonical game key, line, and
// favored-team metadata. It is stateless apart from the read-only alias
// table.
type Resolver struct {
	table  *AliasTable
	logger *slog.Logger
}

// NewResolver creates a resolver over the given alias table.
func NewResolver(table *AliasTable, logger *slog.Logger) *Resolver {
	return &Resolver{
		table:  table,
		logger: logger.With(slog.String("component", "resolver")),
	}
}

// Table exposes the resolver's alias table for display-name lookups.
func (r *Resolver) Table() *AliasTable { return r.table }

// Resolve maps a contract to its canonical identity. Failures are
// per-contract: domain.ErrUnknownTeam when team tokens cannot be resolved,
// domain.ErrNoSpreadLine for lineless contracts, domain.ErrNoEventDate when
// no date can be derived. The caller excludes the contract and continues.
func (r *Resolver) Resolve(c domain.Contract) (domain.ResolvedContract, error) {
	switch c.Venue {
	case domain.VenueKalshi:
		return r.resolveKalshi(c)
	default:
		return r.resolvePolymarket(c)
	}
}

// resolveKalshi reads identity out of the ticker: date and team
// abbreviations from the body, the favorite from the side token (the YES
// proposition is "side team covers").
func (r *Resolver) resolveKalshi(c domain.Contract) (domain.ResolvedContract, error) {
	line, ok := c.LineValue()
	if !ok {
		return domain.ResolvedContract{}, fmt.Errorf("%w: %s", domain.ErrNoSpreadLine, c.ExternalID)
	}

	info, ok := kalshi.DecodeTicker(c.ExternalID)
	if !ok {
		return domain.ResolvedContract{}, fmt.Errorf("%w: undecodable ticker %s", domain.ErrUnknownTeam, c.ExternalID)
	}

	// The teams blob concatenates two abbreviations; pick the split whose
	// halves both resolve.
	var away, home string
	for _, split := range info.TeamSplits() {
		a, okA := r.table.Lookup(split[0])
		h, okH := r.table.Lookup(split[1])
		if okA && okH && a != h {
			away, home = a, h
			break
		}
	}
	if away == "" {
		return domain.ResolvedContract{}, fmt.Errorf("%w: teams %q in %s", domain.ErrUnknownTeam, info.TeamsBlob, c.ExternalID)
	}

	favored, ok := r.table.Lookup(info.Side)
	if !ok || (favored != away && favored != home) {
		return domain.ResolvedContract{}, fmt.Errorf("%w: side %q in %s", domain.ErrUnknownTeam, info.Side, c.ExternalID)
	}

	return domain.ResolvedContract{
		Contract: c,
		Key:      domain.NewGameKey(away, home, info.Date),
		RLine:    math.Abs(line),
		Favored:  favored,
		// Kalshi YES always prices "side team covers", and the side team
		// is the one laying the points.
		FavoredSlotA: true,
	}, nil
}

// resolvePolymarket reads identity out of the free-text label. The label must
// mention both teams; the subject (the team the quoted line applies to) is
// located in the outcome-A label, and the line's sign says whether the
// subject is laying or getting the points.
func (r *Resolver) resolvePolymarket(c domain.Contract) (domain.ResolvedContract, error) {
	line, ok := c.LineValue()
	if !ok {
		return domain.ResolvedContract{}, fmt.Errorf("%w: %s", domain.ErrNoSpreadLine, c.ExternalID)
	}
	if c.EndTime.IsZero() {
		return domain.ResolvedContract{}, fmt.Errorf("%w: %s", domain.ErrNoEventDate, c.ExternalID)
	}

	matches := r.table.FindTeams(c.RawLabel)
	if len(matches) < 2 {
		return domain.ResolvedContract{}, fmt.Errorf("%w: found %d team(s) in %q", domain.ErrUnknownTeam, len(matches), c.RawLabel)
	}
	team1, team2 := matches[0].ID, matches[1].ID

	subject := team1
	if subj := r.table.FindTeams(c.OutcomeALabel); len(subj) > 0 {
		subject = subj[0].ID
	}
	other := team1
	if other == subject {
		other = team2
	}
	if subject != team1 && subject != team2 {
		return domain.ResolvedContract{}, fmt.Errorf("%w: outcome subject %s not among game teams in %q", domain.ErrUnknownTeam, subject, c.RawLabel)
	}

	// Negative line: the subject lays the points, i.e. is the favorite.
	favored := subject
	if line > 0 {
		favored = other
	}

	return domain.ResolvedContract{
		Contract: c,
		Key:      domain.NewGameKey(team1, team2, c.EndTime),
		RLine:    math.Abs(line),
		Favored:  favored,
		// Slot A prices "subject covers"; that is the favorite-covers
		// proposition only when the subject is the favorite.
		FavoredSlotA: favored == subject,
	}, nil
}
