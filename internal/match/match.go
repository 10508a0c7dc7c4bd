// Package match groups resolved contracts from both venues into matched
// pairs sharing the same game and line.
package match

import (
	"sort"
	"time"

	"github.com/kwatts/spreadarb/internal/domain"
)

// Pairs groups resolved contracts by game (teams, date, canonical line) and
// returns one MatchedPair per group holding exactly one contract from each
// venue.
//
// Groups holding duplicate listings (more than one contract from the same
// venue) are excluded and reported as Ambiguities: duplicates must never
// silently produce a spurious opportunity. Groups with a single contract and
// no counterparty on the other venue are simply unmatched, which is the
// common case, not a data-quality problem.
//
// lineTolerance widens line equality; 0 (the default) demands identical
// lines, which is what spread arbitrage requires. dayTolerance widens date
// equality by that many calendar days: venues date a late kickoff on
// different sides of UTC midnight, so tolerance 1 absorbs that skew, while 0
// keeps doubleheaders strictly apart. The result is independent of input
// order: contracts are sorted internally and output is ordered by game key
// and line.
func Pairs(resolved []domain.ResolvedContract, lineTolerance float64, dayTolerance int) ([]domain.MatchedPair, []domain.Ambiguity) {
	type matchup struct {
		teamA, teamB string
	}
	byTeams := make(map[matchup][]domain.ResolvedContract)
	for _, rc := range resolved {
		m := matchup{teamA: rc.Key.TeamA, teamB: rc.Key.TeamB}
		byTeams[m] = append(byTeams[m], rc)
	}

	matchups := make([]matchup, 0, len(byTeams))
	for m := range byTeams {
		matchups = append(matchups, m)
	}
	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].teamA != matchups[j].teamA {
			return matchups[i].teamA < matchups[j].teamA
		}
		return matchups[i].teamB < matchups[j].teamB
	})

	var pairs []domain.MatchedPair
	var ambiguities []domain.Ambiguity

	for _, m := range matchups {
		group := byTeams[m]
		sort.Slice(group, func(i, j int) bool {
			// Date strings are "2006-01-02": lexicographic order is
			// chronological order.
			if group[i].Key.Date != group[j].Key.Date {
				return group[i].Key.Date < group[j].Key.Date
			}
			if group[i].RLine != group[j].RLine {
				return group[i].RLine < group[j].RLine
			}
			if group[i].Venue != group[j].Venue {
				return group[i].Venue < group[j].Venue
			}
			return group[i].ExternalID < group[j].ExternalID
		})

		for start := 0; start < len(group); {
			end := start + 1
			for end < len(group) && dayDiff(group[start].Key.Date, group[end].Key.Date) <= dayTolerance {
				end++
			}
			p, a := pairLines(group[start:end], lineTolerance)
			pairs = append(pairs, p...)
			ambiguities = append(ambiguities, a...)
			start = end
		}
	}

	return pairs, ambiguities
}

// pairLines clusters one same-game slice (already date-merged and sorted) by
// line and pairs each cluster.
func pairLines(game []domain.ResolvedContract, lineTolerance float64) ([]domain.MatchedPair, []domain.Ambiguity) {
	sort.SliceStable(game, func(i, j int) bool {
		return game[i].RLine < game[j].RLine
	})

	var pairs []domain.MatchedPair
	var ambiguities []domain.Ambiguity

	for start := 0; start < len(game); {
		end := start + 1
		for end < len(game) && game[end].RLine-game[start].RLine <= lineTolerance {
			end++
		}
		cluster := game[start:end]
		start = end

		var poly, kalshi []domain.ResolvedContract
		for _, rc := range cluster {
			if rc.Venue == domain.VenuePolymarket {
				poly = append(poly, rc)
			} else {
				kalshi = append(kalshi, rc)
			}
		}

		switch {
		case len(poly) == 1 && len(kalshi) == 1:
			pairs = append(pairs, domain.MatchedPair{Polymarket: poly[0], Kalshi: kalshi[0]})
		case len(cluster) >= 2:
			ambiguities = append(ambiguities, domain.Ambiguity{
				Key:             cluster[0].Key,
				Line:            cluster[0].RLine,
				PolymarketCount: len(poly),
				KalshiCount:     len(kalshi),
			})
		}
	}

	return pairs, ambiguities
}

// dayDiff returns the whole calendar days between two "2006-01-02" dates.
// Unparseable dates only ever match themselves.
func dayDiff(a, b string) int {
	if a == b {
		return 0
	}
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return int(^uint(0) >> 1)
	}
	d := int(tb.Sub(ta).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
