package domain

import "time"

// Venue identifies the prediction-market exchange a contract trades on.
type Venue string

const (
	VenuePolymarket Venue = "polymarket"
	VenueKalshi     Venue = "kalshi"
)

// Contract is one tradeable spread proposition on one venue, normalized out
// of the venue's listing payload. Contracts are immutable value records; each
// pipeline stage produces new values rather than mutating its input.
type Contract struct {
	Venue      Venue
	ExternalID string // market slug (Polymarket) or ticker (Kalshi), unique per venue
	RawLabel   string // free-text description as supplied by the venue
	// OutcomeALabel is the venue's label for outcome slot A (e.g. "Eagles
	// -13.5"). Used by the identity resolver to locate the subject team.
	OutcomeALabel string
	// Line is the signed point-spread magnitude as quoted by the venue, or
	// nil for non-spread contracts. The sign convention is venue-relative;
	// the identity resolver canonicalizes it.
	Line          *float64
	OutcomeAPrice float64 // in [0,1]; not guaranteed to sum to 1 with B
	OutcomeBPrice float64
	Volume        float64
	EndTime       time.Time
}

// LineValue returns the quoted line, or 0 and false for non-spread contracts.
func (c Contract) LineValue() (float64, bool) {
	if c.Line == nil {
		return 0, false
	}
	return *c.Line, true
}
