package domain

import "errors"

var (
	// ErrMalformedPriceData marks a venue record whose price arrays could not
	// be parsed. The record is skipped; the batch survives.
	ErrMalformedPriceData = errors.New("malformed price data")
	// ErrUnknownTeam marks a contract whose team tokens do not resolve
	// against the alias table.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrNoSpreadLine marks a contract without a point-spread line; such
	// contracts are out of scope and excluded before matching.
	ErrNoSpreadLine = errors.New("no spread line")
	// ErrNoEventDate marks a contract for which neither an explicit event
	// date nor a usable end time is available.
	ErrNoEventDate = errors.New("no event date")
	// ErrVenueUnavailable marks a cycle in which a venue's listing could not
	// be fetched. The cycle yields no opportunities rather than failing.
	ErrVenueUnavailable = errors.New("venue unavailable")
)
