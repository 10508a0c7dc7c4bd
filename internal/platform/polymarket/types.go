package polymarket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kwatts/spreadarb/internal/domain"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "active" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// APIMarket represents a market as returned by the Polymarket Gamma API.
// Outcomes and OutcomePrices arrive as JSON-encoded strings, not native
// arrays; element types inside vary between numbers and quoted strings.
type APIMarket struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Slug          string   `json:"slug"`
	Active        flexBool `json:"active"`
	Closed        bool     `json:"closed"`
	Outcomes      string   `json:"outcomes"`      // e.g. "[\"Eagles -13.5\",\"No\"]"
	OutcomePrices string   `json:"outcomePrices"` // e.g. "[0.48,0.52]" or "[\"0.48\",\"0.52\"]"
	Spread        *float64 `json:"spread"`        // signed point-spread line; nil for non-spread markets
	Volume        string   `json:"volume"`
	EndDateISO    string   `json:"endDateIso"`
	GameStartTime string   `json:"gameStartTime"`
}

// ToContract converts a Gamma market into a canonical contract. It returns
// domain.ErrMalformedPriceData (wrapped) when the encoded price or outcome
// arrays cannot be parsed or do not hold exactly two entries; the caller
// skips the record and keeps the batch.
func (m *APIMarket) ToContract() (domain.Contract, error) {
	prices, err := parsePriceArray(m.OutcomePrices)
	if err != nil {
		return domain.Contract{}, fmt.Errorf("market %s: outcomePrices: %w", m.ID, err)
	}
	outcomes, err := parseStringArray(m.Outcomes)
	if err != nil {
		return domain.Contract{}, fmt.Errorf("market %s: outcomes: %w", m.ID, err)
	}

	c := domain.Contract{
		Venue:         domain.VenuePolymarket,
		ExternalID:    m.Slug,
		RawLabel:      m.Question,
		OutcomeALabel: outcomes[0],
		Line:          m.Spread,
		OutcomeAPrice: prices[0],
		OutcomeBPrice: prices[1],
	}
	if c.ExternalID == "" {
		c.ExternalID = m.ID
	}

	if v, err := strconv.ParseFloat(m.Volume, 64); err == nil {
		c.Volume = v
	}

	// Prefer the game start time for dating; endDateIso runs past kickoff.
	if t, err := time.Parse(time.RFC3339, m.GameStartTime); err == nil {
		c.EndTime = t
	} else if t, err := time.Parse(time.RFC3339, m.EndDateISO); err == nil {
		c.EndTime = t
	}

	return c, nil
}

// parsePriceArray decodes a JSON-encoded two-element price array whose
// elements may be JSON numbers or quoted decimal strings.
func parsePriceArray(encoded string) ([2]float64, error) {
	var out [2]float64

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrMalformedPriceData, err)
	}
	if len(raw) != 2 {
		return out, fmt.Errorf("%w: expected 2 prices, got %d", domain.ErrMalformedPriceData, len(raw))
	}

	for i, el := range raw {
		var f float64
		if err := json.Unmarshal(el, &f); err != nil {
			var s string
			if err := json.Unmarshal(el, &s); err != nil {
				return out, fmt.Errorf("%w: element %d is neither number nor string", domain.ErrMalformedPriceData, i)
			}
			f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return out, fmt.Errorf("%w: element %d: %v", domain.ErrMalformedPriceData, i, err)
			}
		}
		if f < 0 || f > 1 {
			return out, fmt.Errorf("%w: price %g outside [0,1]", domain.ErrMalformedPriceData, f)
		}
		out[i] = f
	}
	return out, nil
}

// parseStringArray decodes a JSON-encoded two-element string array.
func parseStringArray(encoded string) ([2]string, error) {
	var out [2]string

	var ss []string
	if err := json.Unmarshal([]byte(encoded), &ss); err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrMalformedPriceData, err)
	}
	if len(ss) != 2 {
		return out, fmt.Errorf("%w: expected 2 outcomes, got %d", domain.ErrMalformedPriceData, len(ss))
	}
	out[0], out[1] = ss[0], ss[1]
	return out, nil
}
