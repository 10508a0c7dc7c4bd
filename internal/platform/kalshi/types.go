package kalshi

import "time"

// Market represents a market as returned by the Kalshi REST listing API.
type Market struct {
	Ticker         string  `json:"ticker"`
	EventTicker    string  `json:"event_ticker"`
	Title          string  `json:"title"`
	Subtitle       string  `json:"subtitle"`
	Status         string  `json:"status"` // "open", "closed", "settled"
	YesBid         float64 `json:"yes_bid"`
	YesAsk         float64 `json:"yes_ask"`
	NoBid          float64 `json:"no_bid"`
	NoAsk          float64 `json:"no_ask"`
	LastPrice      float64 `json:"last_price"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"open_interest"`
	FloorStrike    float64 `json:"floor_strike"`
	Result         string  `json:"result"` // "yes", "no", "" (unsettled)
	ExpirationTime string  `json:"expiration_time"`
	CloseTime      string  `json:"close_time"`
}

// endTime returns the best available end timestamp for the market.
func (m *Market) endTime() time.Time {
	if t, err := time.Parse(time.RFC3339, m.CloseTime); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, m.ExpirationTime); err == nil {
		return t
	}
	return time.Time{}
}

// normalizeProb converts a Kalshi cent price (0..100) to a [0,1]
// probability. The API quotes every price in cents, so a one-cent ask is
// 0.01, not a settled market.
func normalizeProb(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / 100.0
}

// ErrorResponse represents a Kalshi API error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
