package kalshi

import (
	"regexp"
	"strconv"
	"time"
)

// TickerInfo is the decoded form of a Kalshi sports ticker such as
// "KXNFLSPREAD-25SEP08PHIATL-PHI3.5". The grammar is venue-defined and has
// drifted before, so decoding is a best-effort pattern match: DecodeTicker
// returns ok=false for anything it does not recognize, never an error.
type TickerInfo struct {
	Series    string    // e.g. "KXNFLSPREAD", "KXNFLGAME"
	Date      time.Time // event date (UTC midnight)
	TeamsBlob string    // concatenated away+home abbreviations, e.g. "PHIATL"
	Side      string    // team abbreviation of the YES side
	Line      float64   // spread magnitude embedded in the side token
	HasLine   bool      // false for moneyline and other lineless products
}

// tickerPattern: SERIES-YYMonDDTEAMS-SIDE[LINE]
// The teams blob is two concatenated 2-3 letter abbreviations.
var tickerPattern = regexp.MustCompile(
	`^([A-Z0-9]+)-(\d{2})([A-Z]{3})(\d{2})([A-Z]{4,6})-([A-Z]{2,3})(\d+(?:\.\d+)?)?$`,
)

var monthAbbrevs = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// DecodeTicker attempts to decode a Kalshi ticker against the expected sports
// grammar. Tickers representing other series, multi-leg products, or any
// future format drift simply fail to decode.
func DecodeTicker(ticker string) (TickerInfo, bool) {
	m := tickerPattern.FindStringSubmatch(ticker)
	if m == nil {
		return TickerInfo{}, false
	}

	month, ok := monthAbbrevs[m[3]]
	if !ok {
		return TickerInfo{}, false
	}
	year, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[4])
	if day < 1 || day > 31 {
		return TickerInfo{}, false
	}

	info := TickerInfo{
		Series:    m[1],
		Date:      time.Date(2000+year, month, day, 0, 0, 0, 0, time.UTC),
		TeamsBlob: m[5],
		Side:      m[6],
	}
	if m[7] != "" {
		line, err := strconv.ParseFloat(m[7], 64)
		if err != nil {
			return TickerInfo{}, false
		}
		info.Line = line
		info.HasLine = true
	}
	return info, true
}

// TeamSplits returns the candidate (away, home) splits of the teams blob.
// NFL abbreviations are 2 or 3 letters, so a 5-letter blob is ambiguous on
// its own; the identity resolver picks the split whose halves both resolve
// against the alias table. Splits are ordered most-likely first.
func (t TickerInfo) TeamSplits() [][2]string {
	var splits [][2]string
	for _, awayLen := range []int{3, 2} {
		homeLen := len(t.TeamsBlob) - awayLen
		if homeLen < 2 || homeLen > 3 {
			continue
		}
		splits = append(splits, [2]string{t.TeamsBlob[:awayLen], t.TeamsBlob[awayLen:]})
	}
	return splits
}
