package resolve

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Team is one canonical team with the venue-facing spellings that map to it.
type Team struct {
	ID      string   `toml:"id"`   // canonical identifier, e.g. "PHI"
	Name    string   `toml:"name"` // display name, e.g. "Philadelphia Eagles"
	Aliases []string `toml:"aliases"`
}

// TeamMatch is one team located inside a free-text label.
type TeamMatch struct {
	ID  string
	Pos int // byte offset of the match in the normalized label
}

// AliasTable maps venue spellings (city, nickname, ticker abbreviation) to
// canonical team identifiers. It is built once at startup and read-only
// afterwards, so it is safe for concurrent use without locking.
type AliasTable struct {
	byAlias map[string]string // normalized alias -> team ID
	names   map[string]string // team ID -> display name
	// aliases sorted longest-first; scanning in this order makes the
	// longest-match tie-break deterministic instead of an accident of
	// iteration order.
	aliases []string
}

// NewAliasTable builds a table from the given teams. Later teams extend
// earlier ones: aliases for an existing ID are merged, and a re-mapped alias
// overrides the previous owner.
func NewAliasTable(teams []Team) *AliasTable {
	t := &AliasTable{
		byAlias: make(map[string]string),
		names:   make(map[string]string),
	}
	for _, team := range teams {
		t.names[team.ID] = team.Name
		for _, alias := range append([]string{team.ID}, team.Aliases...) {
			na := normalizeName(alias)
			if na == "" {
				continue
			}
			t.byAlias[na] = team.ID
		}
	}
	t.aliases = make([]string, 0, len(t.byAlias))
	for a := range t.byAlias {
		t.aliases = append(t.aliases, a)
	}
	sort.Slice(t.aliases, func(i, j int) bool {
		if len(t.aliases[i]) != len(t.aliases[j]) {
			return len(t.aliases[i]) > len(t.aliases[j])
		}
		return t.aliases[i] < t.aliases[j]
	})
	return t
}

// DefaultTable returns the alias table built from the built-in NFL teams.
func DefaultTable() *AliasTable {
	return NewAliasTable(nflTeams)
}

// LoadTable returns the built-in table extended by the teams in the given
// TOML file. An empty path returns the built-in table unchanged.
func LoadTable(path string) (*AliasTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	var file struct {
		Teams []Team `toml:"teams"`
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("resolve: load alias file %s: %w", path, err)
	}
	return NewAliasTable(append(append([]Team{}, nflTeams...), file.Teams...)), nil
}

// Lookup resolves a single token (e.g. a ticker abbreviation) to a canonical
// team ID.
func (t *AliasTable) Lookup(token string) (string, bool) {
	id, ok := t.byAlias[normalizeName(token)]
	return id, ok
}

// Name returns the display name for a canonical team ID, or the ID itself.
func (t *AliasTable) Name(id string) string {
	if n, ok := t.names[id]; ok {
		return n
	}
	return id
}

// FindTeams scans a free-text label for team mentions. Matching is
// case-insensitive, accent-insensitive, and bounded on word edges. Aliases
// are tried longest-first and each consumes its span of the label, so two
// distinct teams sharing a substring cannot both claim the same text: the
// longer alias wins. Results are ordered by position, one entry per team.
func (t *AliasTable) FindTeams(label string) []TeamMatch {
	normalized := normalizeName(label)
	claimed := make([]bool, len(normalized))

	seen := make(map[string]int) // team ID -> earliest position
	for _, alias := range t.aliases {
		for from := 0; ; {
			idx := strings.Index(normalized[from:], alias)
			if idx < 0 {
				break
			}
			pos := from + idx
			end := pos + len(alias)
			from = pos + 1

			if !wordBounded(normalized, pos, end) || spanClaimed(claimed, pos, end) {
				continue
			}
			for i := pos; i < end; i++ {
				claimed[i] = true
			}
			id := t.byAlias[alias]
			if prev, ok := seen[id]; !ok || pos < prev {
				seen[id] = pos
			}
		}
	}

	matches := make([]TeamMatch, 0, len(seen))
	for id, pos := range seen {
		matches = append(matches, TeamMatch{ID: id, Pos: pos})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Pos != matches[j].Pos {
			return matches[i].Pos < matches[j].Pos
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

func wordBounded(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func spanClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// normalizeName lowercases and strips accents so that venue spellings like
// "São Paulo" and "Sao Paulo" collide.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, name); err == nil {
		name = out
	}
	return name
}

// nflTeams is the built-in alias table. Abbreviations cover the common
// ticker variants; cities shared by two teams (New York, Los Angeles) are
// deliberately not aliases on their own.
var nflTeams = []Team{
	{ID: "ARI", Name: "Arizona Cardinals", Aliases: []string{"arizona", "cardinals"}},
	{ID: "ATL", Name: "Atlanta Falcons", Aliases: []string{"atlanta", "falcons"}},
	{ID: "BAL", Name: "Baltimore Ravens", Aliases: []string{"baltimore", "ravens"}},
	{ID: "BUF", Name: "Buffalo Bills", Aliases: []string{"buffalo", "bills"}},
	{ID: "CAR", Name: "Carolina Panthers", Aliases: []string{"carolina", "panthers"}},
	{ID: "CHI", Name: "Chicago Bears", Aliases: []string{"chicago", "bears"}},
	{ID: "CIN", Name: "Cincinnati Bengals", Aliases: []string{"cincinnati", "bengals"}},
	{ID: "CLE", Name: "Cleveland Browns", Aliases: []string{"cleveland", "browns"}},
	{ID: "DAL", Name: "Dallas Cowboys", Aliases: []string{"dallas", "cowboys"}},
	{ID: "DEN", Name: "Denver Broncos", Aliases: []string{"denver", "broncos"}},
	{ID: "DET", Name: "Detroit Lions", Aliases: []string{"detroit", "lions"}},
	{ID: "GB", Name: "Green Bay Packers", Aliases: []string{"gnb", "green bay", "packers"}},
	{ID: "HOU", Name: "Houston Texans", Aliases: []string{"houston", "texans"}},
	{ID: "IND", Name: "Indianapolis Colts", Aliases: []string{"indianapolis", "colts"}},
	{ID: "JAX", Name: "Jacksonville Jaguars", Aliases: []string{"jac", "jacksonville", "jaguars"}},
	{ID: "KC", Name: "Kansas City Chiefs", Aliases: []string{"kan", "kansas city", "chiefs"}},
	{ID: "LAC", Name: "Los Angeles Chargers", Aliases: []string{"la chargers", "chargers"}},
	{ID: "LAR", Name: "Los Angeles Rams", Aliases: []string{"la rams", "rams"}},
	{ID: "LV", Name: "Las Vegas Raiders", Aliases: []string{"lvr", "las vegas", "raiders"}},
	{ID: "MIA", Name: "Miami Dolphins", Aliases: []string{"miami", "dolphins"}},
	{ID: "MIN", Name: "Minnesota Vikings", Aliases: []string{"minnesota", "vikings"}},
	{ID: "NE", Name: "New England Patriots", Aliases: []string{"nwe", "new england", "patriots"}},
	{ID: "NO", Name: "New Orleans Saints", Aliases: []string{"nor", "new orleans", "saints"}},
	{ID: "NYG", Name: "New York Giants", Aliases: []string{"ny giants", "giants"}},
	{ID: "NYJ", Name: "New York Jets", Aliases: []string{"ny jets", "jets"}},
	{ID: "PHI", Name: "Philadelphia Eagles", Aliases: []string{"philadelphia", "eagles"}},
	{ID: "PIT", Name: "Pittsburgh Steelers", Aliases: []string{"pittsburgh", "steelers"}},
	{ID: "SEA", Name: "Seattle Seahawks", Aliases: []string{"seattle", "seahawks"}},
	{ID: "SF", Name: "San Francisco 49ers", Aliases: []string{"sfo", "san francisco", "49ers", "niners"}},
	{ID: "TB", Name: "Tampa Bay Buccaneers", Aliases: []string{"tam", "tampa bay", "buccaneers", "bucs"}},
	{ID: "TEN", Name: "Tennessee Titans", Aliases: []string{"tennessee", "titans"}},
	{ID: "WSH", Name: "Washington Commanders", Aliases: []string{"was", "washington", "commanders"}},
}
