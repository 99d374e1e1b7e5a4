// Package teams provides the bidirectional mapping between a competition's
// full team names and their 3-letter initials. The registry is built once at
// startup and injected read-only into anything needing lookups.
package teams

import (
	"fmt"
	"strings"
)

// ErrUnknownTeam is returned when 3-letter initials cannot be resolved to a
// known team name.
var ErrUnknownTeam = fmt.Errorf("teams: unknown team")

// Registry maps team initials to canonical full names and back. Both
// directions are collision-free.
type Registry struct {
	nameByInitials map[string]string
	initialsByName map[string]string
}

// NewRegistry builds a registry from an initials -> full name table. It
// fails if either direction would collide.
func NewRegistry(table map[string]string) (*Registry, error) {
	r := &Registry{
		nameByInitials: make(map[string]string, len(table)),
		initialsByName: make(map[string]string, len(table)),
	}
	for initials, name := range table {
		if len(initials) != 3 {
			return nil, fmt.Errorf("teams: initials %q must be 3 letters", initials)
		}
		if existing, ok := r.nameByInitials[initials]; ok {
			return nil, fmt.Errorf("teams: initials %q map to both %q and %q", initials, existing, name)
		}
		if existing, ok := r.initialsByName[name]; ok {
			return nil, fmt.Errorf("teams: name %q maps to both %q and %q", name, existing, initials)
		}
		r.nameByInitials[initials] = name
		r.initialsByName[name] = initials
	}
	return r, nil
}

// Initials returns the 3-letter code for a full team name. Unmapped names
// fall back to the first three letters uppercased.
func (r *Registry) Initials(name string) string {
	if initials, ok := r.initialsByName[name]; ok {
		return initials
	}
	short := strings.ToUpper(name)
	if len(short) > 3 {
		short = short[:3]
	}
	return short
}

// Name resolves 3-letter initials to the canonical team name. There is no
// fallback in this direction: initials carry too little information to
// reconstruct a name, so an unmapped code is a data-quality error.
func (r *Registry) Name(initials string) (string, error) {
	if name, ok := r.nameByInitials[initials]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: no team for initials %q", ErrUnknownTeam, initials)
}

// Known reports whether the full team name is in the registry.
func (r *Registry) Known(name string) bool {
	_, ok := r.initialsByName[name]
	return ok
}

// premierLeague covers every club that has appeared in the competition
// within the retained season window.
var premierLeague = map[string]string{
	"ARS": "Arsenal",
	"AVL": "Aston Villa",
	"BHA": "Brighton and Hove Albion",
	"BOU": "Bournemouth",
	"BRE": "Brentford",
	"BUR": "Burnley",
	"CHE": "Chelsea",
	"CRY": "Crystal Palace",
	"EVE": "Everton",
	"FUL": "Fulham",
	"LEE": "Leeds United",
	"LEI": "Leicester City",
	"LIV": "Liverpool",
	"LUT": "Luton Town",
	"MCI": "Manchester City",
	"MUN": "Manchester United",
	"NEW": "Newcastle United",
	"NOR": "Norwich City",
	"NOT": "Nottingham Forest",
	"SHU": "Sheffield United",
	"SOU": "Southampton",
	"TOT": "Tottenham Hotspur",
	"WAT": "Watford",
	"WBA": "West Bromwich Albion",
	"WHU": "West Ham United",
	"WOL": "Wolverhampton Wanderers",
}

// PremierLeague returns the registry for the Premier League roster.
func PremierLeague() *Registry {
	r, err := NewRegistry(premierLeague)
	if err != nil {
		// The table is static; a collision here is a programming error.
		panic(err)
	}
	return r
}

// CleanName normalises a feed team name to its canonical form: strips FC
// suffixes and replaces ampersands.
func CleanName(name string) string {
	name = strings.ReplaceAll(name, " FC", "")
	name = strings.TrimPrefix(name, "AFC ")
	name = strings.ReplaceAll(name, "&", "and")
	return strings.TrimSpace(name)
}
