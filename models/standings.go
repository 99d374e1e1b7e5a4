package models

// StandingsRow is one team's league-table line for a single season.
// Invariants: Played == Won+Drawn+Lost, Points == 3*Won + Drawn, GD == GF-GA.
type StandingsRow struct {
	Team     string `json:"team"`
	Season   int    `json:"season"`
	Position int    `json:"position"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Drawn    int    `json:"drawn"`
	Lost     int    `json:"lost"`
	GF       int    `json:"gf"`
	GA       int    `json:"ga"`
	GD       int    `json:"gd"`
	Points   int    `json:"points"`
}
