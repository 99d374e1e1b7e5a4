package models

import "time"

// Match status values as delivered by the fixtures feed.
const (
	StatusScheduled = "SCHEDULED"
	StatusInPlay    = "IN_PLAY"
	StatusFinished  = "FINISHED"
)

// Match is a single fixture within a season. Goals are only meaningful once
// the status is FINISHED.
type Match struct {
	Season    int       `json:"season"`
	Matchday  int       `json:"matchday"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	Status    string    `json:"status"`
	HomeGoals int       `json:"homeGoals"`
	AwayGoals int       `json:"awayGoals"`
}

// Finished reports whether the match has been played to completion.
func (m Match) Finished() bool { return m.Status == StatusFinished }

// Involves reports whether the named team played in this match.
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Opponent returns the other side of the match from team's perspective.
func (m Match) Opponent(team string) string {
	if m.HomeTeam == team {
		return m.AwayTeam
	}
	return m.HomeTeam
}

// GoalDifference returns the signed goal difference from team's perspective.
func (m Match) GoalDifference(team string) int {
	if m.HomeTeam == team {
		return m.HomeGoals - m.AwayGoals
	}
	return m.AwayGoals - m.HomeGoals
}

// Result returns "W", "D" or "L" from team's perspective.
func (m Match) Result(team string) string {
	gd := m.GoalDifference(team)
	switch {
	case gd > 0:
		return "W"
	case gd < 0:
		return "L"
	default:
		return "D"
	}
}
