package models

import "time"

// Meeting is one historical head-to-head match between a team and its next
// opponent.
type Meeting struct {
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeGoals int       `json:"homeGoals"`
	AwayGoals int       `json:"awayGoals"`
	// Result is "Won", "Drew" or "Lost" from the subject team's perspective.
	Result string `json:"result"`
}

// UpcomingFixture describes a team's next scheduled match and the full
// head-to-head history against that opponent, newest first.
type UpcomingFixture struct {
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`
	AtHome   bool      `json:"atHome"`
	Date     time.Time `json:"date"`
	Matchday int       `json:"matchday"`

	PreviousMeetings []Meeting `json:"previousMeetings"`
}
