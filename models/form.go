package models

import "time"

// FormRecord captures a team's state after one played matchday. Records are
// ordered by the date the game was actually played, not by matchday number,
// since rescheduling can move matchdays out of numeric sequence.
type FormRecord struct {
	Matchday int       `json:"matchday"`
	Date     time.Time `json:"date"`
	// Opponent holds the opposition team's initials.
	Opponent string `json:"opponent"`
	AtHome   bool   `json:"atHome"`
	// Result is "W", "D" or "L" from this team's perspective.
	Result string `json:"result"`
	GD     int    `json:"gd"`
	Points int    `json:"points"`

	CumGD     int `json:"cumGD"`
	CumPoints int `json:"cumPoints"`
	Position  int `json:"position"`

	// Form5/Form10 are result strings over the trailing window, most recent
	// character first, padded with 'N' where history runs out.
	Form5        string  `json:"form5"`
	Form10       string  `json:"form10"`
	FormRating5  float64 `json:"formRating5"`
	FormRating10 float64 `json:"formRating10"`

	BeatStarTeam bool `json:"beatStarTeam"`
}

// TeamForm is a team's full form history for the current season in played
// order.
type TeamForm struct {
	Team    string       `json:"team"`
	Records []FormRecord `json:"records"`
}

// Latest returns the most recently played form record, or nil if the team
// has not played this season.
func (f *TeamForm) Latest() *FormRecord {
	if f == nil || len(f.Records) == 0 {
		return nil
	}
	return &f.Records[len(f.Records)-1]
}

// FormSummary is the presentation view of a team's recent form: the last
// five games most recent first.
type FormSummary struct {
	Team string `json:"team"`
	// LastFive holds "W"/"D"/"L"/"N" entries, most recent first.
	LastFive []string `json:"lastFive"`
	// Opponents holds initials of the teams played, most recent first.
	Opponents []string `json:"opponents"`
	// StarWins flags wins over star teams, aligned with Opponents.
	StarWins []bool `json:"starWins"`
	// Rating is the current form rating as a percentage, one decimal place.
	Rating float64 `json:"rating"`
	// LongTermRating is the last-10 window rating as a percentage.
	LongTermRating float64 `json:"longTermRating"`
}
