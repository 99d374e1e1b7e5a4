package models

// SeasonStats holds a team's simple per-game aggregates for the current
// season, each paired with its league rank as an ordinal string ("1st",
// "11th", ...). A team with zero games played reports zero for every ratio.
type SeasonStats struct {
	Team   string `json:"team"`
	Played int    `json:"played"`

	GoalsPerGame        float64 `json:"goalsPerGame"`
	GoalsPerGameRank    string  `json:"goalsPerGameRank"`
	ConcededPerGame     float64 `json:"concededPerGame"`
	ConcededPerGameRank string  `json:"concededPerGameRank"`
	CleanSheetRatio     float64 `json:"cleanSheetRatio"`
	CleanSheetRank      string  `json:"cleanSheetRank"`
	// NoGoalRatio is the share of played games in which the team failed to
	// score.
	NoGoalRatio float64 `json:"noGoalRatio"`
	NoGoalRank  string  `json:"noGoalRank"`
}
