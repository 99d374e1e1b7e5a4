package models

// SeasonHomeRecord tallies a team's decided matches for one season split by
// venue, with the derived win ratios and home advantage.
type SeasonHomeRecord struct {
	HomeWins   int `json:"homeWins"`
	HomeDraws  int `json:"homeDraws"`
	HomeLosses int `json:"homeLosses"`
	AwayWins   int `json:"awayWins"`
	AwayDraws  int `json:"awayDraws"`
	AwayLosses int `json:"awayLosses"`

	HomePlayed int `json:"homePlayed"`
	Played     int `json:"played"`

	WinRatioHome    float64 `json:"winRatioHome"`
	WinRatioOverall float64 `json:"winRatioOverall"`
	// Advantage is WinRatioHome - WinRatioOverall.
	Advantage float64 `json:"advantage"`
}

// HomeAdvantage carries a team's per-season venue records and the averaged
// TotalHomeAdvantage over the included seasons.
type HomeAdvantage struct {
	Team               string                   `json:"team"`
	Seasons            map[int]SeasonHomeRecord `json:"seasons"`
	TotalHomeAdvantage float64                  `json:"totalHomeAdvantage"`
}
