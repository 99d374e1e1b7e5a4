package analysis

import (
	"time"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
)

// Small fixture league used across the analysis tests.
const (
	alpha = "Alpha Town"
	beta  = "Beta City"
	gamma = "Gamma Rovers"
	delta = "Delta United"
)

func day(season, offset int) time.Time {
	return time.Date(season, 9, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func finished(season, matchday int, date time.Time, home, away string, hg, ag int) models.Match {
	return models.Match{
		Season:    season,
		Matchday:  matchday,
		Date:      date,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    models.StatusFinished,
		HomeGoals: hg,
		AwayGoals: ag,
	}
}

func scheduled(season, matchday int, date time.Time, home, away string) models.Match {
	return models.Match{
		Season:   season,
		Matchday: matchday,
		Date:     date,
		HomeTeam: home,
		AwayTeam: away,
		Status:   models.StatusScheduled,
	}
}

// threeTeamSeason is a short season among Alpha, Beta and Gamma with one
// game per matchday.
func threeTeamSeason(year int) *dataset.Season {
	return &dataset.Season{
		Year: year,
		Matches: []models.Match{
			finished(year, 1, day(year, 0), beta, alpha, 1, 0),
			finished(year, 2, day(year, 7), alpha, gamma, 3, 0),
			finished(year, 3, day(year, 14), beta, gamma, 2, 2),
		},
	}
}
