package analysis

import (
	"fmt"
	"sort"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
)

// BuildHomeAdvantages measures, per team, how much better it does at home
// than overall: the home win ratio minus the overall win ratio, per season,
// averaged across included seasons. The current season is excluded while no
// team has played more than homeGamesThreshold home games, and configured
// anomaly seasons (played without spectators) are always excluded.
func BuildHomeAdvantages(data map[int]*dataset.Season, currentTeams []string, seasons []int, homeGamesThreshold int, excludedSeasons []int) ([]models.HomeAdvantage, error) {
	if len(currentTeams) == 0 {
		return nil, fmt.Errorf("home advantages: current season team list: %w", ErrEmptyInput)
	}

	advantages := make(map[string]*models.HomeAdvantage, len(currentTeams))
	for _, team := range currentTeams {
		advantages[team] = &models.HomeAdvantage{
			Team:    team,
			Seasons: make(map[int]models.SeasonHomeRecord, len(seasons)),
		}
	}

	for _, season := range seasons {
		raw, ok := data[season]
		if !ok || raw == nil {
			return nil, fmt.Errorf("home advantages: season %d dataset: %w", season, ErrEmptyInput)
		}
		records := tallySeason(raw.Matches, advantages)
		for team, rec := range records {
			advantages[team].Seasons[season] = rec
		}
	}

	included := includedSeasons(advantages, seasons, homeGamesThreshold, excludedSeasons)
	for _, ha := range advantages {
		// Seasons a team did not play contribute 0 to the mean but stay
		// in the denominator.
		total := 0.0
		for _, season := range included {
			total += ha.Seasons[season].Advantage
		}
		if len(included) > 0 {
			ha.TotalHomeAdvantage = total / float64(len(included))
		}
	}

	out := make([]models.HomeAdvantage, 0, len(advantages))
	for _, ha := range advantages {
		out = append(out, *ha)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHomeAdvantage != out[j].TotalHomeAdvantage {
			return out[i].TotalHomeAdvantage > out[j].TotalHomeAdvantage
		}
		return out[i].Team < out[j].Team
	})
	return out, nil
}

// tallySeason counts decided matches per roster team split by venue and
// derives the season's win ratios.
func tallySeason(matches []models.Match, roster map[string]*models.HomeAdvantage) map[string]models.SeasonHomeRecord {
	records := make(map[string]models.SeasonHomeRecord)
	for _, m := range matches {
		if !m.Finished() {
			continue
		}
		home := records[m.HomeTeam]
		away := records[m.AwayTeam]
		switch {
		case m.HomeGoals > m.AwayGoals:
			home.HomeWins++
			away.AwayLosses++
		case m.HomeGoals < m.AwayGoals:
			home.HomeLosses++
			away.AwayWins++
		default:
			home.HomeDraws++
			away.AwayDraws++
		}
		records[m.HomeTeam] = home
		records[m.AwayTeam] = away
	}

	for team, rec := range records {
		if _, ok := roster[team]; !ok {
			delete(records, team)
			continue
		}
		rec.HomePlayed = rec.HomeWins + rec.HomeDraws + rec.HomeLosses
		rec.Played = rec.HomePlayed + rec.AwayWins + rec.AwayDraws + rec.AwayLosses
		if rec.HomePlayed > 0 {
			rec.WinRatioHome = float64(rec.HomeWins) / float64(rec.HomePlayed)
		}
		if rec.Played > 0 {
			rec.WinRatioOverall = float64(rec.HomeWins+rec.AwayWins) / float64(rec.Played)
		}
		rec.Advantage = rec.WinRatioHome - rec.WinRatioOverall
		records[team] = rec
	}
	return records
}

// includedSeasons applies the two exclusion rules: the current season drops
// out until some team clears the home-games threshold, and anomaly seasons
// drop out unconditionally.
func includedSeasons(advantages map[string]*models.HomeAdvantage, seasons []int, threshold int, excluded []int) []int {
	anomaly := make(map[int]bool, len(excluded))
	for _, season := range excluded {
		anomaly[season] = true
	}

	included := []int{}
	for i, season := range seasons {
		if anomaly[season] {
			continue
		}
		if i == 0 && !homeSeasonStarted(advantages, season, threshold) {
			continue
		}
		included = append(included, season)
	}
	return included
}

func homeSeasonStarted(advantages map[string]*models.HomeAdvantage, season, threshold int) bool {
	for _, ha := range advantages {
		if ha.Seasons[season].HomePlayed > threshold {
			return true
		}
	}
	return false
}
