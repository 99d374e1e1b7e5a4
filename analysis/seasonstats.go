package analysis

import (
	"fmt"
	"sort"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
)

// BuildSeasonStats derives per-team attack and defence ratios from the
// current season's finished matches: goals scored and conceded per game,
// clean sheet ratio and failed-to-score ratio, each with a league rank.
// A team yet to play reports zero for every ratio.
func BuildSeasonStats(current *dataset.Season, currentTeams []string) (map[string]models.SeasonStats, error) {
	if current == nil {
		return nil, fmt.Errorf("season stats: current season dataset: %w", ErrEmptyInput)
	}
	if len(currentTeams) == 0 {
		return nil, fmt.Errorf("season stats: current season team list: %w", ErrEmptyInput)
	}

	type tally struct {
		played      int
		scored      int
		conceded    int
		cleanSheets int
		noGoal      int
	}
	tallies := make(map[string]*tally, len(currentTeams))
	for _, team := range currentTeams {
		tallies[team] = &tally{}
	}

	for _, m := range current.Matches {
		if !m.Finished() {
			continue
		}
		for _, side := range []struct {
			team     string
			scored   int
			conceded int
		}{
			{m.HomeTeam, m.HomeGoals, m.AwayGoals},
			{m.AwayTeam, m.AwayGoals, m.HomeGoals},
		} {
			t, ok := tallies[side.team]
			if !ok {
				continue
			}
			t.played++
			t.scored += side.scored
			t.conceded += side.conceded
			if side.conceded == 0 {
				t.cleanSheets++
			}
			if side.scored == 0 {
				t.noGoal++
			}
		}
	}

	stats := make(map[string]models.SeasonStats, len(tallies))
	for team, t := range tallies {
		s := models.SeasonStats{Team: team, Played: t.played}
		if t.played > 0 {
			n := float64(t.played)
			s.GoalsPerGame = roundTo(float64(t.scored)/n, 2)
			s.ConcededPerGame = roundTo(float64(t.conceded)/n, 2)
			s.CleanSheetRatio = roundTo(float64(t.cleanSheets)/n, 2)
			s.NoGoalRatio = roundTo(float64(t.noGoal)/n, 2)
		}
		stats[team] = s
	}

	rank(stats, func(s models.SeasonStats) float64 { return s.GoalsPerGame }, true,
		func(s *models.SeasonStats, r string) { s.GoalsPerGameRank = r })
	rank(stats, func(s models.SeasonStats) float64 { return s.ConcededPerGame }, false,
		func(s *models.SeasonStats, r string) { s.ConcededPerGameRank = r })
	rank(stats, func(s models.SeasonStats) float64 { return s.CleanSheetRatio }, true,
		func(s *models.SeasonStats, r string) { s.CleanSheetRank = r })
	rank(stats, func(s models.SeasonStats) float64 { return s.NoGoalRatio }, false,
		func(s *models.SeasonStats, r string) { s.NoGoalRank = r })

	return stats, nil
}

// rank orders all teams by the chosen metric (descending when higher is
// better) and writes each team's ordinal position back into its stats.
func rank(stats map[string]models.SeasonStats, metric func(models.SeasonStats) float64, higherBetter bool, set func(*models.SeasonStats, string)) {
	teams := make([]string, 0, len(stats))
	for team := range stats {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		a, b := metric(stats[teams[i]]), metric(stats[teams[j]])
		if a != b {
			if higherBetter {
				return a > b
			}
			return a < b
		}
		return teams[i] < teams[j]
	})

	for i, team := range teams {
		s := stats[team]
		set(&s, ordinal(i+1))
		stats[team] = s
	}
}

// ordinal renders 1 as "1st", 2 as "2nd" and so on, with the usual
// exception for 11th, 12th and 13th.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
