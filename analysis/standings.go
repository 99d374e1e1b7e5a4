package analysis

import (
	"fmt"
	"sort"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
)

// BuildStandings produces one league table per retained season, restricted
// to the teams in the current season's roster. Prior seasons prefer the
// feed's standings snapshot when the cache carries one; the current season
// is always rebuilt from match results so positions track play since the
// snapshot was taken.
func BuildStandings(data map[int]*dataset.Season, currentTeams []string, seasons []int) (map[int][]models.StandingsRow, error) {
	if len(currentTeams) == 0 {
		return nil, fmt.Errorf("standings: current season team list: %w", ErrEmptyInput)
	}

	roster := make(map[string]bool, len(currentTeams))
	for _, name := range currentTeams {
		roster[name] = true
	}
	current := seasons[0]

	out := make(map[int][]models.StandingsRow, len(seasons))
	for _, season := range seasons {
		raw, ok := data[season]
		if !ok || raw == nil {
			return nil, fmt.Errorf("standings: season %d dataset: %w", season, ErrEmptyInput)
		}

		var table []models.StandingsRow
		if season != current && len(raw.Standings) > 0 {
			table = append(table, raw.Standings...)
		} else {
			table = foldSeasonTable(raw.Matches, season)
		}

		// Teams relegated out of the current roster drop from prior
		// tables; their positions stay as earned that season.
		rows := table[:0:0]
		for _, row := range table {
			if roster[row.Team] {
				rows = append(rows, row)
			}
		}
		out[season] = rows
	}
	return out, nil
}

// foldSeasonTable accumulates all FINISHED matches into table rows, then
// ranks them by points, goal difference and goals for.
func foldSeasonTable(matches []models.Match, season int) []models.StandingsRow {
	byTeam := make(map[string]*models.StandingsRow)
	row := func(team string) *models.StandingsRow {
		r, ok := byTeam[team]
		if !ok {
			r = &models.StandingsRow{Team: team, Season: season}
			byTeam[team] = r
		}
		return r
	}

	for _, m := range matches {
		if !m.Finished() {
			// Teams still register so an all-scheduled season yields a
			// zeroed table rather than no table.
			row(m.HomeTeam)
			row(m.AwayTeam)
			continue
		}
		home, away := row(m.HomeTeam), row(m.AwayTeam)

		home.Played++
		away.Played++
		home.GF += m.HomeGoals
		home.GA += m.AwayGoals
		away.GF += m.AwayGoals
		away.GA += m.HomeGoals

		switch {
		case m.HomeGoals > m.AwayGoals:
			home.Won++
			away.Lost++
			home.Points += 3
		case m.HomeGoals < m.AwayGoals:
			away.Won++
			home.Lost++
			away.Points += 3
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	rows := make([]models.StandingsRow, 0, len(byTeam))
	for _, r := range byTeam {
		r.GD = r.GF - r.GA
		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GD != b.GD {
			return a.GD > b.GD
		}
		if a.GF != b.GF {
			return a.GF > b.GF
		}
		return a.Team < b.Team
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// TableSnippet returns the slice of the table around a team: up to three
// rows each side, shifted at the table edges so seven rows come back
// whenever the table has at least seven. The second return is the team's
// index within the snippet.
func TableSnippet(table []models.StandingsRow, team string) ([]models.StandingsRow, int, error) {
	idx := -1
	for i, row := range table {
		if row.Team == team {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, 0, fmt.Errorf("standings: team %q not in table: %w", team, ErrEmptyInput)
	}

	low := idx - 3
	high := idx + 4
	if low < 0 {
		high -= low
		low = 0
	}
	if high > len(table) {
		low -= high - len(table)
		high = len(table)
	}
	if low < 0 {
		low = 0
	}
	return table[low:high], idx - low, nil
}
