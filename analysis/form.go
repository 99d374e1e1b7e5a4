package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
	"github.com/Tom-Draper/Premier-League/teams"
)

// BuildForm derives each team's rolling form history for the current
// season: one record per game actually played, in the order the games were
// played (date order, since rescheduling moves matchdays out of numeric
// sequence). Each record carries the last-5/last-10 result strings, a form
// rating weighted by opponent strength, cumulative goal difference and
// points, the league position at that checkpoint and a flag for beating a
// star team.
func BuildForm(current *dataset.Season, ratings []models.TeamRating, reg *teams.Registry, starThreshold float64) (map[string]*models.TeamForm, error) {
	if current == nil || len(current.Matches) == 0 {
		return nil, fmt.Errorf("form: current season fixtures: %w", ErrEmptyInput)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("form: team ratings: %w", ErrMissingDependency)
	}

	ratingByTeam := make(map[string]float64, len(ratings))
	for _, tr := range ratings {
		ratingByTeam[tr.Team] = tr.TotalRating
	}

	played := make(map[string][]models.Match)
	for _, m := range current.Matches {
		if !m.Finished() {
			continue
		}
		played[m.HomeTeam] = append(played[m.HomeTeam], m)
		played[m.AwayTeam] = append(played[m.AwayTeam], m)
	}

	form := make(map[string]*models.TeamForm, len(played))
	for team, games := range played {
		sort.Slice(games, func(i, j int) bool { return games[i].Date.Before(games[j].Date) })

		tf := &models.TeamForm{Team: team, Records: make([]models.FormRecord, 0, len(games))}
		cumGD, cumPoints := 0, 0
		for i, m := range games {
			gd := m.GoalDifference(team)
			result := m.Result(team)
			points := resultPoints(gd)
			cumGD += gd
			cumPoints += points

			opponent := m.Opponent(team)
			rec := models.FormRecord{
				Matchday:     m.Matchday,
				Date:         m.Date,
				Opponent:     reg.Initials(opponent),
				AtHome:       m.HomeTeam == team,
				Result:       result,
				GD:           gd,
				Points:       points,
				CumGD:        cumGD,
				CumPoints:    cumPoints,
				BeatStarTeam: result == "W" && ratingByTeam[opponent] > starThreshold,
			}
			rec.Form5, rec.FormRating5 = windowForm(games, team, i, 5, ratingByTeam)
			rec.Form10, rec.FormRating10 = windowForm(games, team, i, 10, ratingByTeam)
			tf.Records = append(tf.Records, rec)
		}
		form[team] = tf
	}

	assignPositions(form)
	return form, nil
}

func resultPoints(gd int) int {
	switch {
	case gd > 0:
		return 3
	case gd == 0:
		return 1
	default:
		return 0
	}
}

// windowForm builds the result string over the trailing window ending at
// game index idx (most recent character first, padded with 'N') and the
// form rating over that window. The rating seeds at 0.5 and moves by
// (opponent rating / games in window) x |goal difference| for each win or
// loss; draws leave it untouched; the result clamps to [0,1].
func windowForm(games []models.Match, team string, idx, window int, ratingByTeam map[string]float64) (string, float64) {
	low := idx - window + 1
	if low < 0 {
		low = 0
	}
	n := idx - low + 1

	var sb strings.Builder
	rating := 0.5
	for i := idx; i >= low; i-- {
		m := games[i]
		result := m.Result(team)
		sb.WriteByte(result[0])

		swing := (ratingByTeam[m.Opponent(team)] / float64(n)) * math.Abs(float64(m.GoalDifference(team)))
		switch result {
		case "W":
			rating += swing
		case "L":
			rating -= swing
		}
	}
	for i := n; i < window; i++ {
		sb.WriteByte('N')
	}

	return sb.String(), clamp01(rating)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// assignPositions fills in each record's league position: at every
// matchday checkpoint all teams are re-ranked on the cumulative points and
// goal difference they held at that point, counting each team's latest
// record at or before the checkpoint.
func assignPositions(form map[string]*models.TeamForm) {
	matchdays := map[int]bool{}
	for _, tf := range form {
		for _, rec := range tf.Records {
			matchdays[rec.Matchday] = true
		}
	}

	type standing struct {
		team   string
		points int
		gd     int
	}

	for matchday := range matchdays {
		table := make([]standing, 0, len(form))
		for team, tf := range form {
			points, gd := 0, 0
			for _, rec := range tf.Records {
				if rec.Matchday <= matchday {
					points, gd = rec.CumPoints, rec.CumGD
				}
			}
			table = append(table, standing{team: team, points: points, gd: gd})
		}
		sort.Slice(table, func(i, j int) bool {
			if table[i].points != table[j].points {
				return table[i].points > table[j].points
			}
			if table[i].gd != table[j].gd {
				return table[i].gd > table[j].gd
			}
			return table[i].team < table[j].team
		})

		rank := make(map[string]int, len(table))
		for i, s := range table {
			rank[s.team] = i + 1
		}
		for team, tf := range form {
			for i := range tf.Records {
				if tf.Records[i].Matchday == matchday {
					tf.Records[i].Position = rank[team]
				}
			}
		}
	}
}

// Summarise produces the presentation view of a team's current form. A
// team that has not played at the season's latest matchday reports its own
// last played state rather than empty form.
func Summarise(tf *models.TeamForm) models.FormSummary {
	summary := models.FormSummary{
		LastFive:  []string{},
		Opponents: []string{},
		StarWins:  []bool{},
	}
	latest := tf.Latest()
	if latest == nil {
		return summary
	}

	summary.Team = tf.Team
	for _, ch := range latest.Form5 {
		summary.LastFive = append(summary.LastFive, string(ch))
	}
	// Walk the played history backwards to line opponents up with the
	// form string, most recent first.
	for i := len(tf.Records) - 1; i >= 0 && len(summary.Opponents) < 5; i-- {
		summary.Opponents = append(summary.Opponents, tf.Records[i].Opponent)
		summary.StarWins = append(summary.StarWins, tf.Records[i].BeatStarTeam)
	}
	summary.Rating = roundTo(latest.FormRating5*100, 1)
	summary.LongTermRating = roundTo(latest.FormRating10*100, 1)
	return summary
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
