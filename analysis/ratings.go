package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/Tom-Draper/Premier-League/models"
)

// weightRatio controls how strongly recent seasons outweigh older ones in
// the combined rating: each season counts 2.5x the one before it.
const weightRatio = 2.5

// seasonWeights returns normalised recency weights for n seasons, most
// recent first. Weights sum to 1.
func seasonWeights(n int) []float64 {
	weights := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		weights[i] = math.Pow(weightRatio, float64(n-1-i))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// BuildRatings derives a cross-season strength rating per team from the
// standings tables. A season's raw rating is points + goal difference;
// each season's column is normalised to [0,1] before the recency-weighted
// combination. The current season only joins the combination once some
// team has played more than gamesThreshold games.
func BuildRatings(standings map[int][]models.StandingsRow, currentTeams []string, seasons []int, gamesThreshold int) ([]models.TeamRating, error) {
	if len(standings) == 0 {
		return nil, fmt.Errorf("ratings: standings: %w", ErrMissingDependency)
	}
	if len(currentTeams) == 0 {
		return nil, fmt.Errorf("ratings: current season team list: %w", ErrEmptyInput)
	}

	ratings := make(map[string]*models.TeamRating, len(currentTeams))
	for _, team := range currentTeams {
		ratings[team] = &models.TeamRating{
			Team:    team,
			Seasons: make(map[int]models.SeasonRating, len(seasons)),
		}
	}

	for _, season := range seasons {
		raw := make(map[string]float64, len(currentTeams))
		min := math.Inf(1)
		for _, row := range standings[season] {
			if _, ok := ratings[row.Team]; !ok {
				continue
			}
			r := float64(row.Points + row.GD)
			raw[row.Team] = r
			if r < min {
				min = r
			}
		}
		if len(raw) == 0 {
			min = 0
		}

		// Newly promoted teams have no row for this season; they take the
		// season's minimum rather than zero, so they are not punished
		// beyond the worst actual performer.
		for _, team := range currentTeams {
			if _, ok := raw[team]; !ok {
				raw[team] = min
			}
		}

		for team, norm := range normalise(raw) {
			ratings[team].Seasons[season] = models.SeasonRating{
				Raw:        raw[team],
				Normalised: norm,
			}
		}
	}

	included := seasons
	if !currentSeasonStarted(standings[seasons[0]], gamesThreshold) {
		included = seasons[1:]
	}
	weights := seasonWeights(len(included))
	for _, tr := range ratings {
		total := 0.0
		for i, season := range included {
			total += weights[i] * tr.Seasons[season].Normalised
		}
		tr.TotalRating = total
	}

	out := make([]models.TeamRating, 0, len(ratings))
	for _, tr := range ratings {
		out = append(out, *tr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRating != out[j].TotalRating {
			return out[i].TotalRating > out[j].TotalRating
		}
		return out[i].Team < out[j].Team
	})
	return out, nil
}

// normalise maps each value to (v-min)/(max-min). When every value is
// equal the column carries no signal, so everything maps to 0.5 instead of
// dividing by zero.
func normalise(values map[string]float64) map[string]float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	out := make(map[string]float64, len(values))
	if max == min {
		for team := range values {
			out[team] = 0.5
		}
		return out
	}
	for team, v := range values {
		out[team] = (v - min) / (max - min)
	}
	return out
}

// currentSeasonStarted reports whether any team has played more than
// threshold games; until then the current season's noise stays out of the
// combined rating and the weights renormalise over the prior seasons.
func currentSeasonStarted(rows []models.StandingsRow, threshold int) bool {
	for _, row := range rows {
		if row.Played > threshold {
			return true
		}
	}
	return false
}
