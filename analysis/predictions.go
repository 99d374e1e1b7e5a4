package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/ledger"
	"github.com/Tom-Draper/Premier-League/models"
	"github.com/Tom-Draper/Premier-League/teams"
)

// League-wide average goals per game, used as the base when a team has no
// head-to-head history and no played games this season.
const (
	defaultHomeGoals = 1.5
	defaultAwayGoals = 1.2
)

// BuildPredictions forecasts a scoreline for every upcoming fixture. Each
// fixture is forecast once, from the home side's perspective; both teams'
// entries share the same forecast, and the deduplicated list comes back as
// ledger candidates.
//
// The base expectation is the mean goals each side scored in past meetings
// of the pair, falling back to the team's goals per game this season, then
// to league averages. The base is then adjusted for the form gap, the
// opponent's long-term rating and the home side's home advantage.
func BuildPredictions(
	upcoming map[string]*models.UpcomingFixture,
	form map[string]*models.TeamForm,
	ratings []models.TeamRating,
	homeAdvantages []models.HomeAdvantage,
	stats map[string]models.SeasonStats,
	reg *teams.Registry,
) (map[string]models.Prediction, []ledger.Candidate, error) {
	if len(upcoming) == 0 {
		return map[string]models.Prediction{}, nil, nil
	}
	if len(ratings) == 0 {
		return nil, nil, fmt.Errorf("predictions: team ratings: %w", ErrMissingDependency)
	}
	if form == nil {
		return nil, nil, fmt.Errorf("predictions: form: %w", ErrMissingDependency)
	}

	ratingByTeam := make(map[string]float64, len(ratings))
	for _, tr := range ratings {
		ratingByTeam[tr.Team] = tr.TotalRating
	}
	advantageByTeam := make(map[string]float64, len(homeAdvantages))
	for _, ha := range homeAdvantages {
		advantageByTeam[ha.Team] = ha.TotalHomeAdvantage
	}

	// Deterministic candidate order regardless of map iteration.
	names := make([]string, 0, len(upcoming))
	for team := range upcoming {
		names = append(names, team)
	}
	sort.Strings(names)

	predictions := make(map[string]models.Prediction, len(upcoming))
	candidates := []ledger.Candidate{}
	seen := map[string]bool{}
	for _, team := range names {
		fixture := upcoming[team]
		home, away := fixture.Team, fixture.Opponent
		if !fixture.AtHome {
			home, away = away, home
		}

		key := fixture.Date.Format("2006-01-02") + "|" + home + "|" + away
		if seen[key] {
			predictions[team] = predictions[fixture.Opponent]
			continue
		}
		seen[key] = true

		p := forecast(fixture, home, away, form, ratingByTeam, advantageByTeam, stats, reg)
		predictions[team] = p
		candidates = append(candidates, ledger.Candidate{
			Date:         fixture.Date,
			HomeInitials: p.HomeInitials,
			AwayInitials: p.AwayInitials,
			Score:        p.Prediction,
			Details:      p.Details,
		})
	}

	return predictions, candidates, nil
}

func forecast(
	fixture *models.UpcomingFixture,
	home, away string,
	form map[string]*models.TeamForm,
	ratingByTeam, advantageByTeam map[string]float64,
	stats map[string]models.SeasonStats,
	reg *teams.Registry,
) models.Prediction {
	baseHome, baseAway, source := baseGoals(fixture, home, away, stats)

	formHome := latestFormRating(form, home)
	formAway := latestFormRating(form, away)

	homeXG := baseHome *
		(1 + (formHome-formAway)/2) *
		(1.2 - 0.4*ratingByTeam[away]) *
		(1 + advantageByTeam[home])
	awayXG := baseAway *
		(1 + (formAway-formHome)/2) *
		(1.2 - 0.4*ratingByTeam[home])

	score := models.Score{
		HomeGoals: int(math.Round(math.Max(0, homeXG))),
		AwayGoals: int(math.Round(math.Max(0, awayXG))),
	}

	return models.Prediction{
		Time:         fixture.Date.Format("15:04"),
		HomeInitials: reg.Initials(home),
		AwayInitials: reg.Initials(away),
		Prediction:   score,
		Details: &models.PredictionDetail{
			Source:         source,
			BaseHomeGoals:  roundTo(baseHome, 2),
			BaseAwayGoals:  roundTo(baseAway, 2),
			HomeFormRating: roundTo(formHome, 3),
			AwayFormRating: roundTo(formAway, 3),
			HomeTeamRating: roundTo(ratingByTeam[home], 3),
			AwayTeamRating: roundTo(ratingByTeam[away], 3),
			HomeAdvantage:  roundTo(advantageByTeam[home], 3),
		},
	}
}

// baseGoals settles the starting expectation for each side. Head-to-head
// history wins when any exists; otherwise each side falls back to its own
// scoring rate this season, then to the league average.
func baseGoals(fixture *models.UpcomingFixture, home, away string, stats map[string]models.SeasonStats) (float64, float64, string) {
	if len(fixture.PreviousMeetings) > 0 {
		homeTotal, awayTotal := 0, 0
		for _, meeting := range fixture.PreviousMeetings {
			if meeting.HomeTeam == home {
				homeTotal += meeting.HomeGoals
				awayTotal += meeting.AwayGoals
			} else {
				homeTotal += meeting.AwayGoals
				awayTotal += meeting.HomeGoals
			}
		}
		n := float64(len(fixture.PreviousMeetings))
		return float64(homeTotal) / n, float64(awayTotal) / n, "head-to-head"
	}

	homeStats, homeOK := stats[home]
	awayStats, awayOK := stats[away]
	if homeOK && awayOK && homeStats.Played > 0 && awayStats.Played > 0 {
		return homeStats.GoalsPerGame, awayStats.GoalsPerGame, "season-average"
	}
	return defaultHomeGoals, defaultAwayGoals, "league-average"
}

// latestFormRating reads the team's most recent five-game form rating,
// defaulting to the neutral 0.5 before any games are played.
func latestFormRating(form map[string]*models.TeamForm, team string) float64 {
	tf, ok := form[team]
	if !ok {
		return 0.5
	}
	latest := tf.Latest()
	if latest == nil {
		return 0.5
	}
	return latest.FormRating5
}

// CollectResults extracts every finished fixture of the current season as a
// ledger result so pending predictions can be scored.
func CollectResults(current *dataset.Season, reg *teams.Registry) []ledger.Result {
	if current == nil {
		return nil
	}
	results := []ledger.Result{}
	for _, m := range current.Matches {
		if !m.Finished() {
			continue
		}
		results = append(results, ledger.Result{
			Date:         m.Date,
			HomeInitials: reg.Initials(m.HomeTeam),
			AwayInitials: reg.Initials(m.AwayTeam),
			Score:        models.Score{HomeGoals: m.HomeGoals, AwayGoals: m.AwayGoals},
		})
	}
	return results
}
