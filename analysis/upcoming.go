package analysis

import (
	"fmt"
	"sort"

	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/models"
)

// BuildUpcoming resolves each current team's next scheduled fixture and
// attaches the head-to-head history against that opponent across all
// retained seasons, most recent meeting first. A team with no scheduled
// fixture left has finished its season and gets no entry.
func BuildUpcoming(data map[int]*dataset.Season, currentTeams []string, seasons []int) (map[string]*models.UpcomingFixture, error) {
	if len(currentTeams) == 0 {
		return nil, fmt.Errorf("upcoming: current season team list: %w", ErrEmptyInput)
	}
	current, ok := data[seasons[0]]
	if !ok || current == nil {
		return nil, fmt.Errorf("upcoming: current season dataset: %w", ErrEmptyInput)
	}

	scheduled := append([]models.Match(nil), current.Matches...)
	sort.Slice(scheduled, func(i, j int) bool {
		if scheduled[i].Matchday != scheduled[j].Matchday {
			return scheduled[i].Matchday < scheduled[j].Matchday
		}
		return scheduled[i].Date.Before(scheduled[j].Date)
	})

	out := make(map[string]*models.UpcomingFixture, len(currentTeams))
	for _, team := range currentTeams {
		next := nextFixture(scheduled, team)
		if next == nil {
			continue
		}
		fixture := &models.UpcomingFixture{
			Team:     team,
			Opponent: next.Opponent(team),
			AtHome:   next.HomeTeam == team,
			Date:     next.Date,
			Matchday: next.Matchday,
		}
		fixture.PreviousMeetings = previousMeetings(data, seasons, team, fixture.Opponent)
		out[team] = fixture
	}
	return out, nil
}

func nextFixture(ordered []models.Match, team string) *models.Match {
	for i := range ordered {
		m := &ordered[i]
		if m.Status == models.StatusScheduled && m.Involves(team) {
			return m
		}
	}
	return nil
}

// previousMeetings gathers every finished match between the two teams in
// the retained seasons, newest first, with the outcome phrased from the
// team's perspective.
func previousMeetings(data map[int]*dataset.Season, seasons []int, team, opponent string) []models.Meeting {
	meetings := []models.Meeting{}
	for _, season := range seasons {
		raw := data[season]
		if raw == nil {
			continue
		}
		for _, m := range raw.Matches {
			if !m.Finished() || !m.Involves(team) || !m.Involves(opponent) {
				continue
			}
			meetings = append(meetings, models.Meeting{
				Date:      m.Date,
				HomeTeam:  m.HomeTeam,
				AwayTeam:  m.AwayTeam,
				HomeGoals: m.HomeGoals,
				AwayGoals: m.AwayGoals,
				Result:    meetingResult(m, team),
			})
		}
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].Date.After(meetings[j].Date) })
	return meetings
}

func meetingResult(m models.Match, team string) string {
	switch m.Result(team) {
	case "W":
		return "Won"
	case "L":
		return "Lost"
	default:
		return "Drew"
	}
}
