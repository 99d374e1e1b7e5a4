package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/models"
	"github.com/Tom-Draper/Premier-League/teams"
)

const defaultBaseURL = "https://api.football-data.org/v2"

// Client fetches Premier League fixtures and standings from the
// football-data.org feed and normalises them into the cache types.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

// NewClient builds a feed client authorised with the given API key.
func NewClient(apiKey string, log *zap.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// feed payload shapes, trimmed to the fields used.

type feedTeam struct {
	Name string `json:"name"`
}

type feedScorePair struct {
	HomeTeam *int `json:"homeTeam"`
	AwayTeam *int `json:"awayTeam"`
}

type feedMatch struct {
	Matchday int      `json:"matchday"`
	UTCDate  string   `json:"utcDate"`
	Status   string   `json:"status"`
	HomeTeam feedTeam `json:"homeTeam"`
	AwayTeam feedTeam `json:"awayTeam"`
	Score    struct {
		FullTime feedScorePair `json:"fullTime"`
	} `json:"score"`
}

type feedMatchesResponse struct {
	Matches []feedMatch `json:"matches"`
}

type feedTableRow struct {
	Position       int      `json:"position"`
	Team           feedTeam `json:"team"`
	PlayedGames    int      `json:"playedGames"`
	Won            int      `json:"won"`
	Draw           int      `json:"draw"`
	Lost           int      `json:"lost"`
	Points         int      `json:"points"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
}

type feedStandingsResponse struct {
	Standings []struct {
		Type  string         `json:"type"`
		Table []feedTableRow `json:"table"`
	} `json:"standings"`
}

// FetchSeason pulls one season's fixtures and standings snapshot.
func (c *Client) FetchSeason(ctx context.Context, year int) (*Season, error) {
	matches, err := c.fetchMatches(ctx, year)
	if err != nil {
		return nil, err
	}
	standings, err := c.fetchStandings(ctx, year)
	if err != nil {
		return nil, err
	}
	c.log.Info("fetched season dataset",
		zap.Int("season", year),
		zap.Int("matches", len(matches)),
		zap.Int("standings_rows", len(standings)))
	return &Season{Year: year, Matches: matches, Standings: standings}, nil
}

// Refresh fetches each season and rewrites its cache file. Failures on
// prior seasons fall back to the existing cache, which rarely changes.
func (c *Client) Refresh(ctx context.Context, store *Store, years []int) error {
	for i, year := range years {
		season, err := c.FetchSeason(ctx, year)
		if err != nil {
			if i == 0 {
				return err
			}
			c.log.Warn("feed fetch failed, keeping cached season",
				zap.Int("season", year), zap.Error(err))
			continue
		}
		if err := store.Save(season); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) fetchMatches(ctx context.Context, year int) ([]models.Match, error) {
	url := fmt.Sprintf("%s/competitions/PL/matches?season=%d", c.baseURL, year)
	var payload feedMatchesResponse
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	matches := make([]models.Match, 0, len(payload.Matches))
	for _, fm := range payload.Matches {
		date, err := time.Parse(time.RFC3339, fm.UTCDate)
		if err != nil {
			return nil, fmt.Errorf("dataset: bad match date %q: %w", fm.UTCDate, err)
		}
		m := models.Match{
			Season:   year,
			Matchday: fm.Matchday,
			Date:     date,
			HomeTeam: teams.CleanName(fm.HomeTeam.Name),
			AwayTeam: teams.CleanName(fm.AwayTeam.Name),
			Status:   normaliseStatus(fm.Status),
		}
		if m.Status == models.StatusFinished && fm.Score.FullTime.HomeTeam != nil && fm.Score.FullTime.AwayTeam != nil {
			m.HomeGoals = *fm.Score.FullTime.HomeTeam
			m.AwayGoals = *fm.Score.FullTime.AwayTeam
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (c *Client) fetchStandings(ctx context.Context, year int) ([]models.StandingsRow, error) {
	url := fmt.Sprintf("%s/competitions/PL/standings?season=%d", c.baseURL, year)
	var payload feedStandingsResponse
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	for _, block := range payload.Standings {
		if block.Type != "TOTAL" {
			continue
		}
		rows := make([]models.StandingsRow, 0, len(block.Table))
		for _, tr := range block.Table {
			rows = append(rows, models.StandingsRow{
				Team:     teams.CleanName(tr.Team.Name),
				Season:   year,
				Position: tr.Position,
				Played:   tr.PlayedGames,
				Won:      tr.Won,
				Drawn:    tr.Draw,
				Lost:     tr.Lost,
				GF:       tr.GoalsFor,
				GA:       tr.GoalsAgainst,
				GD:       tr.GoalDifference,
				Points:   tr.Points,
			})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("dataset: no TOTAL standings table for season %d", year)
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("dataset: build request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dataset: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("dataset: fetch %s: status %d: %s", url, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("dataset: decode %s: %w", url, err)
	}
	return nil
}

// The feed has used both "IN PLAY" and "IN_PLAY" across API versions.
func normaliseStatus(status string) string {
	if status == "IN PLAY" || status == "LIVE" || status == "PAUSED" {
		return models.StatusInPlay
	}
	return status
}
