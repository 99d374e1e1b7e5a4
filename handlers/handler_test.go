package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/config"
	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/ledger"
	"github.com/Tom-Draper/Premier-League/models"
	"github.com/Tom-Draper/Premier-League/teams"
)

const (
	alpha = "Alpha Town"
	beta  = "Beta City"
	gamma = "Gamma Rovers"
)

func testRegistry(t *testing.T) *teams.Registry {
	t.Helper()
	reg, err := teams.NewRegistry(map[string]string{
		"ALP": alpha,
		"BET": beta,
		"GAM": gamma,
	})
	require.NoError(t, err)
	return reg
}

func testSeason(year int) *dataset.Season {
	kickoff := func(offset int) time.Time {
		return time.Date(year, 9, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	match := func(md, offset int, home, away string, hg, ag int, status string) models.Match {
		m := models.Match{
			Season: year, Matchday: md, Date: kickoff(offset),
			HomeTeam: home, AwayTeam: away, Status: status,
		}
		if status == models.StatusFinished {
			m.HomeGoals, m.AwayGoals = hg, ag
		}
		return m
	}
	return &dataset.Season{Year: year, Matches: []models.Match{
		match(1, 0, beta, alpha, 1, 0, models.StatusFinished),
		match(2, 7, alpha, gamma, 3, 0, models.StatusFinished),
		match(3, 14, beta, gamma, 2, 2, models.StatusFinished),
		match(4, 21, alpha, beta, 0, 0, models.StatusScheduled),
	}}
}

// newTestHandler builds a handler backed by a real refreshed pipeline.
func newTestHandler(t *testing.T, refresh bool) *Handler {
	t.Helper()
	dir := t.TempDir()
	store, err := dataset.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(testSeason(2023)))

	cfg := &config.Config{
		Season:               2023,
		SeasonsRetained:      1,
		DataDir:              dir,
		RatingGamesThreshold: 1,
		HomeGamesThreshold:   0,
		StarTeamThreshold:    0.75,
	}
	reg := testRegistry(t)
	led := ledger.NewStore(filepath.Join(dir, "predictions.json"), zap.NewNop())
	pipe := analysis.New(cfg, reg, store, led, nil, zap.NewNop())
	if refresh {
		require.NoError(t, pipe.Refresh(context.Background()))
	}
	return New(pipe, led, reg, zap.NewNop())
}

func get(h echo.HandlerFunc, target string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	err := h(e.NewContext(req, rec))
	return rec, err
}

func TestHandlersUnavailableBeforeFirstBuild(t *testing.T) {
	h := newTestHandler(t, false)

	_, err := get(h.Teams, "/api/teams")
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
}

func TestTeams(t *testing.T) {
	h := newTestHandler(t, true)

	rec, err := get(h.Teams, "/api/teams")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []teamEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "BET", out[0].Initials)
}

func TestStandings(t *testing.T) {
	h := newTestHandler(t, true)

	rec, err := get(h.Standings, "/api/standings")
	require.NoError(t, err)

	var table []models.StandingsRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	require.Len(t, table, 3)
	assert.Equal(t, beta, table[0].Team)

	_, err = get(h.Standings, "/api/standings?season=1999")
	require.Error(t, err)
	httpErr := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestTeamQueryAcceptsInitials(t *testing.T) {
	h := newTestHandler(t, true)

	rec, err := get(h.SeasonStats, "/api/season-stats?team=ALP")
	require.NoError(t, err)

	var stats models.SeasonStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, alpha, stats.Team)
	assert.Equal(t, 2, stats.Played)
}

func TestTeamQueryRejectsUnknown(t *testing.T) {
	h := newTestHandler(t, true)

	_, err := get(h.Form, "/api/form?team=Nowhere")
	require.Error(t, err)
	httpErr := err.(*echo.HTTPError)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	_, err = get(h.TableSnippet, "/api/table-snippet")
	require.Error(t, err)
	httpErr = err.(*echo.HTTPError)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestPredictionAndLedger(t *testing.T) {
	h := newTestHandler(t, true)

	rec, err := get(h.Prediction, "/api/prediction?team="+url.QueryEscape(alpha))
	require.NoError(t, err)

	var p models.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "ALP", p.HomeInitials)
	assert.Equal(t, "BET", p.AwayInitials)

	rec, err = get(h.Predictions, "/api/predictions")
	require.NoError(t, err)

	var entries []ledgerEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "pending", entries[0].Classification)
	assert.Equal(t, "2023-09-22", entries[0].Date)
}

func TestAccuracyNullBeforeResolution(t *testing.T) {
	h := newTestHandler(t, true)

	rec, err := get(h.Accuracy, "/api/accuracy")
	require.NoError(t, err)

	var summary models.AccuracySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Nil(t, summary.Accuracy)
	assert.Nil(t, summary.ResultAccuracy)
}

func TestRefreshEndpoint(t *testing.T) {
	h := newTestHandler(t, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The build is now live.
	_, err := get(h.Teams, "/api/teams")
	assert.NoError(t, err)
}
