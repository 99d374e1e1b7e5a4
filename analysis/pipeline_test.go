package analysis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/config"
	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/ledger"
)

func TestPipelineRefreshPublishesSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := dataset.NewStore(dir)
	require.NoError(t, err)

	season := threeTeamSeason(2023)
	season.Matches = append(season.Matches, scheduled(2023, 4, day(2023, 21), alpha, beta))
	require.NoError(t, store.Save(season))

	cfg := &config.Config{
		Season:               2023,
		SeasonsRetained:      1,
		DataDir:              dir,
		RatingGamesThreshold: 1,
		HomeGamesThreshold:   0,
		StarTeamThreshold:    0.75,
	}
	led := ledger.NewStore(filepath.Join(dir, "predictions.json"), zap.NewNop())

	pipe := New(cfg, testRegistry(t), store, led, nil, zap.NewNop())
	assert.Nil(t, pipe.Current())

	require.NoError(t, pipe.Refresh(context.Background()))

	snap := pipe.Current()
	require.NotNil(t, snap)
	assert.Equal(t, 2023, snap.Season)
	assert.Len(t, snap.TeamNames, 3)
	assert.Len(t, snap.CurrentTable(), 3)
	assert.Len(t, snap.Ratings, 3)
	assert.NotEmpty(t, snap.Form)
	assert.Contains(t, snap.Upcoming, alpha)
	assert.Contains(t, snap.Predictions, alpha)

	// The ledger picked up the forecast for the scheduled fixture.
	book, err := led.Load()
	require.NoError(t, err)
	require.Len(t, book.Predictions, 1)

	// Rating lookup falls back to zero for unknown teams.
	assert.Zero(t, snap.Rating("nobody"))
}

func TestPipelineRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := dataset.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(threeTeamSeason(2023)))

	cfg := &config.Config{
		Season:               2023,
		SeasonsRetained:      1,
		DataDir:              dir,
		RatingGamesThreshold: 1,
		HomeGamesThreshold:   0,
		StarTeamThreshold:    0.75,
	}
	led := ledger.NewStore(filepath.Join(dir, "predictions.json"), zap.NewNop())
	pipe := New(cfg, testRegistry(t), store, led, nil, zap.NewNop())

	require.NoError(t, pipe.Refresh(context.Background()))
	snap := pipe.Current()
	require.NotNil(t, snap)

	// Point the pipeline at a season with no cached data: the run fails
	// and the published snapshot stays.
	cfg.Season = 2024
	err = pipe.Refresh(context.Background())
	require.Error(t, err)
	assert.Same(t, snap, pipe.Current())
}
