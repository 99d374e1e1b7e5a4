package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	assert.Equal(t, 3, cfg.SeasonsRetained)
	assert.Equal(t, 4, cfg.RatingGamesThreshold)
	assert.Equal(t, 0.75, cfg.StarTeamThreshold)
	assert.Equal(t, []int{2020}, cfg.HomeAdvExcludedSeasons)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, ":9000", cfg.Port)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SEASON", "2021")
	t.Setenv("SEASONS_RETAINED", "2")
	t.Setenv("TLS_DOMAINS", "example.com, api.example.com")

	cfg := Load()
	assert.Equal(t, 2021, cfg.Season)
	assert.Equal(t, []int{2021, 2020}, cfg.Seasons())
	assert.Equal(t, []string{"example.com", "api.example.com"}, cfg.TLSDomains)
}

func TestLedgerPath(t *testing.T) {
	cfg := &Config{Season: 2023, DataDir: "data"}
	assert.Equal(t, "data/predictions_2023.json", cfg.LedgerPath())

	cfg.LedgerFile = "/var/lib/predictions.json"
	assert.Equal(t, "/var/lib/predictions.json", cfg.LedgerPath())
}

func TestSeasonsCurrentFirst(t *testing.T) {
	cfg := &Config{Season: 2023, SeasonsRetained: 3}
	require.Equal(t, []int{2023, 2022, 2021}, cfg.Seasons())
}
