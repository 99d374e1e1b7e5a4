package dataset

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tom-Draper/Premier-League/models"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	season := &Season{
		Year: 2023,
		Matches: []models.Match{
			{
				Season:    2023,
				Matchday:  1,
				Date:      time.Date(2023, 8, 12, 15, 0, 0, 0, time.UTC),
				HomeTeam:  "Arsenal",
				AwayTeam:  "Chelsea",
				Status:    models.StatusFinished,
				HomeGoals: 2,
				AwayGoals: 1,
			},
		},
	}
	require.NoError(t, store.Save(season))

	loaded, err := store.Load(2023)
	require.NoError(t, err)
	assert.Equal(t, season, loaded)
}

func TestStoreLoadMissingSeason(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(1999)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTeamNamesFirstAppearanceOrder(t *testing.T) {
	season := &Season{Year: 2023, Matches: []models.Match{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{HomeTeam: "Liverpool", AwayTeam: "Arsenal"},
	}}

	assert.Equal(t, []string{"Arsenal", "Chelsea", "Liverpool"}, season.TeamNames())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(&Season{Year: 2023}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "season_2023.json", entries[0].Name())
}
