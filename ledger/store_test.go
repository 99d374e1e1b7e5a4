package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "predictions.json"), zap.NewNop())
}

func kickoff(day, hour int) time.Time {
	return time.Date(2023, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestLoadMissingFileIsEmptyLedger(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, f.Predictions)
	assert.Nil(t, f.Accuracy.Accuracy)
}

func TestUpdateInsertsWithIncrementingIDs(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Update([]Candidate{
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}},
		{Date: kickoff(2, 17), HomeInitials: "LIV", AwayInitials: "MCI", Score: models.Score{HomeGoals: 1, AwayGoals: 1}},
	}, nil)
	require.NoError(t, err)

	day := f.Predictions["2023-09-02"]
	require.Len(t, day, 2)
	assert.Equal(t, 1, day[0].ID)
	assert.Equal(t, 2, day[1].ID)
	assert.Equal(t, "15:00", day[0].Time)
}

func TestUpdateIsIdempotentForIdenticalCandidates(t *testing.T) {
	s := newTestStore(t)
	c := Candidate{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}}

	_, err := s.Update([]Candidate{c}, nil)
	require.NoError(t, err)
	f, err := s.Update([]Candidate{c}, nil)
	require.NoError(t, err)

	require.Len(t, f.Predictions["2023-09-02"], 1)
	assert.Equal(t, 1, f.Predictions["2023-09-02"][0].ID)
}

func TestUpdateRevisesPendingInPlace(t *testing.T) {
	s := newTestStore(t)
	c := Candidate{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}}

	_, err := s.Update([]Candidate{c}, nil)
	require.NoError(t, err)

	c.Score = models.Score{HomeGoals: 3, AwayGoals: 0}
	f, err := s.Update([]Candidate{c}, nil)
	require.NoError(t, err)

	day := f.Predictions["2023-09-02"]
	require.Len(t, day, 1)
	assert.Equal(t, 1, day[0].ID)
	assert.Equal(t, models.Score{HomeGoals: 3, AwayGoals: 0}, day[0].Prediction)
}

func TestResolvedPredictionIsNeverRevised(t *testing.T) {
	s := newTestStore(t)
	c := Candidate{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}}

	_, err := s.Update([]Candidate{c}, []Result{
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 0, AwayGoals: 0}},
	})
	require.NoError(t, err)

	c.Score = models.Score{HomeGoals: 5, AwayGoals: 5}
	f, err := s.Update([]Candidate{c}, nil)
	require.NoError(t, err)

	day := f.Predictions["2023-09-02"]
	// A second entry appends rather than overwriting the resolved one.
	require.Len(t, day, 2)
	assert.Equal(t, models.Score{HomeGoals: 2, AwayGoals: 1}, day[0].Prediction)
	require.NotNil(t, day[0].Actual)
	assert.Equal(t, models.Score{HomeGoals: 0, AwayGoals: 0}, *day[0].Actual)
	assert.Equal(t, 2, day[1].ID)
}

func TestAccuracyRatios(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update([]Candidate{
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}},
		{Date: kickoff(2, 17), HomeInitials: "LIV", AwayInitials: "MCI", Score: models.Score{HomeGoals: 2, AwayGoals: 0}},
		{Date: kickoff(9, 15), HomeInitials: "TOT", AwayInitials: "EVE", Score: models.Score{HomeGoals: 1, AwayGoals: 1}},
	}, nil)
	require.NoError(t, err)

	f, err := s.Update(nil, []Result{
		// Exact hit.
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}},
		// Right result, wrong score.
		{Date: kickoff(2, 17), HomeInitials: "LIV", AwayInitials: "MCI", Score: models.Score{HomeGoals: 3, AwayGoals: 1}},
	})
	require.NoError(t, err)

	require.NotNil(t, f.Accuracy.Accuracy)
	assert.InDelta(t, 0.5, *f.Accuracy.Accuracy, 1e-9)
	require.NotNil(t, f.Accuracy.ResultAccuracy)
	assert.InDelta(t, 1.0, *f.Accuracy.ResultAccuracy, 1e-9)
	// (2-2)/2 and (2-3)/2 for home; (1-1)/2 and (0-1)/2 for away.
	assert.InDelta(t, -0.5, *f.Accuracy.HomeScoredAvgDiff, 1e-9)
	assert.InDelta(t, -0.5, *f.Accuracy.AwayScoredAvgDiff, 1e-9)
}

func TestAccuracyNilWithoutResolvedPredictions(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Update([]Candidate{
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 1, AwayGoals: 0}},
	}, nil)
	require.NoError(t, err)

	assert.Nil(t, f.Accuracy.Accuracy)
	assert.Nil(t, f.Accuracy.ResultAccuracy)
	assert.Nil(t, f.Accuracy.HomeScoredAvgDiff)
	assert.Nil(t, f.Accuracy.AwayScoredAvgDiff)
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "predictions.json")
	s := NewStore(path, zap.NewNop())

	_, err := s.Update([]Candidate{
		{Date: kickoff(2, 15), HomeInitials: "ARS", AwayInitials: "CHE", Score: models.Score{HomeGoals: 2, AwayGoals: 1}},
	}, nil)
	require.NoError(t, err)

	// No stray temp files left next to the ledger.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	reopened := NewStore(path, zap.NewNop())
	f, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, f.Predictions["2023-09-02"], 1)
	assert.Equal(t, "ARS", f.Predictions["2023-09-02"][0].HomeInitials)
}
