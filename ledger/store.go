package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/models"
)

const (
	dateKeyLayout = "2006-01-02"
	timeLayout    = "15:04"
)

// File is the on-disk shape of the prediction ledger: predictions grouped
// under their fixture date, plus the accuracy summary over every resolved
// prediction. The whole document is rewritten on every update.
type File struct {
	Predictions map[string][]models.Prediction `json:"predictions"`
	Accuracy    models.AccuracySummary         `json:"accuracy"`
}

// Candidate is a freshly computed forecast for an unplayed fixture,
// offered to the ledger for insertion or in-place revision.
type Candidate struct {
	Date         time.Time
	HomeInitials string
	AwayInitials string
	Score        models.Score
	Details      *models.PredictionDetail
}

// Result carries the final score of a played fixture so the matching
// pending prediction can be resolved.
type Result struct {
	Date         time.Time
	HomeInitials string
	AwayInitials string
	Score        models.Score
}

// Store owns one ledger file. All access is serialised through the store's
// mutex and every write goes through a temp file and rename, so a crash
// mid-write never leaves a torn document behind.
type Store struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewStore(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load reads the ledger document. A missing file is not an error: it reads
// as an empty ledger, and the first update creates it.
func (s *Store) Load() (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*File, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{Predictions: map[string][]models.Prediction{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: read %s: %w", s.path, err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("ledger: parse %s: %w", s.path, err)
	}
	if f.Predictions == nil {
		f.Predictions = map[string][]models.Prediction{}
	}
	return &f, nil
}

// Update folds new candidates and known results into the ledger in one
// read-modify-write cycle, recomputes the accuracy summary and persists the
// document. It returns the updated ledger.
//
// Insertion rules per candidate: an identical pending prediction for the
// same fixture is discarded; a pending prediction for the same fixture with
// a different score is revised in place; otherwise the candidate is
// appended with the next unused id. Resolved predictions are never touched.
func (s *Store) Update(candidates []Candidate, results []Result) (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}

	nextID := maxID(f) + 1
	for _, c := range candidates {
		key := c.Date.Format(dateKeyLayout)
		if revised := s.merge(f.Predictions[key], c); revised != nil {
			f.Predictions[key] = revised
			continue
		}
		f.Predictions[key] = append(f.Predictions[key], models.Prediction{
			ID:           nextID,
			Time:         c.Date.Format(timeLayout),
			HomeInitials: c.HomeInitials,
			AwayInitials: c.AwayInitials,
			Prediction:   c.Score,
			Details:      c.Details,
		})
		nextID++
	}

	for _, r := range results {
		s.attach(f, r)
	}

	f.Accuracy = measure(f)

	for key := range f.Predictions {
		day := f.Predictions[key]
		sort.Slice(day, func(i, j int) bool {
			if day[i].Time != day[j].Time {
				return day[i].Time < day[j].Time
			}
			return day[i].ID < day[j].ID
		})
	}

	if err := s.write(f); err != nil {
		return nil, err
	}
	return f, nil
}

// merge looks for a pending prediction of the candidate's fixture on the
// same date. It returns the (possibly revised) day slice when the candidate
// was absorbed, or nil when the candidate still needs inserting.
func (s *Store) merge(day []models.Prediction, c Candidate) []models.Prediction {
	for i := range day {
		p := &day[i]
		if p.HomeInitials != c.HomeInitials || p.AwayInitials != c.AwayInitials || !p.Pending() {
			continue
		}
		if p.Prediction == c.Score {
			return day
		}
		s.log.Info("revising prediction",
			zap.Int("id", p.ID),
			zap.String("fixture", p.HomeInitials+" v "+p.AwayInitials),
			zap.Int("home", c.Score.HomeGoals),
			zap.Int("away", c.Score.AwayGoals))
		p.Prediction = c.Score
		p.Time = c.Date.Format(timeLayout)
		p.Details = c.Details
		return day
	}
	return nil
}

func (s *Store) attach(f *File, r Result) {
	day := f.Predictions[r.Date.Format(dateKeyLayout)]
	for i := range day {
		p := &day[i]
		if p.HomeInitials == r.HomeInitials && p.AwayInitials == r.AwayInitials && p.Pending() {
			actual := r.Score
			p.Actual = &actual
			return
		}
	}
}

func maxID(f *File) int {
	max := 0
	for _, day := range f.Predictions {
		for _, p := range day {
			if p.ID > max {
				max = p.ID
			}
		}
	}
	return max
}

// measure recomputes the running accuracy over every resolved prediction.
// With nothing resolved yet the ratios stay null rather than reading as
// zero accuracy.
func measure(f *File) models.AccuracySummary {
	resolved, exact, correctResult := 0, 0, 0
	homeDiff, awayDiff := 0.0, 0.0
	for _, day := range f.Predictions {
		for _, p := range day {
			if p.Actual == nil {
				continue
			}
			resolved++
			if p.Prediction == *p.Actual {
				exact++
			}
			if p.Prediction.SameResult(*p.Actual) {
				correctResult++
			}
			homeDiff += float64(p.Prediction.HomeGoals - p.Actual.HomeGoals)
			awayDiff += float64(p.Prediction.AwayGoals - p.Actual.AwayGoals)
		}
	}

	if resolved == 0 {
		return models.AccuracySummary{}
	}
	n := float64(resolved)
	return models.AccuracySummary{
		Accuracy:          ptr(float64(exact) / n),
		ResultAccuracy:    ptr(float64(correctResult) / n),
		HomeScoredAvgDiff: ptr(homeDiff / n),
		AwayScoredAvgDiff: ptr(awayDiff / n),
	}
}

func ptr(v float64) *float64 { return &v }

func (s *Store) write(f *File) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ledger: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "ledger-*.json")
	if err != nil {
		return fmt.Errorf("ledger: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("ledger: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("ledger: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("ledger: replace %s: %w", s.path, err)
	}
	return nil
}
