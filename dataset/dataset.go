// Package dataset owns the raw per-season data the pipeline consumes: the
// on-disk JSON cache of fixtures and standings snapshots, and the feed
// client that refreshes it. The analysis core never touches the network;
// it only reads Season values handed to it.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Tom-Draper/Premier-League/models"
)

// Season is one season's raw dataset: the full match list and, when the
// feed supplied one, an upstream standings snapshot.
type Season struct {
	Year    int            `json:"year"`
	Matches []models.Match `json:"matches"`
	// Standings is the feed's table snapshot in position order. May be
	// empty for seasons cached before snapshots were kept.
	Standings []models.StandingsRow `json:"standings,omitempty"`
}

// Store reads and writes the per-season cache files under a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(year int) string {
	return filepath.Join(s.dir, "season_"+strconv.Itoa(year)+".json")
}

// Load reads one season's cached dataset.
func (s *Store) Load(year int) (*Season, error) {
	raw, err := os.ReadFile(s.path(year))
	if err != nil {
		return nil, fmt.Errorf("dataset: load season %d: %w", year, err)
	}
	var season Season
	if err := json.Unmarshal(raw, &season); err != nil {
		return nil, fmt.Errorf("dataset: parse season %d: %w", year, err)
	}
	return &season, nil
}

// LoadAll reads the datasets for the given season years, current first.
func (s *Store) LoadAll(years []int) (map[int]*Season, error) {
	out := make(map[int]*Season, len(years))
	for _, year := range years {
		season, err := s.Load(year)
		if err != nil {
			return nil, err
		}
		out[year] = season
	}
	return out, nil
}

// Save writes one season's dataset via a temp file and rename so readers
// never observe a partial cache file.
func (s *Store) Save(season *Season) error {
	raw, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode season %d: %w", season.Year, err)
	}
	tmp, err := os.CreateTemp(s.dir, "season_*.tmp")
	if err != nil {
		return fmt.Errorf("dataset: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("dataset: write season %d: %w", season.Year, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("dataset: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(season.Year)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("dataset: replace season %d: %w", season.Year, err)
	}
	return nil
}

// TeamNames returns the names of every team appearing in the season's
// fixtures, in first-appearance order.
func (d *Season) TeamNames() []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, m := range d.Matches {
		for _, name := range []string{m.HomeTeam, m.AwayTeam} {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
