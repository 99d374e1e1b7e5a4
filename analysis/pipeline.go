package analysis

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/config"
	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/ledger"
	"github.com/Tom-Draper/Premier-League/models"
	"github.com/Tom-Draper/Premier-League/teams"
)

// Snapshot is one fully built set of derived tables. It is immutable once
// published: readers pick up whole snapshots, never partial rebuilds.
type Snapshot struct {
	Season    int       `json:"season"`
	BuiltAt   time.Time `json:"builtAt"`
	TeamNames []string  `json:"teams"`

	Standings      map[int][]models.StandingsRow      `json:"standings"`
	Ratings        []models.TeamRating                `json:"ratings"`
	HomeAdvantages []models.HomeAdvantage             `json:"homeAdvantages"`
	Form           map[string]*models.TeamForm        `json:"form"`
	SeasonStats    map[string]models.SeasonStats      `json:"seasonStats"`
	Upcoming       map[string]*models.UpcomingFixture `json:"upcoming"`
	Predictions    map[string]models.Prediction       `json:"predictions"`
	Accuracy       models.AccuracySummary             `json:"accuracy"`
}

// Rating returns a team's combined rating, zero when unknown.
func (s *Snapshot) Rating(team string) float64 {
	for _, tr := range s.Ratings {
		if tr.Team == team {
			return tr.TotalRating
		}
	}
	return 0
}

// CurrentTable is the current season's standings.
func (s *Snapshot) CurrentTable() []models.StandingsRow {
	return s.Standings[s.Season]
}

// Pipeline rebuilds the derived tables from the cached season data and
// publishes the result atomically. Refresh runs are serialised; a failed
// run leaves the previous snapshot in place.
type Pipeline struct {
	cfg    *config.Config
	reg    *teams.Registry
	store  *dataset.Store
	ledger *ledger.Store
	feed   *dataset.Client
	log    *zap.Logger

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// New wires a pipeline. feed may be nil, in which case Refresh rebuilds
// from the local cache without contacting the upstream feed.
func New(cfg *config.Config, reg *teams.Registry, store *dataset.Store, led *ledger.Store, feed *dataset.Client, log *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		reg:    reg,
		store:  store,
		ledger: led,
		feed:   feed,
		log:    log,
	}
}

// Current returns the latest published snapshot, nil before the first
// successful refresh.
func (p *Pipeline) Current() *Snapshot {
	return p.current.Load()
}

// Refresh pulls fresh season data when a feed client is configured, then
// rebuilds every derived table in dependency order and swaps the snapshot
// in. The prediction ledger is updated as part of the run.
func (p *Pipeline) Refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	started := time.Now()
	seasons := p.cfg.Seasons()

	if p.feed != nil {
		if err := p.feed.Refresh(ctx, p.store, seasons); err != nil {
			return fmt.Errorf("pipeline: refresh feed: %w", err)
		}
	}

	data, err := p.store.LoadAll(seasons)
	if err != nil {
		return fmt.Errorf("pipeline: load seasons: %w", err)
	}
	current := data[p.cfg.Season]
	if current == nil {
		return fmt.Errorf("pipeline: current season %d: %w", p.cfg.Season, ErrEmptyInput)
	}
	teamNames := current.TeamNames()

	snap, err := p.build(data, current, teamNames, seasons)
	if err != nil {
		return err
	}

	p.current.Store(snap)
	p.log.Info("snapshot published",
		zap.Int("season", p.cfg.Season),
		zap.Int("teams", len(teamNames)),
		zap.Duration("took", time.Since(started)))
	return nil
}

func (p *Pipeline) build(data map[int]*dataset.Season, current *dataset.Season, teamNames []string, seasons []int) (*Snapshot, error) {
	standings, err := BuildStandings(data, teamNames, seasons)
	if err != nil {
		return nil, fmt.Errorf("pipeline: standings: %w", err)
	}
	ratings, err := BuildRatings(standings, teamNames, seasons, p.cfg.RatingGamesThreshold)
	if err != nil {
		return nil, fmt.Errorf("pipeline: ratings: %w", err)
	}
	homeAdvantages, err := BuildHomeAdvantages(data, teamNames, seasons, p.cfg.HomeGamesThreshold, p.cfg.HomeAdvExcludedSeasons)
	if err != nil {
		return nil, fmt.Errorf("pipeline: home advantages: %w", err)
	}
	form, err := BuildForm(current, ratings, p.reg, p.cfg.StarTeamThreshold)
	if err != nil {
		return nil, fmt.Errorf("pipeline: form: %w", err)
	}
	stats, err := BuildSeasonStats(current, teamNames)
	if err != nil {
		return nil, fmt.Errorf("pipeline: season stats: %w", err)
	}
	upcoming, err := BuildUpcoming(data, teamNames, seasons)
	if err != nil {
		return nil, fmt.Errorf("pipeline: upcoming: %w", err)
	}
	predictions, candidates, err := BuildPredictions(upcoming, form, ratings, homeAdvantages, stats, p.reg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: predictions: %w", err)
	}

	book, err := p.ledger.Update(candidates, CollectResults(current, p.reg))
	if err != nil {
		return nil, fmt.Errorf("pipeline: ledger: %w", err)
	}

	return &Snapshot{
		Season:         p.cfg.Season,
		BuiltAt:        time.Now().UTC(),
		TeamNames:      teamNames,
		Standings:      standings,
		Ratings:        ratings,
		HomeAdvantages: homeAdvantages,
		Form:           form,
		SeasonStats:    stats,
		Upcoming:       upcoming,
		Predictions:    predictions,
		Accuracy:       book.Accuracy,
	}, nil
}
