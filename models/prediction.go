package models

// Score is an integer scoreline, used both for forecasts and actual results.
type Score struct {
	HomeGoals int `json:"homeGoals"`
	AwayGoals int `json:"awayGoals"`
}

// SameResult reports whether two scorelines agree on the win/draw/loss
// outcome, regardless of the exact score.
func (s Score) SameResult(o Score) bool {
	switch {
	case s.HomeGoals > s.AwayGoals:
		return o.HomeGoals > o.AwayGoals
	case s.HomeGoals < s.AwayGoals:
		return o.HomeGoals < o.AwayGoals
	default:
		return o.HomeGoals == o.AwayGoals
	}
}

// PredictionDetail records the inputs a forecast was derived from, kept for
// later accuracy analysis.
type PredictionDetail struct {
	// Source names where the base expected goals came from: "head-to-head",
	// "season-average" or "league-average".
	Source        string  `json:"source"`
	BaseHomeGoals float64 `json:"baseHomeGoals"`
	BaseAwayGoals float64 `json:"baseAwayGoals"`

	HomeFormRating float64 `json:"homeFormRating"`
	AwayFormRating float64 `json:"awayFormRating"`
	HomeTeamRating float64 `json:"homeTeamRating"`
	AwayTeamRating float64 `json:"awayTeamRating"`
	HomeAdvantage  float64 `json:"homeAdvantage"`
}

// Prediction is one durable ledger entry: a forecast for a fixture and,
// once the match has finished, the actual score. Entries are grouped by the
// fixture's date in the ledger file; Time keeps the kick-off for intra-day
// ordering.
type Prediction struct {
	ID           int               `json:"id"`
	Time         string            `json:"time"`
	HomeInitials string            `json:"homeInitials"`
	AwayInitials string            `json:"awayInitials"`
	Prediction   Score             `json:"prediction"`
	Actual       *Score            `json:"actual"`
	Details      *PredictionDetail `json:"details,omitempty"`
}

// Pending reports whether the prediction's match has not yet completed.
func (p Prediction) Pending() bool { return p.Actual == nil }

// Classification buckets a ledger entry for display.
func (p Prediction) Classification() string {
	if p.Actual == nil {
		return "pending"
	}
	if p.Prediction == *p.Actual {
		return "exact"
	}
	if p.Prediction.SameResult(*p.Actual) {
		return "correct-result"
	}
	return "incorrect"
}

// AccuracySummary aggregates all resolved predictions. Ratios are nil when
// no predictions have resolved; they are never reported as zero in that
// case.
type AccuracySummary struct {
	// Accuracy is the exact-score hit ratio.
	Accuracy *float64 `json:"accuracy"`
	// ResultAccuracy is the correct win/draw/loss outcome ratio.
	ResultAccuracy *float64 `json:"resultAccuracy"`
	// HomeScoredAvgDiff is the mean signed (predicted - actual) home goals.
	HomeScoredAvgDiff *float64 `json:"homeScoredAvgDiff"`
	AwayScoredAvgDiff *float64 `json:"awayScoredAvgDiff"`
}
