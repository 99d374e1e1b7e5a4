package models

// SeasonRating is a team's strength rating for one season: the raw
// points + goal-difference value and its normalised position within that
// season's cross-team distribution.
type SeasonRating struct {
	Raw        float64 `json:"raw"`
	Normalised float64 `json:"normalised"`
}

// TeamRating combines a team's per-season ratings into a single
// recency-weighted TotalRating in [0,1].
type TeamRating struct {
	Team        string               `json:"team"`
	Seasons     map[int]SeasonRating `json:"seasons"`
	TotalRating float64              `json:"totalRating"`
}
