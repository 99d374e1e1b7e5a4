package analysis

import "errors"

var (
	// ErrMissingDependency means a stage ran before the table it consumes
	// was built. Fatal to the pipeline run; the previous snapshot stays
	// live.
	ErrMissingDependency = errors.New("analysis: upstream table not built")

	// ErrEmptyInput means required raw input (team roster, fixture list)
	// was absent or empty. Callers treat it as a missing dependency.
	ErrEmptyInput = errors.New("analysis: required input empty")

	// ErrSeasonFinished is the terminal state of a team with no scheduled
	// fixture left. Expected at the end of a season, not a failure.
	ErrSeasonFinished = errors.New("analysis: season finished")
)
