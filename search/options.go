package search

import "time"

// Config selects the tabu search engine's runtime behavior. Zero value is
// not meaningful; use DefaultConfig() and override fields as needed.
type Config struct {
	// FirstImprove, when true, makes local-search passes apply the first
	// qualifying move rather than ranking the whole neighborhood for the
	// best one.
	FirstImprove bool

	// EnableIntensification turns on the deeper intensified-replace/3-opt
	// search triggered when progress has stalled.
	EnableIntensification bool

	// EnableDiversification turns on the random-perturbation restart
	// triggered after a long stretch without improvement.
	EnableDiversification bool

	// MaxTime bounds wall-clock search time. Zero means the loop runs
	// until Target is reached or no vertices remain to add.
	MaxTime time.Duration

	// Target is an early-exit score: once BestSol's score reaches Target,
	// the search stops.
	Target int

	// Seed controls the engine's deterministic RNG stream. Default 0.
	Seed int64
}

// diversificationThreshold is the number of stalled iterations after which
// diversification may trigger (original: "threshold = 50").
const diversificationThreshold = 50

// intensificationMinIter is the earliest iteration at which intensification
// may trigger (original: "cur_itr < 5" guard).
const intensificationMinIter = 5

// DefaultConfig returns conservative, fully-populated defaults: best-
// improvement local search, both intensification and diversification
// enabled, a 30-second wall-clock budget, and a target of MaxInt (i.e. run
// out the clock rather than stop early on score).
func DefaultConfig() Config {
	return Config{
		FirstImprove:          false,
		EnableIntensification: true,
		EnableDiversification: true,
		MaxTime:               30 * time.Second,
		Target:                int(^uint(0) >> 1),
		Seed:                  0,
	}
}
