package search

import (
	"math"

	"github.com/opbench/optabu/evaluate"
	"github.com/opbench/optabu/move"
	"github.com/opbench/optabu/solution"
)

// localSearchState tracks the best move seen so far in each ranking
// dimension (distance, score, ratio) during one local_search pass, plus a
// snapshot of the current and best solutions' metrics used by the
// aspiration check in isMoveForbidden.
type localSearchState struct {
	bestDeltaDist float64
	bestDistMove  move.Move
	bestDeltaScore float64
	bestScoreMove  move.Move
	bestDeltaRatio float64
	bestRatioMove  move.Move

	scoreCurSol  int
	distCurSol   float64
	scoreBestSol int
	distBestSol  float64
}

// newLocalSearchState snapshots sol and bestSol's metrics and initializes
// the per-pass best-move trackers to their "nothing found yet" sentinels.
func newLocalSearchState(e *evaluate.Evaluator, sol, bestSol *solution.Solution) *localSearchState {
	return &localSearchState{
		bestDeltaDist:  math.Inf(1),
		bestDeltaScore: math.Inf(-1),
		bestDeltaRatio: math.Inf(-1),

		scoreCurSol:  e.TotalScore(sol),
		distCurSol:   e.TotalDist(sol),
		scoreBestSol: e.TotalScore(bestSol),
		distBestSol:  e.TotalDist(bestSol),
	}
}
