// Package execctx tracks the best-so-far solution and a ledger of score
// improvements across a run of search.TabuSearch, independent of any
// particular output format — export consumes its ledger to write CSV.
package execctx

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opbench/optabu/evaluate"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/solution"
)

// LedgerRow is one recorded improvement: the instance/config this run was
// for, the score/distance/elapsed time at the moment of improvement, and
// the run's identity for cross-referencing multiple concurrent runs.
type LedgerRow struct {
	RunID    uuid.UUID
	Instance string
	Config   string
	Score    int
	Dist     float64
	Elapsed  time.Duration
}

// ExecutionContext accumulates every improvement a search makes and tracks
// the best solution seen so far.
type ExecutionContext struct {
	OP         *op.OP
	Instance   string
	ConfigName string
	RunID      uuid.UUID

	evaluator *evaluate.Evaluator
	log       zerolog.Logger

	Improves      []LedgerRow
	ImprovesScore []LedgerRow

	BestSol   *solution.Solution
	BestScore int
	BestDist  float64
	BestTime  time.Duration
}

// New builds an ExecutionContext for a run of problem (identified by
// instance, e.g. its source file path or a generated-instance label) under
// the given config name, logging through log.
func New(problem *op.OP, instance, configName string, log zerolog.Logger) *ExecutionContext {
	return &ExecutionContext{
		OP:         problem,
		Instance:   instance,
		ConfigName: configName,
		RunID:      uuid.New(),
		evaluator:  evaluate.New(problem),
		log:        log,
		BestScore:  -1,
	}
}

// AddImprove updates best-so-far only on a strict score improvement or an
// equal-score/shorter-distance tie, records a strict score improvement in
// the score-only sub-ledger, and always appends to the full ledger.
func (ctx *ExecutionContext) AddImprove(sol *solution.Solution, elapsed time.Duration) {
	score := ctx.evaluator.TotalScore(sol)
	dist := ctx.evaluator.TotalDist(sol)

	row := LedgerRow{
		RunID:    ctx.RunID,
		Instance: ctx.Instance,
		Config:   ctx.ConfigName,
		Score:    score,
		Dist:     dist,
		Elapsed:  elapsed,
	}

	firstEver := ctx.BestSol == nil
	scoreImproves := firstEver || score > ctx.BestScore
	betterOrTied := scoreImproves || (score == ctx.BestScore && dist < ctx.BestDist)

	if scoreImproves {
		ctx.ImprovesScore = append(ctx.ImprovesScore, row)
	}
	if betterOrTied {
		ctx.BestSol = solution.Copy(sol)
		ctx.BestTime = elapsed
		ctx.BestScore = score
		ctx.BestDist = dist
	}

	ctx.Improves = append(ctx.Improves, row)

	ctx.log.Info().
		Int("score", score).
		Float64("dist", dist).
		Dur("elapsed", elapsed).
		Msg("improved best solution")
}
