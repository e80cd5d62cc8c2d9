// Package search implements the tabu search metaheuristic over an
// Orienteering Problem instance: a constructive start, a layered local-
// search arbitration across five move families, intensification,
// diversification, and aspiration-overridden tabu enforcement.
//
// Design:
//   - Control flow mirrors a textbook tabu search orchestrator: one
//     TabuSearch owns exactly one current solution, one best-so-far
//     solution, one tabu list, and one deterministic RNG stream — no
//     shared mutable state leaks outside an engine, which is what lets
//     cmd/optabu run many engines concurrently without synchronization.
//   - Soft wall-clock deadline, checked once per outer iteration (cheap
//     relative to the O(n^2)-O(n^3) candidate scans each iteration already
//     performs), the same granularity-vs-overhead tradeoff the teacher's
//     tsp package makes with its bit-masked deadline check in tighter
//     inner loops.
package search

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/opbench/optabu/evaluate"
	"github.com/opbench/optabu/execctx"
	"github.com/opbench/optabu/move"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/solution"
	"github.com/opbench/optabu/tabulist"
)

// TabuSearch is one independent search engine bound to a single OP
// instance, execution context, and RNG stream.
type TabuSearch struct {
	op        *op.OP
	evaluator *evaluate.Evaluator
	tabuList  *tabulist.TabuList
	cfg       Config
	ctx       *execctx.ExecutionContext
	log       zerolog.Logger

	rng *rand.Rand

	sol     *solution.Solution
	bestSol *solution.Solution

	startTime time.Time
}

// New builds a TabuSearch engine for problem, logging and recording
// improvements through ctx, configured by cfg.
func New(problem *op.OP, ctx *execctx.ExecutionContext, cfg Config, log zerolog.Logger) *TabuSearch {
	tenure := tabulist.Tenure(problem.N)

	return &TabuSearch{
		op:        problem,
		evaluator: evaluate.New(problem),
		tabuList:  tabulist.New(tenure),
		cfg:       cfg,
		ctx:       ctx,
		log:       log,
		rng:       rngFromSeed(cfg.Seed),
	}
}

// NewStream builds a TabuSearch engine whose RNG is derived from cfg.Seed
// and stream, a decorrelated substream identified by stream (typically a
// batch engine's index) — see rng.go's deriveRNG. Used by cmd/optabu's
// batch runner so concurrently-run engines never share RNG state.
func NewStream(problem *op.OP, ctx *execctx.ExecutionContext, cfg Config, log zerolog.Logger, stream uint64) *TabuSearch {
	ts := New(problem, ctx, cfg, log)
	ts.rng = deriveRNG(cfg.Seed, stream)

	return ts
}

// Solve runs the constructive heuristic followed by the tabu search main
// loop until the wall-clock budget is spent, every vertex is on the path,
// or the best score reaches cfg.Target. Returns the best solution found.
func (ts *TabuSearch) Solve() *solution.Solution {
	ts.startTime = time.Now()

	ts.sol = ts.constructiveHeuristic()
	ts.bestSol = solution.Copy(ts.sol)

	itr := 0
	lastChangeItr := 0

	for (ts.cfg.MaxTime <= 0 || ts.timeElapsed() < ts.cfg.MaxTime) &&
		!ts.bestSol.AreAllVerticesInPath() &&
		ts.evaluator.TotalScore(ts.bestSol) < ts.cfg.Target {

		ts.localSearch(itr, lastChangeItr)

		if ts.updateBestSol() {
			lastChangeItr = itr
			ts.saveImproveData(ts.bestSol)
		}

		if ts.triggerDiversificationCriteria(itr, lastChangeItr) {
			lastChangeItr = itr
			ts.diversify()
		}

		itr++
	}

	return ts.bestSol
}

// constructiveHeuristic greedily builds an initial path, repeatedly
// inserting the unvisited vertex/position pair with the best score/
// distance improvement ratio until no feasible insertion remains.
func (ts *TabuSearch) constructiveHeuristic() *solution.Solution {
	sol := solution.CreateTrivialPath(ts.op.N)

	for {
		bestDeltaRatio := math.Inf(-1)
		var best move.Move

		for _, cand := range ts.evaluator.InsertionCandidates(sol) {
			if cand.DeltaRatio() > bestDeltaRatio {
				bestDeltaRatio = cand.DeltaRatio()
				best = cand
			}
		}

		if best == nil {
			break
		}
		best.Apply(sol)
		ts.log.Debug().Str("move", best.String()).Msg("constructive_heuristic applied insertion")
	}

	ts.log.Info().Str("path", sol.String()).Msg("constructive_heuristic finished")

	return sol
}

// localSearch runs exactly one iteration of the layered arbitration: it
// tries each move family in priority order and applies the first one that
// qualifies, falling back to a random non-improving move among the three
// per-dimension bests when the whole neighborhood is exhausted.
func (ts *TabuSearch) localSearch(itr, lastChangeItr int) {
	ts.tabuList.Update(itr)

	state := newLocalSearchState(ts.evaluator, ts.sol, ts.bestSol)

	if ts.searchInsertion(state) {
		return
	}
	if ts.searchReplace(state) {
		return
	}

	if state.bestDeltaScore > 0.0 && !ts.isMoveForbidden(state.bestScoreMove, state, true) {
		ts.log.Debug().Str("move", state.bestScoreMove.String()).Msg("applying best score move")
		state.bestScoreMove.Apply(ts.sol)
		return
	}

	if state.bestDeltaRatio > 0.0 && !ts.isMoveForbidden(state.bestRatioMove, state, true) {
		ts.log.Debug().Str("move", state.bestRatioMove.String()).Msg("applying best ratio move")
		state.bestRatioMove.Apply(ts.sol)
		return
	}

	if ts.searchRelocate(state) {
		return
	}
	if ts.searchTwoOpt(state) {
		return
	}

	if state.bestDeltaDist < 0.0 && !ts.isMoveForbidden(state.bestDistMove, state, false) {
		ts.log.Debug().Str("move", state.bestDistMove.String()).Msg("applying best dist move")
		state.bestDistMove.Apply(ts.sol)
		return
	}

	if ts.triggerIntensificationCriteria(itr, lastChangeItr) && ts.intensificationSearch() {
		ts.log.Debug().Msg("intensification improved solution")
		return
	}

	ts.log.Debug().Str("path", ts.sol.String()).Msg("local optimum")
	ts.applyNonImprovingMove(state.bestDistMove, state.bestScoreMove, state.bestRatioMove, itr)
}

// applyNonImprovingMove picks uniformly at random among the non-tabu moves
// of the three per-dimension bests, applies it, and marks it tabu — the
// diversifying "kick" that lets the search escape a strict local optimum.
func (ts *TabuSearch) applyNonImprovingMove(m1, m2, m3 move.Move, itr int) {
	var candidates []move.Move
	for _, m := range []move.Move{m1, m2, m3} {
		if m != nil && !ts.tabuList.IsTabu(m) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		ts.log.Debug().Msg("no valid candidates for non-improving move")
		return
	}

	chosen := candidates[ts.rng.Intn(len(candidates))]
	ts.log.Debug().Str("move", chosen.String()).Msg("applying non-improving move")
	chosen.Apply(ts.sol)
	ts.tabuList.Add(chosen, itr)
}

// searchInsertion ranks every feasible Insertion candidate by delta ratio,
// applying the first qualifying one immediately under first-improvement
// policy, or recording the best for best-improvement policy.
func (ts *TabuSearch) searchInsertion(state *localSearchState) bool {
	for _, m := range ts.evaluator.InsertionCandidates(ts.sol) {
		deltaRatio := m.DeltaRatio()

		if ts.isMoveForbidden(m, state, true) {
			continue
		}

		if ts.cfg.FirstImprove && deltaRatio > 0 {
			ts.log.Debug().Str("move", m.String()).Msg("applying insertion move (first-improve)")
			m.Apply(ts.sol)
			return true
		}

		if deltaRatio > state.bestDeltaRatio {
			state.bestDeltaRatio = deltaRatio
			state.bestRatioMove = m
		}
	}

	return false
}

// searchReplace ranks every feasible Replace candidate using the three-way
// split of original semantics: a pure-distance case when scores tie, a
// pure-improvement case when both score and distance improve, and a
// ratio-based case when score improves at the cost of distance.
func (ts *TabuSearch) searchReplace(state *localSearchState) bool {
	for _, m := range ts.evaluator.ReplaceCandidates(ts.sol) {
		deltaScore := m.DeltaScore()
		deltaDist := m.DeltaDistance()
		deltaRatio := m.DeltaRatio()

		switch {
		case deltaScore == 0.0:
			if ts.isMoveForbidden(m, state, false) {
				continue
			}
			if ts.cfg.FirstImprove && deltaDist < 0.0 {
				ts.log.Debug().Str("move", m.String()).Msg("applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaDist < state.bestDeltaDist {
				state.bestDeltaDist = deltaDist
				state.bestDistMove = m
			}

		case deltaDist < 0.0:
			if ts.isMoveForbidden(m, state, true) {
				continue
			}
			if ts.cfg.FirstImprove {
				ts.log.Debug().Str("move", m.String()).Msg("applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaScore > state.bestDeltaScore {
				state.bestDeltaScore = deltaScore
				state.bestScoreMove = m
			}

		default: // deltaScore > 0, deltaDist >= 0
			if ts.isMoveForbidden(m, state, true) {
				continue
			}
			if ts.cfg.FirstImprove && deltaRatio > 0.0 {
				ts.log.Debug().Str("move", m.String()).Msg("applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaRatio > state.bestDeltaRatio {
				state.bestDeltaRatio = deltaRatio
				state.bestRatioMove = m
			}
		}
	}

	return false
}

// searchRelocate ranks every feasible Relocate candidate by distance delta.
func (ts *TabuSearch) searchRelocate(state *localSearchState) bool {
	for _, m := range ts.evaluator.RelocateCandidates(ts.sol) {
		deltaDist := m.DeltaDistance()

		if ts.isMoveForbidden(m, state, false) {
			continue
		}
		if ts.cfg.FirstImprove && deltaDist < 0.0 {
			ts.log.Debug().Str("move", m.String()).Msg("applying relocate move (first-improve)")
			m.Apply(ts.sol)
			return true
		}
		if deltaDist < state.bestDeltaDist {
			state.bestDeltaDist = deltaDist
			state.bestDistMove = m
		}
	}

	return false
}

// searchTwoOpt ranks every feasible TwoOpt candidate by distance delta.
func (ts *TabuSearch) searchTwoOpt(state *localSearchState) bool {
	for _, m := range ts.evaluator.TwoOptCandidates(ts.sol) {
		deltaDist := m.DeltaDistance()

		if ts.isMoveForbidden(m, state, false) {
			continue
		}
		if ts.cfg.FirstImprove && deltaDist < 0.0 {
			ts.log.Debug().Str("move", m.String()).Msg("applying 2-opt move (first-improve)")
			m.Apply(ts.sol)
			return true
		}
		if deltaDist < state.bestDeltaDist {
			state.bestDeltaDist = deltaDist
			state.bestDistMove = m
		}
	}

	return false
}

// searchThreeOpt ranks every feasible ThreeOpt candidate by distance delta.
// Unlike the other families it is never tabu-checked in the original
// design — it is only reachable from intensification, which is itself
// gated by its own trigger criteria rather than the tabu list.
func (ts *TabuSearch) searchThreeOpt(state *localSearchState) bool {
	for _, m := range ts.evaluator.ThreeOptCandidates(ts.sol) {
		deltaDist := m.DeltaDistance()

		if ts.cfg.FirstImprove && deltaDist < 0.0 {
			ts.log.Debug().Str("move", m.String()).Msg("intensification: applying 3-opt move (first-improve)")
			m.Apply(ts.sol)
			return true
		}
		if deltaDist < state.bestDeltaDist {
			state.bestDeltaDist = deltaDist
			state.bestDistMove = m
		}
	}

	return false
}

// searchIntensifiedReplace is searchReplace's wider counterpart used only
// during intensification: it allows the in-candidate to land at any path
// position, not just the vacated slot, and skips the tabu check entirely
// (intensification is meant to break out of exactly the state the tabu
// list would otherwise protect).
func (ts *TabuSearch) searchIntensifiedReplace(state *localSearchState) bool {
	for _, m := range ts.evaluator.IntensifiedReplaceCandidates(ts.sol) {
		deltaScore := m.DeltaScore()
		deltaDist := m.DeltaDistance()
		deltaRatio := m.DeltaRatio()

		switch {
		case deltaScore == 0.0:
			if ts.cfg.FirstImprove && deltaDist < 0.0 {
				ts.log.Debug().Str("move", m.String()).Msg("intensification: applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaDist < state.bestDeltaDist {
				state.bestDeltaDist = deltaDist
				state.bestDistMove = m
			}

		case deltaDist < 0.0:
			if ts.cfg.FirstImprove {
				ts.log.Debug().Str("move", m.String()).Msg("intensification: applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaScore > state.bestDeltaScore {
				state.bestDeltaScore = deltaScore
				state.bestScoreMove = m
			}

		default:
			if ts.cfg.FirstImprove && deltaRatio > 0.0 {
				ts.log.Debug().Str("move", m.String()).Msg("intensification: applying replace move (first-improve)")
				m.Apply(ts.sol)
				return true
			}
			if deltaRatio > state.bestDeltaRatio {
				state.bestDeltaRatio = deltaRatio
				state.bestRatioMove = m
			}
		}
	}

	return false
}

// intensificationSearch runs a fresh, wider local-search pass (intensified
// replace, then best-score/best-ratio fallback, then 3-opt, then best-dist
// fallback) over a new localSearchState, returning whether it found and
// applied an improving move.
func (ts *TabuSearch) intensificationSearch() bool {
	state := newLocalSearchState(ts.evaluator, ts.sol, ts.bestSol)

	ts.log.Debug().Msg("intensification pass starting")

	if ts.searchIntensifiedReplace(state) {
		return true
	}

	if state.bestDeltaScore > 0.0 {
		ts.log.Debug().Str("move", state.bestScoreMove.String()).Msg("intensification: applying best score move")
		state.bestScoreMove.Apply(ts.sol)
		return true
	}

	if state.bestDeltaRatio > 0.0 {
		ts.log.Debug().Str("move", state.bestRatioMove.String()).Msg("intensification: applying best ratio move")
		state.bestRatioMove.Apply(ts.sol)
		return true
	}

	if ts.searchThreeOpt(state) {
		return true
	}

	if state.bestDeltaDist < 0.0 {
		ts.log.Debug().Str("move", state.bestDistMove.String()).Msg("intensification: applying best dist move")
		state.bestDistMove.Apply(ts.sol)
		return true
	}

	ts.log.Debug().Msg("intensification did not improve solution")

	return false
}

// triggerDiversificationCriteria reports whether the search has stalled
// long enough (diversificationThreshold iterations without a best-sol
// change) to warrant a random perturbation restart.
func (ts *TabuSearch) triggerDiversificationCriteria(curItr, lastChangeItr int) bool {
	if !ts.cfg.EnableDiversification {
		return false
	}

	return curItr-lastChangeItr > diversificationThreshold
}

// diversify replaces the current solution with a perturbation of the best
// solution found so far (evaluate.DiversifyVertices) and clears the tabu
// list, since the perturbed solution invalidates the moves it was built
// to forbid.
func (ts *TabuSearch) diversify() {
	ts.log.Debug().Str("best", ts.bestSol.String()).Msg("diversifying best solution")

	candidate := solution.Copy(ts.bestSol)
	ts.sol = ts.evaluator.DiversifyVertices(candidate, ts.rng)

	ts.log.Debug().Str("after", ts.sol.String()).Msg("solution after diversification")

	ts.tabuList.Clear()
}

// triggerIntensificationCriteria reports whether the search is due for an
// intensification pass: either the immediately preceding iteration was the
// last improvement (a promising moment to dig deeper), or the period
// op.N's modulo schedule comes due.
func (ts *TabuSearch) triggerIntensificationCriteria(curItr, lastChangeItr int) bool {
	if !ts.cfg.EnableIntensification || curItr < intensificationMinIter {
		return false
	}

	if curItr-lastChangeItr == 1 {
		return true
	}

	mod := curItr % ts.op.N

	return mod == 0 || mod == 1
}

// isMoveForbidden reports whether m is currently tabu and, if so, whether
// aspiration overrides the prohibition: a tabu move is allowed through only
// if applying it would still leave the metric in question strictly better
// than the best solution found so far (P9).
func (ts *TabuSearch) isMoveForbidden(m move.Move, state *localSearchState, useScoreMetric bool) bool {
	if !ts.tabuList.IsTabu(m) {
		return false
	}

	if useScoreMetric {
		forbidden := state.scoreCurSol+int(m.DeltaScore()) <= state.scoreBestSol
		if forbidden {
			ts.log.Debug().Str("move", m.String()).Msg("move forbidden by score aspiration")
		}

		return forbidden
	}

	forbidden := state.distCurSol+m.DeltaDistance() >= state.distBestSol
	if forbidden {
		ts.log.Debug().Str("move", m.String()).Msg("move forbidden by distance aspiration")
	}

	return forbidden
}

// updateBestSol promotes ts.sol to ts.bestSol when it strictly improves on
// score, or ties on score with a strictly shorter distance (P4: best score
// is monotone non-decreasing).
func (ts *TabuSearch) updateBestSol() bool {
	scoreSol := ts.evaluator.TotalScore(ts.sol)
	scoreBest := ts.evaluator.TotalScore(ts.bestSol)

	if scoreSol > scoreBest {
		ts.bestSol = solution.Copy(ts.sol)
		return true
	}
	if scoreSol == scoreBest {
		distSol := ts.evaluator.TotalDist(ts.sol)
		distBest := ts.evaluator.TotalDist(ts.bestSol)
		if distSol < distBest {
			ts.bestSol = solution.Copy(ts.sol)
			return true
		}
	}

	return false
}

// timeElapsed returns the wall-clock time since Solve started.
func (ts *TabuSearch) timeElapsed() time.Duration {
	return time.Since(ts.startTime)
}

// saveImproveData records sol as an improvement in the execution context's
// ledger.
func (ts *TabuSearch) saveImproveData(sol *solution.Solution) {
	ts.ctx.AddImprove(sol, ts.timeElapsed())
}
