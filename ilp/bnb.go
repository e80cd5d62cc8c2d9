// Package ilp provides an exact solver for small Orienteering Problem
// instances: a depth-first branch-and-bound search with an admissible
// score upper bound and a soft time/node budget, grounded on the teacher's
// tsp.TSPBranchAndBound engine shape (dedicated engine struct, deterministic
// branching order, sparse deadline checks, explicit sentinel errors) rather
// than the original solver's ILP formulation — that one dispatched to
// Gurobi, which has no place in this module's dependency surface.
package ilp

import (
	"errors"
	"sort"
	"time"

	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/solution"
)

// MaxExactN bounds the instance size this solver will attempt. Branch-and-
// bound over the Orienteering Problem is exponential in the worst case;
// beyond this size, use the heuristic search package instead.
const MaxExactN = 18

// ErrTooLarge indicates the instance exceeds MaxExactN.
var ErrTooLarge = errors.New("ilp: instance too large for exact search")

// ErrNodeLimit indicates the search exhausted its node budget before
// completing, so the returned solution (if any) is not certified optimal.
var ErrNodeLimit = errors.New("ilp: node limit exceeded")

// ErrTimeLimit indicates the search exceeded its wall-clock budget before
// completing, so the returned solution (if any) is not certified optimal.
var ErrTimeLimit = errors.New("ilp: time limit exceeded")

// Options configures the exact solver.
type Options struct {
	// MaxNodes caps the number of DFS node expansions. Zero means no cap.
	MaxNodes int
	// TimeLimit caps wall-clock search time. Zero means no cap.
	TimeLimit time.Duration
}

// DefaultOptions returns a generous but finite search budget.
func DefaultOptions() Options {
	return Options{MaxNodes: 2_000_000, TimeLimit: 60 * time.Second}
}

// bnbEngine holds all exact-search state, mirroring the teacher's bbEngine:
// explicit fields instead of closures, so dependencies and hot-path state
// stay predictable under recursion.
type bnbEngine struct {
	problem *op.OP
	opts    Options

	order [][]int // per-vertex candidate successors, sorted by descending score

	visited    []bool
	path       []int
	depth      int
	scoreSoFar int
	distSoFar  float64

	bestScore int
	bestPath  []int
	bestDist  float64
	foundAny  bool

	nodes       int
	useDeadline bool
	deadline    time.Time
}

// buildOrder precomputes, for each vertex, the other interior vertices and
// the end vertex sorted by descending score (ties broken by ascending
// index), matching the teacher's deterministic-branching rationale: explore
// the most promising completions first to tighten the incumbent early.
func (e *bnbEngine) buildOrder() {
	n := e.problem.N
	e.order = make([][]int, n)
	for u := 0; u < n; u++ {
		row := make([]int, 0, n-1)
		for v := 0; v < n; v++ {
			if v != u && v != 0 {
				row = append(row, v)
			}
		}
		sort.Slice(row, func(i, j int) bool {
			vi, vj := row[i], row[j]
			si, sj := e.problem.V[vi].Score, e.problem.V[vj].Score
			if si != sj {
				return si > sj
			}

			return vi < vj
		})
		e.order[u] = row
	}
}

// upperBound returns an admissible bound on the best score reachable from
// the current partial path: the score already collected plus every
// unvisited vertex's score, ignoring the travel budget entirely. Ignoring
// the budget can only overestimate, so the bound never prunes an optimal
// completion.
func (e *bnbEngine) upperBound() int {
	bound := e.scoreSoFar
	for v := 0; v < e.problem.N; v++ {
		if !e.visited[v] {
			bound += e.problem.V[v].Score
		}
	}

	return bound
}

func (e *bnbEngine) deadlineHit() bool {
	e.nodes++
	if e.useDeadline && (e.nodes&1023) == 0 && time.Now().After(e.deadline) {
		return true
	}

	return false
}

// commit records a new incumbent: the current path closed at the end vertex.
func (e *bnbEngine) commit(last int) {
	closeDist := e.distSoFar + e.problem.Dist(last, e.problem.N-1)
	if closeDist > e.problem.TMax {
		return
	}
	closedScore := e.scoreSoFar + e.problem.V[e.problem.N-1].Score
	if closedScore > e.bestScore {
		e.bestScore = closedScore
		e.bestDist = closeDist
		e.bestPath = append(e.bestPath[:0], e.path[:e.depth]...)
		e.bestPath = append(e.bestPath, e.problem.N-1)
		e.foundAny = true
	}
}

// dfs explores every simple-path extension from last, pruning by the
// admissible score bound and the travel budget.
func (e *bnbEngine) dfs(last int) {
	if e.deadlineHit() {
		return
	}
	if e.opts.MaxNodes > 0 && e.nodes > e.opts.MaxNodes {
		return
	}

	// Closing here is always a candidate completion.
	e.commit(last)

	if e.upperBound() <= e.bestScore {
		return
	}

	for _, v := range e.order[last] {
		if e.visited[v] || v == e.problem.N-1 {
			continue
		}
		d := e.problem.Dist(last, v)
		newDist := e.distSoFar + d
		if newDist > e.problem.TMax {
			continue
		}
		// Prune branches that cannot even afford to reach the end from v.
		if newDist+e.problem.Dist(v, e.problem.N-1) > e.problem.TMax {
			continue
		}

		e.visited[v] = true
		e.path[e.depth] = v
		e.depth++
		e.scoreSoFar += e.problem.V[v].Score
		e.distSoFar = newDist

		e.dfs(v)

		e.depth--
		e.distSoFar -= d
		e.scoreSoFar -= e.problem.V[v].Score
		e.visited[v] = false
	}
}

// Solve runs exact branch-and-bound search over problem and returns the
// score-optimal simple path from vertex 0 to vertex N-1 within the travel
// budget. It returns ErrTooLarge for instances above MaxExactN, and returns
// the best incumbent found alongside ErrNodeLimit/ErrTimeLimit if the
// search budget runs out before the search space is exhausted.
func Solve(problem *op.OP, opts Options) (*solution.Solution, error) {
	if problem.N > MaxExactN {
		return nil, ErrTooLarge
	}

	e := &bnbEngine{
		problem:   problem,
		opts:      opts,
		visited:   make([]bool, problem.N),
		path:      make([]int, problem.N),
		bestScore: -1,
	}
	e.visited[0] = true
	e.path[0] = 0
	e.depth = 1
	e.scoreSoFar = problem.V[0].Score
	e.buildOrder()

	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	e.dfs(0)

	var budgetErr error
	if e.useDeadline && time.Now().After(e.deadline) {
		budgetErr = ErrTimeLimit
	} else if opts.MaxNodes > 0 && e.nodes > opts.MaxNodes {
		budgetErr = ErrNodeLimit
	}

	if !e.foundAny {
		if budgetErr != nil {
			return nil, budgetErr
		}

		return nil, errors.New("ilp: no feasible path within budget")
	}

	sol := pathToSolution(problem.N, e.bestPath)

	return sol, budgetErr
}

// pathToSolution converts an ordered vertex sequence from 0 to n-1 into a
// Solution: it starts from the trivial 0 -> n-1 path and inserts each
// interior vertex right after the one before it.
func pathToSolution(n int, path []int) *solution.Solution {
	sol := solution.CreateTrivialPath(n)
	tail := path[0]
	for _, v := range path[1 : len(path)-1] {
		sol.AddVertexAfter(v, tail)
		tail = v
	}

	return sol
}
