// Package evaluate generates candidate moves over a solution.Solution and
// computes the delta-cost formulas they carry, plus the whole-path
// TotalDist/TotalScore/IsFeasible queries the search orchestrator needs to
// check budget feasibility.
//
// Design:
//   - Every delta formula is an O(1) local computation against the
//     instance's precomputed distance table (op.OP.Dist) — no candidate
//     generator ever recomputes a full tour cost to rank one move.
//   - Candidate generators return plain []move.Move slices rather than
//     Python-style generators; Go has no lazy-generator idiom as
//     lightweight as a slice for these candidate-set sizes.
//   - Final sums are stabilized with round1e9, the same fixed-precision
//     rounding the teacher's tsp package applies to tour costs, to avoid
//     cross-platform floating-point drift in long-running searches.
package evaluate

import (
	"math"
	"math/rand"

	"github.com/opbench/optabu/move"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/solution"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// bigConst substitutes for an infinite delta-improve ratio when a move's
// distance delta is exactly zero.
const bigConst = 10000.0

// Evaluator computes move deltas and whole-path metrics for one OP instance.
type Evaluator struct {
	OP *op.OP
}

// New builds an Evaluator bound to problem.
func New(problem *op.OP) *Evaluator {
	return &Evaluator{OP: problem}
}

// TotalDist sums the Euclidean length of every linked edge in sol.
//
// Complexity: O(n).
func (e *Evaluator) TotalDist(sol *solution.Solution) float64 {
	var total float64
	n := sol.N()
	for u := 0; u < n; u++ {
		v := sol.Next(u)
		if v != -1 {
			total += e.OP.Dist(u, v)
		}
	}

	return round1e9(total)
}

// TotalScore sums the score of every vertex currently on the path.
//
// Complexity: O(path length).
func (e *Evaluator) TotalScore(sol *solution.Solution) int {
	total := 0
	for _, v := range sol.GetVertices() {
		total += e.OP.V[v].Score
	}

	return total
}

// IsFeasible reports whether sol's total distance respects the instance budget.
func (e *Evaluator) IsFeasible(sol *solution.Solution) bool {
	return e.TotalDist(sol) <= e.OP.TMax
}

// InsertionCandidates enumerates every feasible Insertion move: placing an
// unvisited vertex right after each non-terminal path vertex.
//
// Complexity: O((n-|path|) * |path|).
func (e *Evaluator) InsertionCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)

	var out []move.Move
	for _, cand := range sol.GetRemainingVertices() {
		for _, prev := range sol.GetVertices() {
			if prev == sol.N()-1 {
				continue
			}
			deltaDist := e.insertionDeltaDist(sol, cand, prev)
			if curDist+deltaDist <= e.OP.TMax {
				deltaScore := float64(e.OP.V[cand].Score)
				deltaImprove := deltaImprove(deltaScore, deltaDist)
				out = append(out, move.NewInsertion(cand, prev, deltaScore, deltaDist, deltaImprove))
			}
		}
	}

	return out
}

// RelocateCandidates enumerates every feasible Relocate move: moving an
// interior path vertex to sit after a different path vertex.
//
// Complexity: O(|path|^2).
func (e *Evaluator) RelocateCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)

	var out []move.Move
	for _, cand := range sol.GetVertices() {
		if cand == 0 || cand == sol.N()-1 {
			continue
		}
		for _, relPos := range sol.GetVertices() {
			if relPos == cand || sol.Next(relPos) == cand || relPos == sol.N()-1 {
				continue
			}
			deltaDist := e.relocateDeltaDist(sol, cand, relPos)
			if curDist+deltaDist <= e.OP.TMax {
				out = append(out, move.NewRelocate(cand, relPos, deltaDist))
			}
		}
	}

	return out
}

// TwoOptCandidates enumerates every feasible 2-opt move over non-adjacent
// path positions.
//
// Complexity: O(|path|^2).
func (e *Evaluator) TwoOptCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)
	vertices := sol.GetVertices()

	var out []move.Move
	for i := 0; i < len(vertices); i++ {
		v1 := vertices[i]
		for j := i + 2; j < len(vertices)-1; j++ {
			v2 := vertices[j]
			deltaDist := e.twoOptDeltaDist(sol, v1, v2)
			if curDist+deltaDist <= e.OP.TMax {
				out = append(out, move.NewTwoOpt(v1, v2, deltaDist))
			}
		}
	}

	return out
}

// ThreeOptCandidates enumerates every feasible 3-opt move, in both the
// plain-reversal and segment-swap variants, over three cut points.
//
// Complexity: O(|path|^3).
func (e *Evaluator) ThreeOptCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)
	vertices := sol.GetVertices()

	var out []move.Move
	for i := 0; i < len(vertices); i++ {
		v1 := vertices[i]
		for j := i + 2; j < len(vertices); j++ {
			v2 := vertices[j]
			for k := j + 2; k < len(vertices)-1; k++ {
				v3 := vertices[k]

				deltaDist := e.threeOptDeltaDist(sol, v1, v2, v3)
				if curDist+deltaDist <= e.OP.TMax {
					out = append(out, move.NewThreeOpt(v1, v2, v3, false, deltaDist))
				}

				deltaDistSwap := e.threeOptSegmentSwapDeltaDist(sol, v1, v2, v3)
				if curDist+deltaDistSwap <= e.OP.TMax {
					out = append(out, move.NewThreeOpt(v1, v2, v3, true, deltaDistSwap))
				}
			}
		}
	}

	return out
}

// ReplaceCandidates enumerates every feasible Replace move that inserts the
// in-candidate back at the very slot the out-candidate vacates, restricted
// to non-negative score deltas (Replace never trades score away).
//
// Complexity: O(|path| * (n-|path|)).
func (e *Evaluator) ReplaceCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)
	vertices := sol.GetVertices()
	remaining := sol.GetRemainingVertices()

	var out []move.Move
	for i := 1; i < len(vertices)-1; i++ {
		outCand := vertices[i]
		for _, inCand := range remaining {
			deltaScore := e.replaceDeltaScore(inCand, outCand)
			if deltaScore < 0 {
				continue
			}
			deltaDist := e.replaceDeltaDist(sol, inCand, outCand)
			if curDist+deltaDist <= e.OP.TMax {
				deltaImprove := deltaImprove(deltaScore, deltaDist)
				insertPos := sol.Prev(outCand)
				out = append(out, move.NewReplace(inCand, insertPos, outCand, deltaScore, deltaDist, deltaImprove))
			}
		}
	}

	return out
}

// IntensifiedReplaceCandidates enumerates Replace moves allowing the
// in-candidate to be inserted at any path position, not just the vacated
// slot — a wider, more expensive search used during intensification.
//
// Complexity: O(|path|^2 * (n-|path|)).
func (e *Evaluator) IntensifiedReplaceCandidates(sol *solution.Solution) []move.Move {
	curDist := e.TotalDist(sol)
	vertices := sol.GetVertices()
	remaining := sol.GetRemainingVertices()

	var out []move.Move
	for i := 1; i < len(vertices)-1; i++ {
		outCand := vertices[i]
		for _, inCand := range remaining {
			deltaScore := e.replaceDeltaScore(inCand, outCand)
			if deltaScore < 0 {
				continue
			}
			for _, insertPos := range vertices {
				if insertPos == sol.N()-1 || insertPos == outCand {
					continue
				}
				deltaDist := e.intensifiedReplaceDeltaDist(sol, inCand, outCand, insertPos)
				if curDist+deltaDist <= e.OP.TMax {
					deltaImprove := deltaImprove(deltaScore, deltaDist)
					out = append(out, move.NewReplace(inCand, insertPos, outCand, deltaScore, deltaDist, deltaImprove))
				}
			}
		}
	}

	return out
}

// DiversifyVertices attempts to kick the search out of a local optimum by
// removing a random block of 2..k_max-2 interior vertices and reinserting a
// single random unvisited vertex at the first feasible position found,
// trying progressively larger removal blocks until one succeeds.
//
// Returns sol unchanged if no feasible perturbation exists (path too short,
// or no unvisited vertex available).
func (e *Evaluator) DiversifyVertices(sol *solution.Solution, rng *rand.Rand) *solution.Solution {
	vertices := sol.GetVertices()
	remaining := sol.GetRemainingVertices()

	if len(vertices) <= 3 || len(remaining) == 0 {
		return sol
	}

	kMax := len(vertices)
	inV := remaining[rng.Intn(len(remaining))]

	for k := 2; k < kMax-1; k++ {
		newSol := solution.Copy(sol)

		interior := vertices[1 : len(vertices)-1]
		outV := sampleWithoutReplacement(rng, interior, k)
		for _, v := range outV {
			newSol.RemoveVertex(v)
		}

		verticesAfterRemoval := newSol.GetVertices()
		possibleInsertPos := append([]int(nil), verticesAfterRemoval[:len(verticesAfterRemoval)-1]...)
		rng.Shuffle(len(possibleInsertPos), func(i, j int) {
			possibleInsertPos[i], possibleInsertPos[j] = possibleInsertPos[j], possibleInsertPos[i]
		})

		for _, insertPos := range possibleInsertPos {
			tmpSol := solution.Copy(newSol)
			tmpSol.AddVertexAfter(inV, insertPos)

			if e.IsFeasible(tmpSol) {
				return tmpSol
			}
		}
	}

	return sol
}

// sampleWithoutReplacement draws k distinct elements from items using rng,
// mirroring Python's random.sample semantics without mutating items.
func sampleWithoutReplacement(rng *rand.Rand, items []int, k int) []int {
	pool := append([]int(nil), items...)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if k > len(pool) {
		k = len(pool)
	}

	return pool[:k]
}

func (e *Evaluator) insertionDeltaDist(sol *solution.Solution, cand, insertPos int) float64 {
	next := sol.Next(insertPos)

	distRemoved := e.OP.Dist(insertPos, next)
	distAdded1 := e.OP.Dist(insertPos, cand)
	distAdded2 := e.OP.Dist(cand, next)

	return distAdded1 + distAdded2 - distRemoved
}

func (e *Evaluator) replaceDeltaScore(candIn, candOut int) float64 {
	return float64(e.OP.V[candIn].Score - e.OP.V[candOut].Score)
}

func (e *Evaluator) replaceDeltaDist(sol *solution.Solution, inCand, outCand int) float64 {
	prevOut := sol.Prev(outCand)
	nextOut := sol.Next(outCand)

	distRemoved1 := e.OP.Dist(prevOut, outCand)
	distRemoved2 := e.OP.Dist(outCand, nextOut)

	distAdded1 := e.OP.Dist(prevOut, inCand)
	distAdded2 := e.OP.Dist(inCand, nextOut)

	return distAdded1 + distAdded2 - distRemoved1 - distRemoved2
}

func (e *Evaluator) intensifiedReplaceDeltaDist(sol *solution.Solution, inCand, outCand, insertPos int) float64 {
	prevOut := sol.Prev(outCand)
	nextOut := sol.Next(outCand)

	distRemoved1 := e.OP.Dist(prevOut, outCand)
	distRemoved2 := e.OP.Dist(outCand, nextOut)
	distAdded1 := e.OP.Dist(prevOut, nextOut)

	nextInsert := sol.Next(insertPos)

	distRemoved3 := e.OP.Dist(insertPos, nextInsert)
	distAdded2 := e.OP.Dist(insertPos, inCand)
	distAdded3 := e.OP.Dist(inCand, nextInsert)

	return distAdded1 + distAdded2 + distAdded3 - distRemoved1 - distRemoved2 - distRemoved3
}

func (e *Evaluator) relocateDeltaDist(sol *solution.Solution, cand, relPos int) float64 {
	prevOfCand := sol.Prev(cand)
	nextOfCand := sol.Next(cand)
	nextOfRelPos := sol.Next(relPos)

	distAdded1 := e.OP.Dist(prevOfCand, nextOfCand)
	distAdded2 := e.OP.Dist(relPos, cand)
	distAdded3 := e.OP.Dist(cand, nextOfRelPos)

	distRemoved1 := e.OP.Dist(prevOfCand, cand)
	distRemoved2 := e.OP.Dist(cand, nextOfCand)
	distRemoved3 := e.OP.Dist(relPos, nextOfRelPos)

	return distAdded1 + distAdded2 + distAdded3 - distRemoved1 - distRemoved2 - distRemoved3
}

func (e *Evaluator) twoOptDeltaDist(sol *solution.Solution, v1, v2 int) float64 {
	nextV1 := sol.Next(v1)
	nextV2 := sol.Next(v2)

	distRemoved1 := e.OP.Dist(v1, nextV1)
	distRemoved2 := e.OP.Dist(v2, nextV2)

	distAdded1 := e.OP.Dist(v1, v2)
	distAdded2 := e.OP.Dist(nextV1, nextV2)

	return distAdded1 + distAdded2 - distRemoved1 - distRemoved2
}

// threeOptDeltaDist computes the delta for the plain-reversal variant:
// S1 S2(reversed) S3(reversed) S4.
func (e *Evaluator) threeOptDeltaDist(sol *solution.Solution, v1, v2, v3 int) float64 {
	nextV1 := sol.Next(v1)
	nextV2 := sol.Next(v2)
	nextV3 := sol.Next(v3)

	distRemoved1 := e.OP.Dist(v1, nextV1)
	distRemoved2 := e.OP.Dist(v2, nextV2)
	distRemoved3 := e.OP.Dist(v3, nextV3)

	distAdded1 := e.OP.Dist(v1, v2)
	distAdded2 := e.OP.Dist(nextV1, v3)
	distAdded3 := e.OP.Dist(nextV2, nextV3)

	return distAdded1 + distAdded2 + distAdded3 - distRemoved1 - distRemoved2 - distRemoved3
}

// threeOptSegmentSwapDeltaDist computes the delta for the segment-swap
// variant: S1 S3(reversed) S2(reversed) S4.
func (e *Evaluator) threeOptSegmentSwapDeltaDist(sol *solution.Solution, v1, v2, v3 int) float64 {
	nextV1 := sol.Next(v1)
	nextV3 := sol.Next(v3)

	distRemoved1 := e.OP.Dist(v1, nextV1)
	distRemoved2 := e.OP.Dist(v3, nextV3)

	distAdded1 := e.OP.Dist(v1, v3)
	distAdded2 := e.OP.Dist(nextV1, nextV3)

	return distAdded1 + distAdded2 - distRemoved1 - distRemoved2
}

// deltaImprove computes the score/distance improvement ratio a move would
// yield, substituting bigConst when the distance delta is exactly zero to
// avoid a division by zero while still favoring pure-score improvements.
func deltaImprove(deltaScore, deltaDist float64) float64 {
	if deltaDist == 0.0 {
		return deltaScore * bigConst
	}

	return deltaScore / deltaDist
}

// round1e9 returns x rounded to 1e-9 absolute precision, keeping sums
// stable across platforms without affecting algorithmic correctness.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
