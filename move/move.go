// Package move defines the closed set of tabu-search move families over a
// solution.Solution: Insertion, Replace, Relocate, TwoOpt, and ThreeOpt.
// Each move precomputes its own delta cost at construction time so that
// candidate generation and local-search arbitration never recompute a full
// path cost just to rank a move.
//
// Design:
//   - Moves are a closed tagged-union-style set of concrete structs behind
//     one interface, not an open plugin system — this keeps Apply and the
//     delta accessors allocation-free and branch-predictable in the search
//     hot loop, the same shape the teacher's tsp package favors for its
//     own move application (plain structs and switches, not interfaces
//     registered at runtime).
//   - Moves never touch evaluate or search; they only know how to mutate a
//     solution.Solution and report their own precomputed deltas and tabu
//     signatures.
package move

import "github.com/opbench/optabu/solution"

// Move is the common contract every move family implements.
type Move interface {
	// Apply mutates sol in place to realize the move.
	Apply(sol *solution.Solution)

	// DeltaScore reports the change in collected score this move causes.
	// Relocate, TwoOpt, and ThreeOpt never change score and report 0.
	DeltaScore() float64

	// DeltaDistance reports the change in total path length this move causes.
	DeltaDistance() float64

	// DeltaRatio reports this move's score/distance improvement ratio: its
	// score delta divided by its distance delta. Only Insertion and Replace define a
	// meaningful ratio; other families report 0.
	DeltaRatio() float64

	// TabuAddKeys returns the signature recorded in the tabu list once
	// this move is applied.
	TabuAddKeys() []string

	// TabuCheckKeys returns the signature checked against the tabu list
	// before this move may be applied.
	TabuCheckKeys() []string

	// String renders a debug representation of the move.
	String() string
}
