package move

import (
	"fmt"
	"strconv"

	"github.com/opbench/optabu/solution"
)

// Insertion inserts an unvisited candidate vertex right after InsertPos.
type Insertion struct {
	Cand       int
	InsertPos  int
	deltaScore float64
	deltaDist  float64
	deltaRatio float64
}

// NewInsertion builds an Insertion move with precomputed deltas.
func NewInsertion(cand, insertPos int, deltaScore, deltaDist, deltaRatio float64) *Insertion {
	return &Insertion{
		Cand:       cand,
		InsertPos:  insertPos,
		deltaScore: deltaScore,
		deltaDist:  deltaDist,
		deltaRatio: deltaRatio,
	}
}

// Apply implements Move.
func (m *Insertion) Apply(sol *solution.Solution) {
	sol.AddVertexAfter(m.Cand, m.InsertPos)
}

// DeltaScore implements Move.
func (m *Insertion) DeltaScore() float64 { return m.deltaScore }

// DeltaDistance implements Move.
func (m *Insertion) DeltaDistance() float64 { return m.deltaDist }

// DeltaRatio implements Move.
func (m *Insertion) DeltaRatio() float64 { return m.deltaRatio }

// TabuAddKeys implements Move.
func (m *Insertion) TabuAddKeys() []string {
	return []string{strconv.Itoa(m.Cand)}
}

// TabuCheckKeys implements Move.
func (m *Insertion) TabuCheckKeys() []string {
	return []string{strconv.Itoa(m.Cand)}
}

// String implements Move.
func (m *Insertion) String() string {
	return fmt.Sprintf("Insertion(cand=%d, insert_pos=%d, delta_score=%v, delta_dist=%.2f, delta_ratio=%.2f)",
		m.Cand, m.InsertPos, m.deltaScore, m.deltaDist, m.deltaRatio)
}
