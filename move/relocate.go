package move

import (
	"fmt"
	"strconv"

	"github.com/opbench/optabu/solution"
)

// Relocate moves a vertex already on the path to sit right after RelPos.
// It never changes score, only distance.
type Relocate struct {
	Cand      int
	RelPos    int
	deltaDist float64
}

// NewRelocate builds a Relocate move with its precomputed distance delta.
func NewRelocate(cand, relPos int, deltaDist float64) *Relocate {
	return &Relocate{Cand: cand, RelPos: relPos, deltaDist: deltaDist}
}

// Apply implements Move.
func (m *Relocate) Apply(sol *solution.Solution) {
	sol.RelocateVertex(m.Cand, m.RelPos)
}

// DeltaScore implements Move. Relocate never changes score.
func (m *Relocate) DeltaScore() float64 { return 0 }

// DeltaDistance implements Move.
func (m *Relocate) DeltaDistance() float64 { return m.deltaDist }

// DeltaRatio implements Move. Relocate has no score component, so no ratio.
func (m *Relocate) DeltaRatio() float64 { return 0 }

// TabuAddKeys implements Move.
func (m *Relocate) TabuAddKeys() []string {
	return []string{strconv.Itoa(m.Cand)}
}

// TabuCheckKeys implements Move.
func (m *Relocate) TabuCheckKeys() []string {
	return []string{strconv.Itoa(m.Cand)}
}

// String implements Move.
func (m *Relocate) String() string {
	return fmt.Sprintf("Relocate(cand=%d, rel_pos=%d, delta_dist=%.2f)", m.Cand, m.RelPos, m.deltaDist)
}
