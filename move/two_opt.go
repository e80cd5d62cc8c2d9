package move

import (
	"fmt"
	"strconv"

	"github.com/opbench/optabu/solution"
)

// TwoOpt removes two edges and reconnects the path by reversing the
// segment between them. It never changes score, only distance.
type TwoOpt struct {
	V1, V2    int
	deltaDist float64
}

// NewTwoOpt builds a TwoOpt move with its precomputed distance delta.
func NewTwoOpt(v1, v2 int, deltaDist float64) *TwoOpt {
	return &TwoOpt{V1: v1, V2: v2, deltaDist: deltaDist}
}

// Apply implements Move.
func (m *TwoOpt) Apply(sol *solution.Solution) {
	sol.TwoOpt(m.V1, m.V2)
}

// DeltaScore implements Move. TwoOpt never changes score.
func (m *TwoOpt) DeltaScore() float64 { return 0 }

// DeltaDistance implements Move.
func (m *TwoOpt) DeltaDistance() float64 { return m.deltaDist }

// DeltaRatio implements Move. TwoOpt has no score component, so no ratio.
func (m *TwoOpt) DeltaRatio() float64 { return 0 }

// TabuAddKeys implements Move.
func (m *TwoOpt) TabuAddKeys() []string {
	return []string{strconv.Itoa(m.V1), strconv.Itoa(m.V2)}
}

// TabuCheckKeys implements Move.
func (m *TwoOpt) TabuCheckKeys() []string {
	return []string{strconv.Itoa(m.V1), strconv.Itoa(m.V2)}
}

// String implements Move.
func (m *TwoOpt) String() string {
	return fmt.Sprintf("TwoOpt(v1=%d, v2=%d, delta_dist=%.2f)", m.V1, m.V2, m.deltaDist)
}
