package move

import (
	"fmt"
	"strconv"

	"github.com/opbench/optabu/solution"
)

// ThreeOpt applies two segment reversals (or a reversal-plus-segment-swap,
// when SegmentSwap is set) across three cut points. It never changes
// score, only distance.
type ThreeOpt struct {
	V1, V2, V3  int
	SegmentSwap bool
	deltaDist   float64
}

// NewThreeOpt builds a ThreeOpt move with its precomputed distance delta.
func NewThreeOpt(v1, v2, v3 int, segmentSwap bool, deltaDist float64) *ThreeOpt {
	return &ThreeOpt{V1: v1, V2: v2, V3: v3, SegmentSwap: segmentSwap, deltaDist: deltaDist}
}

// Apply implements Move.
func (m *ThreeOpt) Apply(sol *solution.Solution) {
	if !m.SegmentSwap {
		sol.ThreeOpt(m.V1, m.V2, m.V3)
	} else {
		sol.ThreeOptWithSegmentSwap(m.V1, m.V2, m.V3)
	}
}

// DeltaScore implements Move. ThreeOpt never changes score.
func (m *ThreeOpt) DeltaScore() float64 { return 0 }

// DeltaDistance implements Move.
func (m *ThreeOpt) DeltaDistance() float64 { return m.deltaDist }

// DeltaRatio implements Move. ThreeOpt has no score component, so no ratio.
func (m *ThreeOpt) DeltaRatio() float64 { return 0 }

// TabuAddKeys implements Move.
func (m *ThreeOpt) TabuAddKeys() []string {
	return []string{strconv.Itoa(m.V1), strconv.Itoa(m.V2), strconv.Itoa(m.V3)}
}

// TabuCheckKeys implements Move.
func (m *ThreeOpt) TabuCheckKeys() []string {
	return []string{strconv.Itoa(m.V1), strconv.Itoa(m.V2), strconv.Itoa(m.V3)}
}

// String implements Move.
func (m *ThreeOpt) String() string {
	return fmt.Sprintf("ThreeOpt(v1=%d, v2=%d, v3=%d, segment_swap=%v, delta_dist=%.2f)",
		m.V1, m.V2, m.V3, m.SegmentSwap, m.deltaDist)
}
