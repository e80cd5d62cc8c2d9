package move

import (
	"fmt"
	"strconv"

	"github.com/opbench/optabu/solution"
)

// Replace removes OutCand from the path and inserts InCand right after
// InsertPos — the sole move family that can trade score for distance.
type Replace struct {
	InCand     int
	InsertPos  int
	OutCand    int
	deltaScore float64
	deltaDist  float64
	deltaRatio float64
}

// NewReplace builds a Replace move with precomputed deltas.
func NewReplace(inCand, insertPos, outCand int, deltaScore, deltaDist, deltaRatio float64) *Replace {
	return &Replace{
		InCand:     inCand,
		InsertPos:  insertPos,
		OutCand:    outCand,
		deltaScore: deltaScore,
		deltaDist:  deltaDist,
		deltaRatio: deltaRatio,
	}
}

// Apply implements Move.
func (m *Replace) Apply(sol *solution.Solution) {
	sol.AddAndRemoveVertex(m.InCand, m.InsertPos, m.OutCand)
}

// DeltaScore implements Move.
func (m *Replace) DeltaScore() float64 { return m.deltaScore }

// DeltaDistance implements Move.
func (m *Replace) DeltaDistance() float64 { return m.deltaDist }

// DeltaRatio implements Move.
func (m *Replace) DeltaRatio() float64 { return m.deltaRatio }

// TabuAddKeys implements Move.
func (m *Replace) TabuAddKeys() []string {
	return []string{strconv.Itoa(m.OutCand), strconv.Itoa(m.InCand)}
}

// TabuCheckKeys implements Move.
func (m *Replace) TabuCheckKeys() []string {
	return []string{strconv.Itoa(m.OutCand), strconv.Itoa(m.InCand)}
}

// String implements Move.
func (m *Replace) String() string {
	return fmt.Sprintf("Replace(in_cand=%d, insert_pos=%d, out_cand=%d, delta_score=%.2f, delta_dist=%.2f, delta_ratio=%.2f)",
		m.InCand, m.InsertPos, m.OutCand, m.deltaScore, m.deltaDist, m.deltaRatio)
}
