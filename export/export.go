// Package export writes an execctx.ExecutionContext's ledger to CSV, the
// durable record of a search run consumed by external analysis tooling.
//
// Design:
//   - encoding/csv only — no ecosystem CSV writer appears anywhere in the
//     retrieved corpus, so this is a standard-library choice, not a dropped
//     dependency.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/opbench/optabu/execctx"
)

// WriteLedgerCSV writes every recorded improvement in ctx.Improves to w.
func WriteLedgerCSV(w io.Writer, ctx *execctx.ExecutionContext) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"instance", "config", "score", "dist", "time_sec"}); err != nil {
		return err
	}
	for _, row := range ctx.Improves {
		record := []string{
			row.Instance,
			row.Config,
			strconv.Itoa(row.Score),
			strconv.FormatFloat(row.Dist, 'f', 2, 64),
			strconv.FormatFloat(row.Elapsed.Seconds(), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return cw.Error()
}

// WriteImproveScoresCSV writes only the improvements that strictly raised
// the best-so-far score, the subset execctx.AddImprove flags as
// score-improving.
func WriteImproveScoresCSV(w io.Writer, ctx *execctx.ExecutionContext) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"instance", "config", "score", "dist", "time_sec"}); err != nil {
		return err
	}
	for _, row := range ctx.ImprovesScore {
		record := []string{
			row.Instance,
			row.Config,
			strconv.Itoa(row.Score),
			strconv.FormatFloat(row.Dist, 'f', 2, 64),
			strconv.FormatFloat(row.Elapsed.Seconds(), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return cw.Error()
}

// WriteSummaryCSV writes a single-row summary of the run's best solution,
// against an optimality gap computed from ub, the best score an exact solve
// certified for this instance. ub <= 0 means no exact solve was run for
// this instance; the UB and gap columns are left blank, mirroring the
// Python exporter's "" for an unset UB.
func WriteSummaryCSV(w io.Writer, ctx *execctx.ExecutionContext, ub float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"instance", "config", "score", "dist", "ub", "gap", "time_sec"}); err != nil {
		return err
	}

	ubField, gapField := "", ""
	if ub > 0 {
		ubField = strconv.FormatFloat(ub, 'f', 2, 64)
		gap := (ub - float64(ctx.BestScore)) / ub
		gapField = strconv.FormatFloat(gap, 'f', 4, 64)
	}

	record := []string{
		ctx.Instance,
		ctx.ConfigName,
		strconv.Itoa(ctx.BestScore),
		strconv.FormatFloat(ctx.BestDist, 'f', 2, 64),
		ubField,
		gapField,
		strconv.FormatFloat(ctx.BestTime.Seconds(), 'f', 2, 64),
	}
	if err := cw.Write(record); err != nil {
		return err
	}

	return cw.Error()
}

// Solution exposes the (points, arcs, scores) shape a future plotting layer
// would consume, without rendering anything itself — figure export is out
// of scope for this module (see DESIGN.md).
type Solution struct {
	Points [][2]float64
	Arcs   [][2]int
	Scores []int
}
