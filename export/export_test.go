package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opbench/optabu/execctx"
	"github.com/opbench/optabu/export"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/solution"
)

func testContext(t *testing.T) *execctx.ExecutionContext {
	t.Helper()
	vs := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 5, X: 1, Y: 0},
		{Score: 0, X: 2, Y: 0},
	}
	o, err := op.New(vs, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := execctx.New(o, "baseline.txt", "baseline", zerolog.Nop())
	ctx.AddImprove(solution.CreateTrivialPath(o.N), 0)

	withMiddle := solution.CreateTrivialPath(o.N)
	withMiddle.AddVertexAfter(1, 0)
	ctx.AddImprove(withMiddle, 5*time.Millisecond)

	return ctx
}

func TestWriteLedgerCSVWritesHeaderAndOneRowPerImprove(t *testing.T) {
	ctx := testContext(t)

	var buf bytes.Buffer
	if err := export.WriteLedgerCSV(&buf, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected csv parse error: %v", err)
	}
	if len(records) != 1+len(ctx.Improves) {
		t.Fatalf("expected header plus %d rows, got %d records", len(ctx.Improves), len(records))
	}
	if records[0][0] != "instance" {
		t.Fatalf("expected an instance header column, got %v", records[0])
	}
	if records[1][0] != "baseline.txt" {
		t.Fatalf("expected the instance column to carry the context's instance label, got %v", records[1])
	}
}

func TestWriteImproveScoresCSVOnlyIncludesScoreImprovements(t *testing.T) {
	ctx := testContext(t)

	var buf bytes.Buffer
	if err := export.WriteImproveScoresCSV(&buf, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected csv parse error: %v", err)
	}
	if len(records) != 1+len(ctx.ImprovesScore) {
		t.Fatalf("expected header plus %d rows, got %d records", len(ctx.ImprovesScore), len(records))
	}
}

func TestWriteSummaryCSVWritesExactlyOneDataRow(t *testing.T) {
	ctx := testContext(t)

	var buf bytes.Buffer
	if err := export.WriteSummaryCSV(&buf, ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected csv parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected a header row and exactly one summary row, got %d records", len(records))
	}
	if records[1][0] != "baseline.txt" {
		t.Fatalf("expected the instance column to report baseline.txt, got %v", records[1])
	}
	if records[1][2] != "5" {
		t.Fatalf("expected the summary score column to report 5, got %v", records[1])
	}
}

func TestWriteSummaryCSVLeavesUBAndGapBlankWithoutAnExactSolve(t *testing.T) {
	ctx := testContext(t)

	var buf bytes.Buffer
	if err := export.WriteSummaryCSV(&buf, ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected csv parse error: %v", err)
	}
	if records[0][4] != "ub" || records[0][5] != "gap" {
		t.Fatalf("expected ub and gap header columns, got %v", records[0])
	}
	if records[1][4] != "" || records[1][5] != "" {
		t.Fatalf("expected blank ub/gap columns when ub<=0, got %v", records[1])
	}
}

func TestWriteSummaryCSVComputesGapAgainstUB(t *testing.T) {
	ctx := testContext(t)

	var buf bytes.Buffer
	if err := export.WriteSummaryCSV(&buf, ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected csv parse error: %v", err)
	}
	if records[1][4] != "10.00" {
		t.Fatalf("expected ub column to report 10.00, got %v", records[1])
	}
	// best score is 5, ub is 10: gap = (10-5)/10 = 0.5
	if records[1][5] != "0.5000" {
		t.Fatalf("expected gap column to report 0.5000, got %v", records[1])
	}
}
