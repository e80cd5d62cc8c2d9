package search_test

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opbench/optabu/execctx"
	"github.com/opbench/optabu/op"
	"github.com/opbench/optabu/search"
)

func silentLogger() zerolog.Logger {
	return zerolog.Nop()
}

// Scenario 1: n=3 triangle, middle vertex worthless — best tour is the
// direct 0->1->2 path at distance 2*sqrt(2), score 0.
func TestScenarioTriangleTrivialPath(t *testing.T) {
	// Spec fixture: V=[(0,0,0),(1,1,0),(2,0,0)] with score 0 at the
	// middle vertex and a tight budget of 10 (ample headroom here; the
	// assertion is about which vertices end up on the path, not the
	// budget itself).
	instanceVertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 0, X: 1, Y: 1},
		{Score: 0, X: 2, Y: 0},
	}
	o, err := op.New(instanceVertices, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := execctx.New(o, "triangle.txt", "scenario1", silentLogger())
	cfg := search.DefaultConfig()
	cfg.MaxTime = 2 * time.Second
	cfg.Target = 0 // score is 0 everywhere in this fixture; exit once built

	ts := search.New(o, ctx, cfg, silentLogger())
	best := ts.Solve()

	verts := best.GetVertices()
	if verts[0] != 0 || verts[len(verts)-1] != o.N-1 {
		t.Fatalf("P2 violated: expected path from 0 to %d, got %v", o.N-1, verts)
	}

	dist := 0.0
	for i := 1; i < len(verts); i++ {
		dist += o.Dist(verts[i-1], verts[i])
	}
	want := 2 * math.Sqrt2
	if math.Abs(dist-want) > 1e-9 {
		t.Fatalf("expected total distance %v, got %v (path %v)", want, dist, verts)
	}
}

// Scenario 2: a tight budget forces excluding a zero-score vertex that
// only costs distance, while still affording a detour to a valuable one.
func TestScenarioExcludesWorthlessVertex(t *testing.T) {
	vertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},   // start
		{Score: 0, X: 0, Y: 10},  // worthless detour: too costly under the budget
		{Score: 10, X: 5, Y: 0},  // valuable, colinear detour: free
		{Score: 0, X: 10, Y: 0},  // end
	}
	o, err := op.New(vertices, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := execctx.New(o, "worthless-vertex.txt", "scenario2", silentLogger())
	cfg := search.DefaultConfig()
	cfg.MaxTime = 2 * time.Second
	cfg.Target = int(^uint(0) >> 1)

	ts := search.New(o, ctx, cfg, silentLogger())
	best := ts.Solve()

	verts := best.GetVertices()
	for _, v := range verts {
		if v == 1 {
			t.Fatalf("expected worthless vertex 1 excluded from best path, got %v", verts)
		}
	}
	total := 0
	for _, v := range verts {
		total += o.V[v].Score
	}
	if total != 10 {
		t.Fatalf("expected total score 10, got %d (path %v)", total, verts)
	}
}

// Scenario 5: deadline handling — a tight max-time budget must still
// return a feasible tour promptly.
func TestDeadlineReturnsFeasibleTourPromptly(t *testing.T) {
	n := 30
	vertices := make([]op.Vertex, n)
	for i := range vertices {
		vertices[i] = op.Vertex{Score: (i % 5) * 10, X: float64(i), Y: float64(i % 3)}
	}
	vertices[0].Score = 0
	vertices[n-1].Score = 0

	o, err := op.New(vertices, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := execctx.New(o, "deadline.txt", "scenario5", silentLogger())
	cfg := search.DefaultConfig()
	cfg.MaxTime = 200 * time.Millisecond
	cfg.Target = int(^uint(0) >> 1)

	ts := search.New(o, ctx, cfg, silentLogger())

	start := time.Now()
	best := ts.Solve()
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("expected engine to return within 2s, took %v", elapsed)
	}
	verts := best.GetVertices()
	if verts[0] != 0 || verts[len(verts)-1] != o.N-1 {
		t.Fatalf("expected a feasible tour from 0 to n-1, got %v", verts)
	}
}

// P4: best_sol.score must never decrease across the engine's own lifetime
// — verified indirectly by running twice with an increasing time budget and
// confirming the final score only improves or ties when given more time.
func TestBestScoreMonotoneAcrossLongerBudget(t *testing.T) {
	n := 15
	vertices := make([]op.Vertex, n)
	for i := range vertices {
		vertices[i] = op.Vertex{Score: (i % 4) * 5, X: float64(i), Y: 0}
	}
	vertices[0].Score = 0
	vertices[n-1].Score = 0

	o, err := op.New(vertices, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfgShort := search.DefaultConfig()
	cfgShort.MaxTime = 20 * time.Millisecond
	cfgShort.Target = int(^uint(0) >> 1)
	ctxShort := execctx.New(o, "monotone.txt", "short", silentLogger())
	shortBest := search.New(o, ctxShort, cfgShort, silentLogger()).Solve()

	cfgLong := search.DefaultConfig()
	cfgLong.MaxTime = 500 * time.Millisecond
	cfgLong.Target = int(^uint(0) >> 1)
	ctxLong := execctx.New(o, "monotone.txt", "long", silentLogger())
	longBest := search.New(o, ctxLong, cfgLong, silentLogger()).Solve()

	evalShort := scoreOf(o, shortBest)
	evalLong := scoreOf(o, longBest)
	if evalLong < evalShort {
		t.Fatalf("P4 violated: longer budget produced a worse score (%d < %d)", evalLong, evalShort)
	}
}

func scoreOf(o *op.OP, sol interface{ GetVertices() []int }) int {
	total := 0
	for _, v := range sol.GetVertices() {
		total += o.V[v].Score
	}

	return total
}

func TestDeterministicGivenSameSeed(t *testing.T) {
	n := 12
	vertices := make([]op.Vertex, n)
	for i := range vertices {
		vertices[i] = op.Vertex{Score: (i % 3) * 5, X: math.Sin(float64(i)) * 10, Y: math.Cos(float64(i)) * 10}
	}
	vertices[0].Score = 0
	vertices[n-1].Score = 0

	o, err := op.New(vertices, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := search.DefaultConfig()
	cfg.MaxTime = 50 * time.Millisecond
	cfg.Seed = 42

	ctx1 := execctx.New(o, "deterministic.txt", "a", silentLogger())
	best1 := search.New(o, ctx1, cfg, silentLogger()).Solve()

	ctx2 := execctx.New(o, "deterministic.txt", "b", silentLogger())
	best2 := search.New(o, ctx2, cfg, silentLogger()).Solve()

	if !equalIntSlices(best1.GetVertices(), best2.GetVertices()) {
		t.Fatalf("expected identical seed to produce identical tours, got %v vs %v",
			best1.GetVertices(), best2.GetVertices())
	}
}

func equalIntSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
