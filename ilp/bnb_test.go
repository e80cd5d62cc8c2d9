package ilp_test

import (
	"testing"
	"time"

	"github.com/opbench/optabu/ilp"
	"github.com/opbench/optabu/op"
)

func TestSolveTriangleTakesDirectPath(t *testing.T) {
	vertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 0, X: 1, Y: 0},
		{Score: 0, X: 2, Y: 0},
	}
	o, err := op.New(vertices, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol, err := ilp.Solve(o, ilp.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verts := sol.GetVertices()
	if verts[0] != 0 || verts[len(verts)-1] != 2 {
		t.Fatalf("expected path from 0 to 2, got %v", verts)
	}
}

func TestSolveExcludesWorthlessVertexUnderBudget(t *testing.T) {
	vertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 0, X: 10, Y: 7},
		{Score: 10, X: 10, Y: 0},
		{Score: 10, X: 0, Y: 5},
	}
	o, err := op.New(vertices, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol, err := ilp.Solve(o, ilp.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range sol.GetVertices() {
		if v == 1 {
			t.Fatalf("expected worthless vertex 1 excluded, got %v", sol.GetVertices())
		}
	}
}

func TestSolveUnitSquareCollectsAllInteriorVertices(t *testing.T) {
	vertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 10, X: 0, Y: 1},
		{Score: 10, X: 1, Y: 1},
		{Score: 10, X: 1, Y: 0.5},
		{Score: 0, X: 1, Y: 0},
	}
	o, err := op.New(vertices, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol, err := ilp.Solve(o, ilp.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := 0
	for _, v := range sol.GetVertices() {
		total += o.V[v].Score
	}
	if total != 30 {
		t.Fatalf("expected total score 30, got %d", total)
	}
}

func TestSolveRejectsOversizedInstance(t *testing.T) {
	n := ilp.MaxExactN + 1
	vertices := make([]op.Vertex, n)
	for i := range vertices {
		vertices[i] = op.Vertex{Score: 1, X: float64(i), Y: 0}
	}
	vertices[0].Score = 0
	vertices[n-1].Score = 0

	o, err := op.New(vertices, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ilp.Solve(o, ilp.DefaultOptions()); err != ilp.ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestSolveRespectsBudgetInfeasibility(t *testing.T) {
	// Direct 0->2 costs exactly 1; detouring through vertex 1 costs ~2.236,
	// which the tight budget cannot afford.
	vertices := []op.Vertex{
		{Score: 0, X: 0, Y: 0},
		{Score: 5, X: 0.5, Y: 1},
		{Score: 5, X: 1, Y: 0},
	}
	o, err := op.New(vertices, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sol, err := ilp.Solve(o, ilp.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verts := sol.GetVertices()
	if len(verts) != 2 || verts[0] != 0 || verts[1] != 2 {
		t.Fatalf("expected direct 0->2 path when no budget for detours, got %v", verts)
	}
}

func TestSolveReturnsTimeLimitErrorButStillUsable(t *testing.T) {
	n := ilp.MaxExactN
	vertices := make([]op.Vertex, n)
	for i := range vertices {
		vertices[i] = op.Vertex{Score: (i % 7) * 3, X: float64(i) * 1.7, Y: float64(i%5) * 2.3}
	}
	vertices[0].Score = 0
	vertices[n-1].Score = 0

	o, err := op.New(vertices, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := ilp.Options{MaxNodes: 0, TimeLimit: 1 * time.Nanosecond}
	sol, err := ilp.Solve(o, opts)
	if err == nil {
		t.Skip("search completed before the deadline fired; nothing to assert")
	}
	if err != ilp.ErrTimeLimit {
		t.Fatalf("expected ErrTimeLimit, got %v", err)
	}
	if sol != nil {
		verts := sol.GetVertices()
		if verts[0] != 0 || verts[len(verts)-1] != o.N-1 {
			t.Fatalf("expected a feasible partial incumbent, got %v", verts)
		}
	}
}
