package solution_test

import (
	"reflect"
	"testing"

	"github.com/opbench/optabu/solution"
)

// linksConsistent checks P1: next[v]=w iff prev[w]=v, over every vertex.
func linksConsistent(t *testing.T, s *solution.Solution, n int) {
	t.Helper()
	for v := 0; v < n; v++ {
		w := s.Next(v)
		if w == -1 {
			continue
		}
		if s.Prev(w) != v {
			t.Fatalf("P1 violated: next[%d]=%d but prev[%d]=%d", v, w, w, s.Prev(w))
		}
	}
}

func TestTrivialPathIsConsistentAndSimple(t *testing.T) {
	n := 5
	s := solution.CreateTrivialPath(n)
	linksConsistent(t, s, n)

	verts := s.GetVertices()
	if !reflect.DeepEqual(verts, []int{0, n - 1}) {
		t.Fatalf("expected trivial path [0 %d], got %v", n-1, verts)
	}
}

func TestAddVertexAfterThenRemoveIsIdentity(t *testing.T) {
	n := 5
	s := solution.CreateTrivialPath(n)
	before := solution.Copy(s)

	s.AddVertexAfter(2, 0)
	linksConsistent(t, s, n)
	s.RemoveVertex(2)
	linksConsistent(t, s, n)

	if !reflect.DeepEqual(before.GetVertices(), s.GetVertices()) {
		t.Fatalf("P7 violated: add-then-remove is not identity, got %v want %v",
			s.GetVertices(), before.GetVertices())
	}
}

func TestTwoOptTwiceIsIdentity(t *testing.T) {
	n := 6
	s := solution.CreateTrivialPath(n)
	s.AddVertexAfter(1, 0)
	s.AddVertexAfter(2, 1)
	s.AddVertexAfter(3, 2)
	s.AddVertexAfter(4, 3)
	linksConsistent(t, s, n)

	before := s.GetVertices()

	s.TwoOpt(0, 3)
	linksConsistent(t, s, n)
	// The first reversal leaves 0 -> 3 -> 2 -> 1 -> 4; reversing that same
	// segment again means ending it at vertex 1, the old next[0].
	s.TwoOpt(0, 1)
	linksConsistent(t, s, n)

	after := s.GetVertices()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("P7 violated: two_opt applied twice is not identity, got %v want %v", after, before)
	}
}

func TestGetVerticesReachesEnd(t *testing.T) {
	n := 4
	s := solution.CreateTrivialPath(n)
	s.AddVertexAfter(1, 0)
	s.AddVertexAfter(2, 1)

	verts := s.GetVertices()
	if verts[0] != 0 {
		t.Fatalf("P2 violated: path does not start at 0, got %v", verts)
	}
	if verts[len(verts)-1] != n-1 {
		t.Fatalf("P2 violated: path does not reach n-1, got %v", verts)
	}

	seen := make(map[int]bool)
	for _, v := range verts {
		if seen[v] {
			t.Fatalf("P2 violated: path is not simple, repeats vertex %d in %v", v, verts)
		}
		seen[v] = true
	}
}

func TestGetVerticesReverseMatchesForwardOrder(t *testing.T) {
	n := 5
	s := solution.CreateTrivialPath(n)
	s.AddVertexAfter(1, 0)
	s.AddVertexAfter(2, 1)

	fwd := s.GetVertices()
	rev := s.GetVerticesReverse()
	if !reflect.DeepEqual(fwd, rev) {
		t.Fatalf("forward and reverse traversal disagree: %v vs %v", fwd, rev)
	}
}

func TestGetRemainingVerticesComplementsPath(t *testing.T) {
	n := 5
	s := solution.CreateTrivialPath(n)
	s.AddVertexAfter(1, 0)

	remaining := s.GetRemainingVertices()
	if !reflect.DeepEqual(remaining, []int{2, 3}) {
		t.Fatalf("expected remaining [2 3], got %v", remaining)
	}
}

func TestAreAllVerticesInPath(t *testing.T) {
	n := 3
	s := solution.CreateTrivialPath(n)
	if s.AreAllVerticesInPath() {
		t.Fatal("expected false before inserting the middle vertex")
	}
	s.AddVertexAfter(1, 0)
	if !s.AreAllVerticesInPath() {
		t.Fatal("expected true after inserting the middle vertex")
	}
}

func TestRelocateVertexPreservesLinkConsistency(t *testing.T) {
	n := 6
	s := solution.CreateTrivialPath(n)
	s.AddVertexAfter(1, 0)
	s.AddVertexAfter(2, 1)
	s.AddVertexAfter(3, 2)
	s.AddVertexAfter(4, 3)

	s.RelocateVertex(2, 4)
	linksConsistent(t, s, n)

	verts := s.GetVertices()
	if verts[0] != 0 || verts[len(verts)-1] != n-1 {
		t.Fatalf("relocate broke path endpoints: %v", verts)
	}
}

func TestThreeOptWithSegmentSwapPreservesLinkConsistency(t *testing.T) {
	n := 8
	s := solution.CreateTrivialPath(n)
	for i := 1; i < n-1; i++ {
		s.AddVertexAfter(i, i-1)
	}
	linksConsistent(t, s, n)

	s.ThreeOptWithSegmentSwap(0, 3, 6)
	linksConsistent(t, s, n)

	verts := s.GetVertices()
	if len(verts) != n {
		t.Fatalf("three-opt-with-swap dropped vertices: %v", verts)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	n := 5
	s := solution.CreateTrivialPath(n)
	c := solution.Copy(s)

	s.AddVertexAfter(1, 0)
	if reflect.DeepEqual(s.GetVertices(), c.GetVertices()) {
		t.Fatal("expected copy to be independent of mutations to the original")
	}
}
