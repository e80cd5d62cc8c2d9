// Package solution represents a partial path over an Orienteering Problem
// instance as a doubly-linked index structure (next/prev arrays), and
// provides the small set of primitives that moves compose from: insertion,
// removal, and relocation in O(1), and 2-opt and 3-opt segment reversal in
// time linear in the length of the reversed segments (those two are not O(1)).
//
// Design:
//   - No logging, no panics on well-formed input — callers are expected to
//     respect the contracts documented on each method.
//   - Vertex 0 is always the fixed start and has no predecessor; vertex
//     n-1 is always the fixed end and has no successor. Every other vertex
//     is either linked into the path or absent from it entirely (prev==next==none).
package solution

import (
	"strconv"
	"strings"
)

// none is the sentinel stored in next/prev for "no link" — the Go
// equivalent of Python's None in the original next/prev lists.
const none = -1

// Solution is a doubly-linked partial path over vertices [0..n).
type Solution struct {
	n    int
	next []int
	prev []int
}

// New allocates an empty Solution over n vertices, with no vertices linked.
//
// Complexity: O(n).
func New(n int) *Solution {
	next := make([]int, n)
	prev := make([]int, n)
	for i := range next {
		next[i] = none
		prev[i] = none
	}

	return &Solution{n: n, next: next, prev: prev}
}

// CreateTrivialPath builds the initial path start -> end, with every other
// vertex left unvisited.
//
// Complexity: O(n).
func CreateTrivialPath(n int) *Solution {
	sol := New(n)
	sol.next[0] = n - 1
	sol.prev[n-1] = 0

	return sol
}

// Copy returns an independent deep copy of sol.
//
// Complexity: O(n).
func Copy(sol *Solution) *Solution {
	next := make([]int, len(sol.next))
	prev := make([]int, len(sol.prev))
	copy(next, sol.next)
	copy(prev, sol.prev)

	return &Solution{n: sol.n, next: next, prev: prev}
}

// N returns the number of vertices in the underlying instance.
func (s *Solution) N() int {
	return s.n
}

// Next returns the vertex following v in the path, or none if v has no
// successor (v is the end, or v is not in the path).
func (s *Solution) Next(v int) int {
	return s.next[v]
}

// Prev returns the vertex preceding v in the path, or none if v has no
// predecessor (v is the start, or v is not in the path).
func (s *Solution) Prev(v int) int {
	return s.prev[v]
}

// GetVertices walks the path from the start (vertex 0) and returns the
// visited vertices in order.
//
// Complexity: O(path length).
func (s *Solution) GetVertices() []int {
	var res []int
	for cur := 0; cur != none; cur = s.next[cur] {
		res = append(res, cur)
	}

	return res
}

// GetVerticesReverse walks the path backward from the end (vertex n-1) and
// returns the visited vertices in forward order.
//
// Complexity: O(path length).
func (s *Solution) GetVerticesReverse() []int {
	var res []int
	for cur := s.n - 1; cur != none; cur = s.prev[cur] {
		res = append(res, cur)
	}

	// res was collected backward; reverse it in place.
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}

	return res
}

// GetRemainingVertices returns the vertices of [0..n) not currently on the
// path, in ascending order.
//
// Complexity: O(n).
func (s *Solution) GetRemainingVertices() []int {
	onPath := make([]bool, s.n)
	for _, v := range s.GetVertices() {
		onPath[v] = true
	}

	var res []int
	for v := 0; v < s.n; v++ {
		if !onPath[v] {
			res = append(res, v)
		}
	}

	return res
}

// AreAllVerticesInPath reports whether every vertex of the instance is on
// the path.
//
// Complexity: O(path length).
func (s *Solution) AreAllVerticesInPath() bool {
	return len(s.GetVertices()) == s.n
}

// AddVertexAfter inserts the unvisited vertex x immediately after v1 on the
// path.
//
// Contract: x is not currently on the path; v1 is on the path and has a
// successor (v1 != end).
//
// Complexity: O(1).
func (s *Solution) AddVertexAfter(x, v1 int) {
	v2 := s.next[v1]

	s.next[v1] = x
	s.prev[x] = v1

	s.prev[v2] = x
	s.next[x] = v2
}

// RemoveVertex removes v from the path, reconnecting its neighbors.
//
// Contract: v is on the path and is not the start or end.
//
// Complexity: O(1).
func (s *Solution) RemoveVertex(v int) {
	p := s.prev[v]
	nx := s.next[v]

	s.next[p] = nx
	s.prev[nx] = p

	s.prev[v] = none
	s.next[v] = none
}

// AddAndRemoveVertex removes outV from the path and inserts inV right after
// insertPos, in that order — the composite primitive behind the Replace move.
//
// Complexity: O(1).
func (s *Solution) AddAndRemoveVertex(inV, insertPos, outV int) {
	s.RemoveVertex(outV)
	s.AddVertexAfter(inV, insertPos)
}

// RelocateVertex moves x (already on the path) to sit immediately after
// relPos, splicing it out of its current position first.
//
// Contract: x and relPos are both on the path and distinct; relPos is not
// adjacent to x in a way that would make the splice a no-op incorrectly
// (callers are expected to have checked this via the move's own validity
// rules before calling).
//
// Complexity: O(1).
func (s *Solution) RelocateVertex(x, relPos int) {
	prevOfX := s.prev[x]
	nextOfX := s.next[x]
	nextOfRelPos := s.next[relPos]

	s.next[prevOfX] = nextOfX
	s.prev[nextOfX] = prevOfX

	s.next[relPos] = x
	s.prev[nextOfRelPos] = x

	s.next[x] = nextOfRelPos
	s.prev[x] = relPos
}

// TwoOpt removes edges (v1, next[v1]) and (v2, next[v2]) and reconnects the
// path by reversing the segment strictly between them.
//
// Contract: v1 and v2 are non-adjacent; v2 is not the last vertex on the
// path (so next[v2] exists).
//
// Complexity: O(segment length).
func (s *Solution) TwoOpt(v1, v2 int) {
	s.reverseInternalSegment(s.next[v1], v2)
}

// ThreeOpt applies two independent segment reversals: between next[v1] and
// v2, and between the (pre-reversal) next[v2] and v3.
//
// Complexity: O(segment lengths).
func (s *Solution) ThreeOpt(v1, v2, v3 int) {
	nextV2 := s.next[v2]
	s.reverseInternalSegment(s.next[v1], v2)
	s.reverseInternalSegment(nextV2, v3)
}

// ThreeOptWithSegmentSwap applies ThreeOpt and then swaps the two segments
// it produced, trading reversal for relocation of whole blocks.
//
// Complexity: O(segment lengths).
func (s *Solution) ThreeOptWithSegmentSwap(v1, v2, v3 int) {
	nextV1 := s.next[v1]
	nextV2 := s.next[v2]

	s.ThreeOpt(v1, v2, v3)

	s.swapAdjacentSegments(v2, nextV1, v3, nextV2)
}

// reverseInternalSegment reverses the path segment [start..end] inclusive.
//
// Contract: start is not the first vertex of the path (prev[start] exists);
// end is not the last vertex of the path (next[end] exists).
//
// Complexity: O(end-start segment length).
func (s *Solution) reverseInternalSegment(start, end int) {
	beforeStart := s.prev[start]
	afterEnd := s.next[end]

	prev := afterEnd
	cur := start
	for cur != afterEnd {
		nxt := s.next[cur]
		s.next[cur] = prev
		s.prev[prev] = cur
		prev = cur
		cur = nxt
	}

	s.next[beforeStart] = end
	s.prev[end] = beforeStart

	s.next[start] = afterEnd
	s.prev[afterEnd] = start
}

// swapAdjacentSegments swaps the order of two adjacent segments S1=[v1..v2]
// and S2=[v3..v4], reconnecting S2 before S1.
//
// Complexity: O(1) — only the four boundary links are rewritten.
func (s *Solution) swapAdjacentSegments(v1, v2, v3, v4 int) {
	prevV1 := s.prev[v1]
	nextV4 := s.next[v4]

	if prevV1 != none {
		s.next[prevV1] = v3
	}
	s.prev[v3] = prevV1

	s.next[v4] = v1
	s.prev[v1] = v4

	s.next[v2] = nextV4
	if nextV4 != none {
		s.prev[nextV4] = v2
	}
}

// String implements fmt.Stringer for debug output.
func (s *Solution) String() string {
	parts := make([]string, len(s.next))
	for i, v := range s.next {
		if v == none {
			parts[i] = "None"
		} else {
			parts[i] = strconv.Itoa(v)
		}
	}

	return "Solution(n=" + strconv.Itoa(s.n) + ", next=[" + strings.Join(parts, ", ") + "])"
}
