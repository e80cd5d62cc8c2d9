// Package op models the Orienteering Problem instance: a fixed set of
// scored vertices, a precomputed Euclidean distance table, and a travel
// budget. It has no notion of a tour or a search — those live in solution
// and search respectively.
package op

import (
	"errors"
	"math"
)

// ErrTooFewVertices indicates an instance with fewer than 3 vertices
// (a path needs a start, an end, and somewhere in between to be interesting).
var ErrTooFewVertices = errors.New("op: instance must have at least 3 vertices")

// ErrNegativeScore indicates a vertex with a negative score.
var ErrNegativeScore = errors.New("op: vertex score must be >= 0")

// ErrNonPositiveBudget indicates a non-positive travel budget.
var ErrNonPositiveBudget = errors.New("op: t_max must be > 0")

// Vertex is a single scored point in the plane.
type Vertex struct {
	Score int
	X, Y  float64
}

// OP is an Orienteering Problem instance: n scored vertices, a precomputed
// pairwise Euclidean distance table, and a travel budget TMax. Vertex 0
// and vertex N-1 are the fixed start and end of every feasible path.
type OP struct {
	N    int
	V    []Vertex
	TMax float64

	dist *distTable
}

// New builds an OP from vertices already in their final index order (vertex
// 0 is the start, vertex N-1 is the end). It validates the vertex count,
// scores, and budget, then precomputes the Euclidean distance table.
//
// Complexity: O(n^2) time and memory for the distance table.
func New(vertices []Vertex, tMax float64) (*OP, error) {
	if len(vertices) < 3 {
		return nil, ErrTooFewVertices
	}
	if tMax <= 0 {
		return nil, ErrNonPositiveBudget
	}
	for _, v := range vertices {
		if v.Score < 0 {
			return nil, ErrNegativeScore
		}
	}

	n := len(vertices)
	dist := newDistTable(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist.set(i, j, euclideanDist(vertices[i], vertices[j]))
		}
	}

	return &OP{N: n, V: vertices, TMax: tMax, dist: dist}, nil
}

// euclideanDist computes the straight-line distance between two vertices.
func euclideanDist(v1, v2 Vertex) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y

	return math.Sqrt(dx*dx + dy*dy)
}

// Dist returns the precomputed distance between vertices i and j.
// Complexity: O(1).
func (o *OP) Dist(i, j int) float64 {
	return o.dist.at(i, j)
}

// distTable is a packed symmetric Euclidean distance table: Dist(i,j) ==
// Dist(j,i) and Dist(i,i) == 0 always hold for a set of points in the
// plane, so only the strict upper triangle is ever stored or computed —
// roughly half the memory and half the sqrt calls a full n×n buffer would
// cost to build and hold for the instance sizes this engine targets.
type distTable struct {
	n    int
	data []float64 // packed upper triangle, i<j entries only
}

// newDistTable allocates a packed table for n vertices.
func newDistTable(n int) *distTable {
	return &distTable{n: n, data: make([]float64, n*(n-1)/2)}
}

// set records the distance between i and j (i != j); order doesn't matter.
func (d *distTable) set(i, j int, v float64) {
	if i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	d.data[packedIndex(d.n, i, j)] = v
}

// at returns the distance between i and j, 0 when i == j.
func (d *distTable) at(i, j int) float64 {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}

	return d.data[packedIndex(d.n, i, j)]
}

// packedIndex maps (i,j), i<j, to its offset in the packed upper triangle.
func packedIndex(n, i, j int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}
