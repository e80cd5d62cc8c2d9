// Package generator builds synthetic Orienteering Problem instances for
// benchmarking the tabu search engine, mirroring the "cemb_n_t_max" instance
// family from the original instance generator: n scored vertices scattered
// uniformly over a bounded square, with the two vertices destined to become
// the fixed start/end pinned at score 0.
package generator

import (
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/opbench/optabu/op"
)

// ErrTooFewVertices mirrors op.ErrTooFewVertices for configs requesting an
// instance too small to be meaningful.
var ErrTooFewVertices = errors.New("generator: n must be >= 3")

// scoreChoices mirrors the Python generator's range(5, 55, 5): 5, 10, ..., 50.
var scoreChoices = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}

// Config describes one instance to generate.
type Config struct {
	// N is the vertex count, including the two zero-score endpoints.
	N int
	// TMax is the travel budget assigned to the generated instance.
	TMax float64
	// MaxXY bounds the coordinate square to [0.1, MaxXY) on both axes.
	MaxXY float64
}

// DefaultConfig mirrors the original generator's fixed instance shape:
// n=300 vertices scattered over a ~200x200 square.
func DefaultConfig() Config {
	return Config{N: 300, TMax: 150, MaxXY: 200.1}
}

// maxSampleAttempts bounds the rejection loop used to keep sampled
// coordinates distinct on each axis; with about MaxXY*10 one-decimal values
// per axis and at most a few hundred vertices requested, collisions resolve
// within a few redraws.
const maxSampleAttempts = 10000

// GenerateInstance builds one Orienteering Problem instance from cfg using
// rng for all randomness: coordinates are drawn uniformly over the
// [0.1, MaxXY) square (rounded to one decimal place, resampled on collision
// to keep vertices distinct) and rounded to one decimal; every vertex but
// the first two is assigned a random score from {5,10,...,50}, and the
// first two (pinned to become the fixed start/end after the loader-style
// swap applied here) are scored 0.
//
// Complexity: O(n^2) dominated by op.New's distance-table build.
func GenerateInstance(cfg Config, rng *rand.Rand) (*op.OP, error) {
	if cfg.N < 3 {
		return nil, ErrTooFewVertices
	}

	coordDist := distuv.Uniform{Min: 0.1, Max: cfg.MaxXY, Src: rng}

	usedX := make(map[float64]bool, cfg.N)
	usedY := make(map[float64]bool, cfg.N)
	xs := make([]float64, cfg.N)
	ys := make([]float64, cfg.N)
	for i := 0; i < cfg.N; i++ {
		xs[i] = sampleDistinct(coordDist, usedX)
		ys[i] = sampleDistinct(coordDist, usedY)
	}

	vertices := make([]op.Vertex, cfg.N)
	for i := 0; i < cfg.N; i++ {
		score := 0
		if i >= 2 {
			score = scoreChoices[rng.Intn(len(scoreChoices))]
		}
		vertices[i] = op.Vertex{Score: score, X: xs[i], Y: ys[i]}
	}

	// Mirror op.Load's endpoint swap: the two zero-score vertices start at
	// positions 0 and 1; move the second one to the end so index 0 and
	// index n-1 are the fixed start and end.
	vertices[1], vertices[cfg.N-1] = vertices[cfg.N-1], vertices[1]

	return op.New(vertices, cfg.TMax)
}

// sampleDistinct draws from d, rounded to one decimal place, until it finds
// a value not already present in used, then records and returns it.
func sampleDistinct(d distuv.Uniform, used map[float64]bool) float64 {
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		v := roundTo1(d.Rand())
		if !used[v] {
			used[v] = true

			return v
		}
	}
	// Collisions this persistent only happen when MaxXY is too small for N;
	// fall back to an unrounded draw so generation still terminates.
	v := d.Rand()
	used[v] = true

	return v
}

func roundTo1(x float64) float64 {
	return float64(int(x*10+0.5)) / 10
}

// GenerateBenchmarkSet builds the original generator's benchmark sweep: six
// n=300 instances with t_max stepping from 50 to 550 in increments of 100.
func GenerateBenchmarkSet(rng *rand.Rand) ([]*op.OP, error) {
	var instances []*op.OP
	for tMax := 50; tMax < 600; tMax += 100 {
		cfg := Config{N: 300, TMax: float64(tMax), MaxXY: 200.1}
		inst, err := GenerateInstance(cfg, rng)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}

	return instances, nil
}
