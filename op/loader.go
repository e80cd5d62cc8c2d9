package op

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine indicates a line in the instance file did not parse as
// the expected whitespace-separated fields.
var ErrMalformedLine = errors.New("op: malformed instance line")

// Load reads an Orienteering Problem instance from r in the text format:
//
//	t_max first_index
//	x1 y1 score1
//	x2 y2 score2
//	...
//
// first_index is parsed but otherwise ignored by the core. After parsing,
// the raw vertices at positions 1 and n-1 are swapped, so that index 0 and
// index n-1 become the fixed start and end of every feasible path; the
// distance table is computed only after that swap.
//
// Complexity: O(n^2), dominated by the distance-table build in New.
func Load(r io.Reader) (*OP, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("op: reading header: %w", ErrMalformedLine)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, ErrMalformedLine
	}
	tMax, err := strconv.ParseFloat(header[0], 64)
	if err != nil {
		return nil, fmt.Errorf("op: parsing t_max: %w", ErrMalformedLine)
	}

	var vertices []Vertex
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, ErrMalformedLine
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("op: parsing x: %w", ErrMalformedLine)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("op: parsing y: %w", ErrMalformedLine)
		}
		score, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("op: parsing score: %w", ErrMalformedLine)
		}
		vertices = append(vertices, Vertex{Score: score, X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(vertices) >= 2 {
		vertices[1], vertices[len(vertices)-1] = vertices[len(vertices)-1], vertices[1]
	}

	return New(vertices, tMax)
}
