package op_test

import (
	"strings"
	"testing"

	"github.com/opbench/optabu/op"
)

func TestLoadSwapsEndpoints(t *testing.T) {
	// Four vertices: raw index 1 (score 10) and raw index 3 (score 40, the
	// last one) must be swapped so that index 0 and index 3 are the fixed
	// start/end (scores 0 and 0 in this fixture would be too ambiguous to
	// check the swap, so this fixture gives every vertex a distinct score).
	input := "100 0\n" +
		"0 0 1\n" +
		"1 0 10\n" +
		"2 0 20\n" +
		"3 0 40\n"

	o, err := op.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.N != 4 {
		t.Fatalf("expected n=4, got %d", o.N)
	}
	if o.V[1].Score != 40 {
		t.Fatalf("expected raw last vertex swapped into position 1, got score %d", o.V[1].Score)
	}
	if o.V[3].Score != 10 {
		t.Fatalf("expected raw position-1 vertex swapped into last position, got score %d", o.V[3].Score)
	}
	if o.TMax != 100 {
		t.Fatalf("expected t_max=100, got %v", o.TMax)
	}
}

func TestLoadRejectsMalformedHeader(t *testing.T) {
	_, err := op.Load(strings.NewReader("not-a-header\n"))
	if err == nil {
		t.Fatal("expected error for malformed header")
	}
}

func TestLoadRejectsMalformedVertexLine(t *testing.T) {
	input := "100 0\n0 0 1\nbad line here\n"
	_, err := op.Load(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed vertex line")
	}
}
