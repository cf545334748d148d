package dx7

import (
	"slices"
	"strings"
	"testing"
)

// reaches reports whether modulation leads from op down to target.
func reaches(edges []Edge, op, target int) bool {
	if op == target {
		return true
	}
	for _, e := range edges {
		if e.From == op && reaches(edges, e.To, target) {
			return true
		}
	}
	return false
}

func TestAlgorithmRoutings(t *testing.T) {
	for v := 1; v <= 32; v++ {
		alg, err := NewAlgorithm(v)
		if err != nil {
			t.Fatal(err)
		}
		r := alg.Routing()

		if n := len(r.Carriers); n < 1 || n > OperatorCount {
			t.Errorf("ALG %d: %d carriers, want 1...6", v, n)
		}

		for op := 1; op <= OperatorCount; op++ {
			carrier := slices.Contains(r.Carriers, op)
			modulates := slices.ContainsFunc(r.Modulation, func(e Edge) bool { return e.From == op })
			if carrier == modulates {
				t.Errorf("ALG %d: OP%d carrier=%t modulates=%t, want exactly one", v, op, carrier, modulates)
			}
		}

		for _, e := range r.Modulation {
			if e.From <= e.To {
				t.Errorf("ALG %d: edge %s does not point to a lower operator", v, e)
			}
		}

		// The feedback path must close exactly one loop through the modulation graph.
		if !reaches(r.Modulation, r.Feedback.To, r.Feedback.From) {
			t.Errorf("ALG %d: feedback %s does not close a loop", v, r.Feedback)
		}
	}
}

func TestAlgorithmRoutingKnown(t *testing.T) {
	tests := []struct {
		alg      int
		carriers []int
		feedback Edge
	}{
		{1, []int{1, 3}, Edge{6, 6}},
		{4, []int{1, 4}, Edge{4, 6}},
		{5, []int{1, 3, 5}, Edge{6, 6}},
		{6, []int{1, 3, 5}, Edge{5, 6}},
		{16, []int{1}, Edge{6, 6}},
		{32, []int{1, 2, 3, 4, 5, 6}, Edge{6, 6}},
	}

	for _, tt := range tests {
		alg, err := NewAlgorithm(tt.alg)
		if err != nil {
			t.Fatal(err)
		}
		r := alg.Routing()
		if !slices.Equal(r.Carriers, tt.carriers) {
			t.Errorf("ALG %d Carriers = %v, want %v", tt.alg, r.Carriers, tt.carriers)
		}
		if r.Feedback != tt.feedback {
			t.Errorf("ALG %d Feedback = %v, want %v", tt.alg, r.Feedback, tt.feedback)
		}
	}
}

func TestAlgorithmDiagram(t *testing.T) {
	alg, err := NewAlgorithm(5)
	if err != nil {
		t.Fatal(err)
	}
	want := "ALG 5\n  out: 1 + 3 + 5\n  2 > 1\n  4 > 3\n  6 > 5\n  fb: 6 > 6"
	if got := alg.Diagram(); got != want {
		t.Errorf("Diagram() = %q, want %q", got, want)
	}

	if got := DefaultAlgorithm().Diagram(); !strings.HasPrefix(got, "ALG 1\n") {
		t.Errorf("DefaultAlgorithm().Diagram() = %q", got)
	}
}
