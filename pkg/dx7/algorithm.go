package dx7

import (
	"fmt"
	"strings"
)

// Edge is a modulation path from one operator's output into another's input.
// Operators are numbered 1...6.
type Edge struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

func (e Edge) String() string { return fmt.Sprintf("%d > %d", e.From, e.To) }

// Routing is the operator topology of one algorithm. Carriers are summed to
// the output. Feedback goes from Feedback.From back into Feedback.To, which
// is the same operator for a single operator loop.
type Routing struct {
	Carriers   []int  `json:"carriers" yaml:"carriers"`
	Modulation []Edge `json:"modulation" yaml:"modulation"`
	Feedback   Edge   `json:"feedback" yaml:"feedback"`
}

func mod(from, to int) Edge { return Edge{From: from, To: to} }

func loop(op int) Edge { return Edge{From: op, To: op} }

var routings = [32]Routing{
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 4), mod(6, 5)}, loop(2)},
	{[]int{1, 4}, []Edge{mod(2, 1), mod(3, 2), mod(5, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 4}, []Edge{mod(2, 1), mod(3, 2), mod(5, 4), mod(6, 5)}, mod(4, 6)},
	{[]int{1, 3, 5}, []Edge{mod(2, 1), mod(4, 3), mod(6, 5)}, loop(6)},
	{[]int{1, 3, 5}, []Edge{mod(2, 1), mod(4, 3), mod(6, 5)}, mod(5, 6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 3), mod(6, 5)}, loop(6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 3), mod(6, 5)}, loop(4)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 3), mod(6, 5)}, loop(2)},
	{[]int{1, 4}, []Edge{mod(2, 1), mod(3, 2), mod(5, 4), mod(6, 4)}, loop(3)},
	{[]int{1, 4}, []Edge{mod(2, 1), mod(3, 2), mod(5, 4), mod(6, 4)}, loop(6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 3), mod(6, 3)}, loop(2)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 3), mod(6, 3)}, loop(6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 4), mod(6, 4)}, loop(6)},
	{[]int{1, 3}, []Edge{mod(2, 1), mod(4, 3), mod(5, 4), mod(6, 4)}, loop(2)},
	{[]int{1}, []Edge{mod(2, 1), mod(3, 1), mod(5, 1), mod(4, 3), mod(6, 5)}, loop(6)},
	{[]int{1}, []Edge{mod(2, 1), mod(3, 1), mod(5, 1), mod(4, 3), mod(6, 5)}, loop(2)},
	{[]int{1}, []Edge{mod(2, 1), mod(3, 1), mod(4, 1), mod(5, 4), mod(6, 5)}, loop(3)},
	{[]int{1, 4, 5}, []Edge{mod(2, 1), mod(3, 2), mod(6, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 4}, []Edge{mod(3, 1), mod(3, 2), mod(5, 4), mod(6, 4)}, loop(3)},
	{[]int{1, 2, 4, 5}, []Edge{mod(3, 1), mod(3, 2), mod(6, 4), mod(6, 5)}, loop(3)},
	{[]int{1, 3, 4, 5}, []Edge{mod(2, 1), mod(6, 3), mod(6, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 4, 5}, []Edge{mod(3, 2), mod(6, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 3, 4, 5}, []Edge{mod(6, 3), mod(6, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 3, 4, 5}, []Edge{mod(6, 4), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 4}, []Edge{mod(3, 2), mod(5, 4), mod(6, 4)}, loop(6)},
	{[]int{1, 2, 4}, []Edge{mod(3, 2), mod(5, 4), mod(6, 4)}, loop(3)},
	{[]int{1, 3, 6}, []Edge{mod(2, 1), mod(4, 3), mod(5, 4)}, loop(5)},
	{[]int{1, 2, 3, 5}, []Edge{mod(4, 3), mod(6, 5)}, loop(6)},
	{[]int{1, 2, 3, 6}, []Edge{mod(4, 3), mod(5, 4)}, loop(5)},
	{[]int{1, 2, 3, 4, 5}, []Edge{mod(6, 5)}, loop(6)},
	{[]int{1, 2, 3, 4, 5, 6}, nil, loop(6)},
}

// Routing returns the operator topology of the algorithm.
func (a Algorithm) Routing() Routing {
	return routings[a.Value()-1]
}

// Diagram renders the routing as text: the carriers, one line per modulation
// edge, then the feedback path.
func (a Algorithm) Diagram() string {
	r := a.Routing()
	var b strings.Builder
	fmt.Fprintf(&b, "ALG %d\n", a.Value())

	carriers := make([]string, len(r.Carriers))
	for i, op := range r.Carriers {
		carriers[i] = fmt.Sprint(op)
	}
	fmt.Fprintf(&b, "  out: %s\n", strings.Join(carriers, " + "))
	for _, edge := range r.Modulation {
		fmt.Fprintf(&b, "  %s\n", edge)
	}
	fmt.Fprintf(&b, "  fb: %s", r.Feedback)
	return b.String()
}
