package pricing

import (
	"fmt"
	"math"
)

// Node is one (step, state) point of the recombining lattice. State indexes
// run top-down within a step: state 0 is the highest underlying price, so a
// tree renderer can map Step to x and State to y directly.
type Node struct {
	Step       int     `json:"step"`
	State      int     `json:"state"`
	Underlying float64 `json:"underlying"`
	Value      float64 `json:"value"`
	Delta      float64 `json:"delta"`
	Exercised  bool    `json:"exercised,omitempty"`
}

// Grid is the fully evaluated lattice for one pricing call. It is built and
// returned by Evaluate and never mutated afterwards.
type Grid struct {
	Family LatticeFamily
	Steps  int

	rows          [][]Node
	terminalProbs []float64
}

// Price returns the option value at the root node.
func (g *Grid) Price() float64 { return g.rows[0][0].Value }

// At returns the node at time step i, state j.
func (g *Grid) At(i, j int) Node { return g.rows[i][j] }

// Width returns the number of states at time step i.
func (g *Grid) Width(i int) int { return len(g.rows[i]) }

// Nodes returns every node ordered by (step, state).
func (g *Grid) Nodes() []Node {
	out := make([]Node, 0, len(g.rows)*(len(g.rows)+1)/2)
	for _, row := range g.rows {
		out = append(out, row...)
	}
	return out
}

// TerminalProbabilities returns the risk-neutral probability of ending in
// each terminal state, ordered by state index.
func (g *Grid) TerminalProbabilities() []float64 {
	out := make([]float64, len(g.terminalProbs))
	copy(out, g.terminalProbs)
	return out
}

// Evaluate builds the price lattice for in and runs backward induction.
// The forward pass fills underlying prices over the recombining (step, state)
// index space, the terminal row receives the payoff, and the backward pass
// discounts expected continuation values. American style additionally applies
// max(continuation, intrinsic) at every interior node.
func Evaluate(in MarketInputs) (*Grid, error) {
	lp, err := DeriveParameters(in)
	if err != nil {
		return nil, err
	}

	g := &Grid{Family: in.Family, Steps: in.Steps}
	g.rows = make([][]Node, in.Steps+1)

	branches := 2
	if in.Family == Trinomial {
		branches = 3
	}

	// Forward pass: state j at step i sits i-j net up-moves above the root
	// for the binomial tree, and (i-j) half-spacings for the trinomial tree
	// whose rows are 2i+1 wide with the middle state at j=i.
	for i := 0; i <= in.Steps; i++ {
		width := i*(branches-1) + 1
		row := make([]Node, width)
		for j := 0; j < width; j++ {
			var s float64
			if in.Family == Binomial {
				s = in.Spot * math.Pow(lp.Up, float64(i-j)) * math.Pow(lp.Down, float64(j))
			} else {
				s = in.Spot * math.Pow(lp.Up, float64(i-j))
			}
			if err := checkFinite(s, i, j, "underlying"); err != nil {
				return nil, err
			}
			row[j] = Node{Step: i, State: j, Underlying: s}
		}
		g.rows[i] = row
	}

	// Terminal payoffs.
	last := g.rows[in.Steps]
	for j := range last {
		last[j].Value = in.Intrinsic(last[j].Underlying)
		if err := checkFinite(last[j].Value, in.Steps, j, "payoff"); err != nil {
			return nil, err
		}
	}

	// Backward induction. Successors of (i, j) are (i+1, j..j+branches-1),
	// top state first. The per-node delta is the hedge ratio implied by the
	// extreme successor pair.
	american := in.Style == American
	for i := in.Steps - 1; i >= 0; i-- {
		row, next := g.rows[i], g.rows[i+1]
		for j := range row {
			var cont float64
			if in.Family == Binomial {
				cont = lp.Discount * (lp.PUp*next[j].Value + lp.PDown*next[j+1].Value)
			} else {
				cont = lp.Discount * (lp.PUp*next[j].Value + lp.PMid*next[j+1].Value + lp.PDown*next[j+2].Value)
			}
			if err := checkFinite(cont, i, j, "continuation"); err != nil {
				return nil, err
			}

			row[j].Value = cont
			if american {
				if intrinsic := in.Intrinsic(row[j].Underlying); intrinsic > cont {
					row[j].Value = intrinsic
					row[j].Exercised = true
				}
			}

			hi, lo := next[j], next[j+branches-1]
			if spread := hi.Underlying - lo.Underlying; spread != 0 {
				row[j].Delta = (hi.Value - lo.Value) / spread
			}
		}
	}

	g.terminalProbs = terminalProbabilities(lp, in.Steps, branches)
	return g, nil
}

// terminalProbabilities convolves the branch weights step by step, which
// stays O(N^2) where path enumeration would be exponential.
func terminalProbabilities(lp LatticeParameters, steps, branches int) []float64 {
	cur := []float64{1}
	weights := []float64{lp.PUp, lp.PDown}
	if branches == 3 {
		weights = []float64{lp.PUp, lp.PMid, lp.PDown}
	}
	for i := 0; i < steps; i++ {
		next := make([]float64, len(cur)+branches-1)
		for j, pj := range cur {
			for b, w := range weights {
				next[j+b] += pj * w
			}
		}
		cur = next
	}
	return cur
}

func checkFinite(v float64, i, j int, what string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: non-finite %s at node (%d,%d)", ErrNumericalInstability, what, i, j)
	}
	return nil
}
