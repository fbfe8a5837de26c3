package solver

import "math"

// Node accumulates regrets and strategy sums for one infoset. Values
// are kept in slices sized to the action count; regrets may go
// negative, but only positive regret feeds the matched policy.
type Node struct {
	Regrets     []float64
	StrategySum []float64
}

func newNode(numActions int) *Node {
	return &Node{
		Regrets:     make([]float64, numActions),
		StrategySum: make([]float64, numActions),
	}
}

// strategy derives the current policy. Regret matching normalizes the
// positive regrets, falling back to uniform when none are positive.
// The exponential variant (ECFR) replaces matching with a softmax
// over regrets, stabilized by subtracting the maximum.
func (n *Node) strategy(useECFR bool) []float64 {
	strat := make([]float64, len(n.Regrets))
	sum := 0.0

	if useECFR {
		maxRegret := math.Inf(-1)
		for _, r := range n.Regrets {
			maxRegret = math.Max(maxRegret, r)
		}
		for i, r := range n.Regrets {
			strat[i] = math.Exp(r - maxRegret)
			sum += strat[i]
		}
	} else {
		for i, r := range n.Regrets {
			if r > 0 {
				strat[i] = r
				sum += r
			}
		}
	}

	if sum <= 0 {
		uniform := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = uniform
		}
		return strat
	}
	for i := range strat {
		strat[i] /= sum
	}
	return strat
}

// applyDiscount applies the DCFR schedule for iteration t: positive
// regrets scale by t^α/(t^α+1), negative by t^β/(t^β+1), and the
// strategy sum by (t/(t+1))^γ.
func (n *Node) applyDiscount(t float64, alpha, beta, gamma float64) {
	posWeight := math.Pow(t, alpha) / (math.Pow(t, alpha) + 1)
	negWeight := math.Pow(t, beta) / (math.Pow(t, beta) + 1)
	stratWeight := math.Pow(t/(t+1), gamma)

	for i := range n.Regrets {
		if n.Regrets[i] > 0 {
			n.Regrets[i] *= posWeight
		} else {
			n.Regrets[i] *= negWeight
		}
		n.StrategySum[i] *= stratWeight
	}
}

// averageStrategy normalizes the strategy sum; when nothing has
// accumulated it falls back to the current matched strategy, and to
// uniform when the node is empty.
func (n *Node) averageStrategy(useECFR bool) []float64 {
	total := 0.0
	for _, s := range n.StrategySum {
		total += s
	}
	if total <= 0 {
		return n.strategy(useECFR)
	}
	avg := make([]float64, len(n.StrategySum))
	for i, s := range n.StrategySum {
		avg[i] = s / total
	}
	return avg
}

// InfosetTable maps infoset keys to nodes. Infosets are created
// lazily; training never fails on an unseen key. The table is only
// mutated by the training thread.
type InfosetTable map[string]*Node

// Get returns the node for a key, creating it with the given action
// count when missing.
func (t InfosetTable) Get(key string, numActions int) *Node {
	if n, ok := t[key]; ok {
		return n
	}
	n := newNode(numActions)
	t[key] = n
	return n
}
