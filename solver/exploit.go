package solver

import "math"

// NashConv computes the exploitability proxy for two-player zero-sum
// games: for each player, the best-response value against the other's
// averaged strategy, minus the value of the averaged profile itself,
// summed over both players. It recurses the concrete tree and
// maximizes only at the responding player's decision nodes.
func (s *Solver) NashConv(root State) float64 {
	if root.NumPlayers() != 2 {
		return math.NaN()
	}
	total := 0.0
	for player := 0; player < 2; player++ {
		br := s.bestResponseValue(root, player)
		avg := s.profileValue(root, player)
		total += br - avg
	}
	return total
}

// bestResponseValue maximizes player's utility while the opponent
// follows the averaged strategy.
func (s *Solver) bestResponseValue(state State, player int) float64 {
	switch state.Kind() {
	case Terminal:
		return state.TerminalUtility()[player]
	case Chance:
		value := 0.0
		for _, o := range state.ChanceOutcomes() {
			value += o.Prob * s.bestResponseValue(o.State, player)
		}
		return value
	}

	actions := state.LegalActions()
	if state.Player() == player {
		best := math.Inf(-1)
		for _, a := range actions {
			best = math.Max(best, s.bestResponseValue(state.Apply(a), player))
		}
		return best
	}

	strategy := s.averageStrategyOrUniform(state.InfosetKey(), len(actions))
	value := 0.0
	for i, a := range actions {
		if strategy[i] <= 0 {
			continue
		}
		value += strategy[i] * s.bestResponseValue(state.Apply(a), player)
	}
	return value
}

// profileValue evaluates the averaged profile for the given player.
func (s *Solver) profileValue(state State, player int) float64 {
	switch state.Kind() {
	case Terminal:
		return state.TerminalUtility()[player]
	case Chance:
		value := 0.0
		for _, o := range state.ChanceOutcomes() {
			value += o.Prob * s.profileValue(o.State, player)
		}
		return value
	}

	actions := state.LegalActions()
	strategy := s.averageStrategyOrUniform(state.InfosetKey(), len(actions))
	value := 0.0
	for i, a := range actions {
		if strategy[i] <= 0 {
			continue
		}
		value += strategy[i] * s.profileValue(state.Apply(a), player)
	}
	return value
}

func (s *Solver) averageStrategyOrUniform(key string, numActions int) []float64 {
	if avg := s.AverageStrategy(key); avg != nil {
		return avg
	}
	uniform := make([]float64, numActions)
	for i := range uniform {
		uniform[i] = 1.0 / float64(numActions)
	}
	return uniform
}
