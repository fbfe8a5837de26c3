package solver

import "fmt"

// Kuhn poker: a three-card deck (jack, queen, king), one card each,
// one ante, and a single half-street of betting. Small enough to
// solve exactly, which makes it the reference game for convergence
// and checkpoint tests.

const kuhnAnte = 1.0
const kuhnBet = 1.0

// Kuhn action ids.
const (
	KuhnCheck = 0 // also fold when facing a bet
	KuhnBet   = 1 // also call when facing a bet
)

var kuhnCardNames = [3]string{"J", "Q", "K"}

// KuhnState implements State for Kuhn poker.
type KuhnState struct {
	cards   [2]int // -1 before the deal
	history string // sequence of 'c' (check/fold) and 'b' (bet/call)
}

// NewKuhn returns the root chance node.
func NewKuhn() KuhnState {
	return KuhnState{cards: [2]int{-1, -1}}
}

// NumPlayers returns 2.
func (KuhnState) NumPlayers() int { return 2 }

// Kind classifies the node by the deal and betting history.
func (s KuhnState) Kind() NodeKind {
	if s.cards[0] < 0 {
		return Chance
	}
	if s.kuhnTerminal() {
		return Terminal
	}
	return Decision
}

func (s KuhnState) kuhnTerminal() bool {
	h := s.history
	switch h {
	case "cc", "bb", "bc", "cbb", "cbc":
		return true
	}
	return false
}

// Player returns the acting player: the history length alternates.
func (s KuhnState) Player() int { return len(s.history) % 2 }

// InfosetKey is the acting player's card plus the public history.
func (s KuhnState) InfosetKey() string {
	return fmt.Sprintf("%s:%s", kuhnCardNames[s.cards[s.Player()]], s.history)
}

// LegalActions: both actions are always available.
func (s KuhnState) LegalActions() []int { return []int{KuhnCheck, KuhnBet} }

// Apply appends the action to the history.
func (s KuhnState) Apply(action int) State {
	next := s
	if action == KuhnBet {
		next.history += "b"
	} else {
		next.history += "c"
	}
	return next
}

// ChanceOutcomes deals the six ordered two-card hands uniformly.
func (s KuhnState) ChanceOutcomes() []ChanceOutcome {
	outcomes := make([]ChanceOutcome, 0, 6)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if a == b {
				continue
			}
			outcomes = append(outcomes, ChanceOutcome{
				Prob:  1.0 / 6.0,
				State: KuhnState{cards: [2]int{a, b}},
			})
		}
	}
	return outcomes
}

// TerminalUtility settles the pot. Utilities are net of the ante and
// any bet, and sum to zero.
func (s KuhnState) TerminalUtility() []float64 {
	showdownWinner := 0
	if s.cards[1] > s.cards[0] {
		showdownWinner = 1
	}

	switch s.history {
	case "cc":
		return kuhnPayoff(showdownWinner, kuhnAnte)
	case "bb":
		return kuhnPayoff(showdownWinner, kuhnAnte+kuhnBet)
	case "bc":
		// Player 1 folded to the bet.
		return kuhnPayoff(0, kuhnAnte)
	case "cbc":
		// Player 0 check-folded.
		return kuhnPayoff(1, kuhnAnte)
	case "cbb":
		return kuhnPayoff(showdownWinner, kuhnAnte+kuhnBet)
	default:
		return []float64{0, 0}
	}
}

func kuhnPayoff(winner int, amount float64) []float64 {
	out := []float64{-amount, -amount}
	out[winner] = amount
	return out
}
