package poker

import (
	"math/rand"
	"testing"

	ph "github.com/paulhankin/poker"
)

func mustMask(t *testing.T, s string) CardMask {
	t.Helper()
	m, _, err := ParseMask(s)
	if err != nil {
		t.Fatalf("ParseMask(%q): %v", s, err)
	}
	return m
}

func evalString(t *testing.T, s string) HandVal {
	t.Helper()
	m := mustMask(t, s)
	return Eval(m, m.Count())
}

func TestEvalCategories(t *testing.T) {
	t.Parallel()
	// Representatives of the nine canonical categories in ascending
	// strength; packed values must be strictly increasing.
	hands := []struct {
		cards string
		want  HandType
	}{
		{"2s4d6h8cTs", HighCard},
		{"2s2d6h8cTs", Pair},
		{"2s2d8h8cTs", TwoPair},
		{"2s2d2h8cTs", Trips},
		{"2s3d4h5c6s", Straight},
		{"2s4s6s8sTs", Flush},
		{"2s2d2h8c8s", FullHouse},
		{"2s2d2h2c8s", Quads},
		{"2s3s4s5s6s", StraightFlush},
	}

	prev := HandVal(0)
	for _, h := range hands {
		v := evalString(t, h.cards)
		if v.Type() != h.want {
			t.Errorf("%s: type = %v, want %v", h.cards, v.Type(), h.want)
		}
		if v <= prev {
			t.Errorf("%s: value %#x not greater than previous %#x", h.cards, uint32(v), uint32(prev))
		}
		prev = v
	}
}

func TestEvalScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  HandType
	}{
		{"AsKsQsJsTs", StraightFlush},
		{"AsAhAdKcKs", FullHouse},
		{"2s4s6s8sTs", Flush},
	}
	for _, tc := range tests {
		if got := evalString(t, tc.cards).Type(); got != tc.want {
			t.Errorf("%s: type = %v, want %v", tc.cards, got, tc.want)
		}
	}
}

func TestWheelAndBroadway(t *testing.T) {
	t.Parallel()
	wheel := evalString(t, "As2d3h4c5s")
	broadway := evalString(t, "TsJdQhKcAs")

	if wheel.Type() != Straight {
		t.Fatalf("wheel type = %v, want Straight", wheel.Type())
	}
	if broadway.Type() != Straight {
		t.Fatalf("broadway type = %v, want Straight", broadway.Type())
	}
	if wheel.TopCard() != Five {
		t.Errorf("wheel top card = %d, want %d", wheel.TopCard(), Five)
	}
	if broadway.TopCard() != Ace {
		t.Errorf("broadway top card = %d, want %d", broadway.TopCard(), Ace)
	}
	if broadway <= wheel {
		t.Error("broadway should beat the wheel")
	}
}

func TestEvalDeterministic(t *testing.T) {
	t.Parallel()
	m := mustMask(t, "AsKd8c8h3d2s7c")
	first := Eval(m, 7)
	for i := 0; i < 100; i++ {
		if got := Eval(m, 7); got != first {
			t.Fatalf("Eval not referentially transparent: %#x vs %#x", got, first)
		}
	}
}

func randomMask(rng *rand.Rand, nCards int) CardMask {
	var m CardMask
	for m.Count() < nCards {
		m.Set(rng.Intn(NumCards))
	}
	return m
}

func TestEvalMatchesSlowPath(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	for n := 5; n <= 7; n++ {
		for i := 0; i < 20000; i++ {
			m := randomMask(rng, n)
			fast := Eval(m, n)
			slow := EvalSlow(m, n)
			if fast != slow {
				t.Fatalf("mask %s (%d cards): fast %#x (%v) != slow %#x (%v)",
					m, n, uint32(fast), fast, uint32(slow), slow)
			}
		}
	}
}

func TestEval8MatchesScalar(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))
	for round := 0; round < 2000; round++ {
		var masks [8]CardMask
		for i := range masks {
			masks[i] = randomMask(rng, 7)
		}
		got := Eval8(&masks, 7)
		for i, m := range masks {
			if want := Eval(m, 7); got[i] != want {
				t.Fatalf("lane %d mask %s: batch %#x != scalar %#x", i, m, got[i], want)
			}
		}
	}
}

func TestLargeTableMatchesCompact(t *testing.T) {
	if testing.Short() {
		t.Skip("large table allocation")
	}
	rng := rand.New(rand.NewSource(3))
	masks := make([]CardMask, 5000)
	want := make([]HandVal, len(masks))
	for i := range masks {
		masks[i] = randomMask(rng, 7)
		want[i] = Eval(masks[i], 7)
	}

	EnableLargeTables()
	defer func() { noflushLarge = nil }()

	for i, m := range masks {
		if got := Eval(m, 7); got != want[i] {
			t.Fatalf("mask %s: large-table %#x != compact %#x", m, got, want[i])
		}
	}
}

// toOracle converts a card to the reference library's representation.
func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	var s ph.Suit
	switch c.Suit() {
	case Spades:
		s = ph.Spade
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	}
	r := ph.Rank(int(c.Rank()) + 2)
	if c.Rank() == Ace {
		r = ph.Rank(1)
	}
	card, err := ph.MakeCard(s, r)
	if err != nil {
		t.Fatalf("MakeCard(%v): %v", c, err)
	}
	return card
}

func oracleEval7(t *testing.T, m CardMask) int16 {
	t.Helper()
	cards := m.Cards()
	var a7 [7]ph.Card
	for i, c := range cards {
		a7[i] = toOracle(t, c)
	}
	return ph.Eval7(&a7)
}

func TestEvalAgreesWithOracle(t *testing.T) {
	t.Parallel()
	// Orient the oracle's score direction from a known-strong vs
	// known-weak pair, then check ordering agreement on random hands.
	strong := mustMask(t, "AsKsQsJsTs2d3c")
	weak := mustMask(t, "2s4d6h8cTsJd3c")
	dir := 1
	if oracleEval7(t, strong) < oracleEval7(t, weak) {
		dir = -1
	}

	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 5000; i++ {
		a := randomMask(rng, 7)
		b := randomMask(rng, 7)

		mine := compareVals(Eval(a, 7), Eval(b, 7))
		oracle := compareScores(oracleEval7(t, a), oracleEval7(t, b)) * dir
		if mine != oracle {
			t.Fatalf("ordering disagreement: %s vs %s (mine %d, oracle %d)", a, b, mine, oracle)
		}
	}
}

func compareVals(a, b HandVal) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func compareScores(a, b int16) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
