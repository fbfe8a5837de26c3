package poker

import "testing"

func jokerEvalString(t *testing.T, s string) HandVal {
	t.Helper()
	m := mustMask(t, s)
	return JokerEval(m, m.NumCards())
}

func TestJokerFiveOfAKind(t *testing.T) {
	t.Parallel()
	v := jokerEvalString(t, "AsAcAdAhXx")
	if v.Type() != FiveOfAKind {
		t.Fatalf("type = %v, want FiveOfAKind", v.Type())
	}
	if v.TopCard() != Ace {
		t.Errorf("top card = %d, want ace", v.TopCard())
	}

	// Quints beat every natural hand, royal flush included.
	royal := evalString(t, "AsKsQsJsTs")
	if v <= royal {
		t.Error("five aces should beat a royal flush")
	}
}

func TestJokerPlaysAsAce(t *testing.T) {
	t.Parallel()
	v := jokerEvalString(t, "AsKd9h7c3sXx")
	if v.Type() != Pair {
		t.Fatalf("type = %v, want Pair", v.Type())
	}
	if v.TopCard() != Ace {
		t.Errorf("pair rank = %d, want ace", v.TopCard())
	}
}

func TestJokerFillsStraight(t *testing.T) {
	t.Parallel()
	// 5-6-8-9 plus the joker as the 7.
	v := jokerEvalString(t, "5s6d8h9cXx")
	if v.Type() != Straight {
		t.Fatalf("type = %v, want Straight", v.Type())
	}
	if v.TopCard() != Nine {
		t.Errorf("straight top = %d, want 9", v.TopCard())
	}
}

func TestJokerFillsFlush(t *testing.T) {
	t.Parallel()
	v := jokerEvalString(t, "2s7s9sJs3dXx")
	if v.Type() != Flush {
		t.Fatalf("type = %v, want Flush", v.Type())
	}
	if v.TopCard() != Ace {
		t.Errorf("flush top = %d, want the joker as the ace", v.TopCard())
	}
}

func TestJokerFillsStraightFlush(t *testing.T) {
	t.Parallel()
	v := jokerEvalString(t, "5s6s8s9s2dXx")
	if v.Type() != StraightFlush {
		t.Fatalf("type = %v, want StraightFlush", v.Type())
	}
	if v.TopCard() != Nine {
		t.Errorf("straight flush top = %d, want 9", v.TopCard())
	}
}

func TestJokerWithoutJokerMatchesEval(t *testing.T) {
	t.Parallel()
	m := mustMask(t, "AsKd8c8h3d2s7c")
	if JokerEval(m, 7) != Eval(m, 7) {
		t.Error("joker evaluator should match the standard one without a joker")
	}
}

func TestJokerLow(t *testing.T) {
	t.Parallel()
	// The joker takes the lowest absent rank: here the ace.
	m := mustMask(t, "2s3d4h5cXx")
	v := JokerLowEval(m, m.NumCards())
	if v.Type() != HighCard {
		t.Fatalf("type = %v, want HighCard", v.Type())
	}
	want := NewLowHandVal(HighCard, Five+1, Four+1, Three+1, Two+1, 0)
	if v != want {
		t.Errorf("low = %#x (%v), want wheel %#x", v, v, want)
	}
	if !JokerLowEval8(m, m.NumCards()).Qualifies8() {
		t.Error("joker wheel should qualify 8-or-better")
	}
}
