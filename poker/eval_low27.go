package poker

// Low27Eval evaluates a hand for 2-7 (Kansas City) lowball. Straights
// and flushes count against the hand, so the standard high evaluation
// induces the order: the smaller HandVal is the better 2-7 hand.
// Callers compare ascending. A-2-3-4-5 is scored exactly as the high
// evaluator scores it, as a five-high straight.
func Low27Eval(m CardMask, nCards int) HandVal {
	return Eval(m, nCards)
}

// JokerLow27Eval evaluates a joker-deck hand for 2-7 lowball. The
// joker takes whichever absent rank minimises the high-hand value the
// 2-7 ordering scores against.
func JokerLow27Eval(m CardMask, nCards int) HandVal {
	if !m.HasJoker() {
		return Low27Eval(m, nCards)
	}
	std := m & StandardMask

	best := HandVal(0xFFFFFFFF)
	ranks := std.RankMask()
	for r := 0; r < NumRanks; r++ {
		if ranks&(1<<uint(r)) != 0 {
			continue
		}
		suit := leastPopulatedSuitWithout(std, uint8(r))
		v := Eval(std.With(NewCard(uint8(r), suit)), nCards)
		if v < best {
			best = v
		}
	}
	return best
}
