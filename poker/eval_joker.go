package poker

import "math/bits"

// JokerEval evaluates a joker-deck high hand. The joker plays as an
// ace unless completing a straight, flush, or straight flush is
// worth more; with all four natural aces in the hand it makes five
// of a kind, the top category.
func JokerEval(m CardMask, nCards int) HandVal {
	if !m.HasJoker() {
		return Eval(m, nCards)
	}
	std := m & StandardMask

	const aceAllSuits = CardMask(1)<<Ace |
		CardMask(1)<<(Ace+suitShift) |
		CardMask(1)<<(Ace+2*suitShift) |
		CardMask(1)<<(Ace+3*suitShift)
	if std&aceAllSuits == aceAllSuits {
		return NewHandVal(FiveOfAKind, Ace, 0, 0, 0, 0)
	}

	// Ace substitution: the highest rank with an open suit slot is
	// always the ace here, joining the least populated lane.
	best := Eval(std.With(NewCard(Ace, leastPopulatedSuitWithout(std, Ace))), nCards)

	// Straight flush: the joker fills a gap in any single suit lane.
	lanes := [4]uint16{std.SpadeRanks(), std.ClubRanks(), std.DiamondRanks(), std.HeartRanks()}
	for _, lane := range lanes {
		if bits.OnesCount16(lane) >= 4 {
			if st := jokerStraightTable[lane]; st != 0 {
				if v := NewHandVal(StraightFlush, st, 0, 0, 0, 0); v > best {
					best = v
				}
			}
			// Four of a suit plus the joker is a flush.
			if fl := jokerFlushVal(lane); fl > best {
				best = fl
			}
		}
	}

	// Straight: the joker fills a gap in the rank union.
	if st := jokerStraightTable[std.RankMask()]; st != 0 {
		if v := NewHandVal(Straight, st, 0, 0, 0, 0); v > best {
			best = v
		}
	}

	return best
}

// jokerFlushVal scores a flush made of a four-card lane plus the
// joker standing in for the highest rank missing from the lane.
func jokerFlushVal(lane uint16) HandVal {
	missing := uint16(0x1FFF) &^ lane
	if missing == 0 {
		return 0
	}
	full := lane | 1<<topCardTable[missing]
	if bits.OnesCount16(full) < 5 {
		return 0
	}
	return HandVal(Flush)<<handTypeShift | HandVal(topFiveCardsTable[full])
}

// JokerLowEval evaluates a joker-deck A-5 lowball hand. The joker
// substitutes as the lowest rank not already held.
func JokerLowEval(m CardMask, nCards int) LowHandVal {
	if !m.HasJoker() {
		return LowEval(m, nCards)
	}
	std := m & StandardMask

	rot := RotateRanks(std.RankMask())
	missing := uint16(0x1FFF) &^ rot
	sub := unrotateRank(bottomCardTable[missing])
	suit := leastPopulatedSuitWithout(std, sub)
	return LowEval(std.With(NewCard(sub, suit)), nCards)
}

// JokerLowEval8 applies the 8-or-better qualifier to a joker-deck low.
func JokerLowEval8(m CardMask, nCards int) LowHandVal {
	if !m.HasJoker() {
		return LowEval8(m, nCards)
	}
	v := JokerLowEval(m, nCards)
	if v.Qualifies8() {
		return v
	}
	return LowHandValNothing
}

// leastPopulatedSuitWithout picks the suit lane holding the fewest
// cards among those missing the given rank.
func leastPopulatedSuitWithout(m CardMask, rank uint8) uint8 {
	bestSuit := uint8(0)
	bestCount := 14
	for suit := uint8(0); suit < NumSuits; suit++ {
		lane := m.SuitRanks(suit)
		if lane&(1<<rank) != 0 {
			continue
		}
		if n := bits.OnesCount16(lane); n < bestCount {
			bestCount = n
			bestSuit = suit
		}
	}
	return bestSuit
}
