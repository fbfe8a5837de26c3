package poker

import "math/bits"

// Eval evaluates the best 5-card high hand in a mask of 5 to 7 cards.
// It is a pure function of the mask: flush candidates resolve through
// the per-suit flush table, everything else through one non-flush
// lookup keyed by the summed suit hashes.
func Eval(m CardMask, nCards int) HandVal {
	ss := m.SpadeRanks()
	sc := m.ClubRanks()
	sd := m.DiamondRanks()
	sh := m.HeartRanks()

	// With at most 7 cards only one lane can hold a flush.
	for _, lane := range [4]uint16{ss, sc, sd, sh} {
		if bits.OnesCount16(lane) >= 5 {
			return flushLookup[lane]
		}
	}
	return noflushVal(ss, sc, sd, sh)
}

// EvalSlow is the table-free fallback evaluator: popcount per suit
// plus duplicate counting, branching on the number of duplicate
// cards. It must agree with Eval for every valid mask and exists for
// environments where the lookup tables are unavailable, and as the
// oracle the fast path is tested against.
func EvalSlow(m CardMask, nCards int) HandVal {
	ss := m.SpadeRanks()
	sc := m.ClubRanks()
	sd := m.DiamondRanks()
	sh := m.HeartRanks()

	for _, lane := range [4]uint16{ss, sc, sd, sh} {
		if bits.OnesCount16(lane) >= 5 {
			if st := straightTable[lane]; st != 0 {
				return NewHandVal(StraightFlush, st, 0, 0, 0, 0)
			}
			return HandVal(Flush)<<handTypeShift | HandVal(topFiveCardsTable[lane])
		}
	}

	ranks := ss | sc | sd | sh
	nDups := nCards - bits.OnesCount16(ranks)
	return evalDuplicates(nDups, ranks, ss, sc, sd, sh)
}

// evalDuplicates classifies a non-flush hand from its duplicate
// structure. XOR of the suit lanes is 1 exactly where a rank appears
// an odd number of times, so ranks^XOR isolates ranks with 2 or 4
// copies.
func evalDuplicates(nDups int, ranks, ss, sc, sd, sh uint16) HandVal {
	switch nDups {
	case 0:
		if st := straightTable[ranks]; st != 0 {
			return NewHandVal(Straight, st, 0, 0, 0, 0)
		}
		return HandVal(HighCard)<<handTypeShift | HandVal(topFiveCardsTable[ranks])

	case 1:
		// Exactly one duplicated rank: a lone pair.
		twoMask := ranks ^ (sc ^ sd ^ sh ^ ss)
		if st := straightTable[ranks]; st != 0 {
			return NewHandVal(Straight, st, 0, 0, 0, 0)
		}
		pair := topCardTable[twoMask]
		kickers := ranks ^ twoMask
		k1 := topCardTable[kickers]
		k2 := topCardTable[kickers&^(1<<k1)]
		k3 := topCardTable[kickers&^(1<<k1)&^(1<<k2)]
		return NewHandVal(Pair, pair, k1, k2, k3, 0)

	case 2:
		// Either two pairs (twoMask has both) or a single trips
		// (three copies XOR to one, leaving twoMask empty).
		twoMask := ranks ^ (sc ^ sd ^ sh ^ ss)
		if st := straightTable[ranks]; st != 0 {
			return NewHandVal(Straight, st, 0, 0, 0, 0)
		}
		if twoMask != 0 {
			p1 := topCardTable[twoMask]
			p2 := topCardTable[twoMask&^(1<<p1)]
			kicker := topCardTable[ranks&^(1<<p1)&^(1<<p2)]
			return NewHandVal(TwoPair, p1, p2, kicker, 0, 0)
		}
		threeMask := tripsMask(ss, sc, sd, sh)
		top := topCardTable[threeMask]
		kickers := ranks &^ (1 << top)
		k1 := topCardTable[kickers]
		k2 := topCardTable[kickers&^(1<<k1)]
		return NewHandVal(Trips, top, k1, k2, 0, 0)

	default:
		fourMask := ss & sc & sd & sh
		if fourMask != 0 {
			top := topCardTable[fourMask]
			return NewHandVal(Quads, top, topCardTable[ranks&^(1<<top)], 0, 0, 0)
		}

		twoMask := ranks ^ (sc ^ sd ^ sh ^ ss)
		threeMask := tripsMask(ss, sc, sd, sh)
		if threeMask != 0 {
			top := topCardTable[threeMask]
			rest := (twoMask | threeMask) &^ (1 << top)
			return NewHandVal(FullHouse, top, topCardTable[rest], 0, 0, 0)
		}

		// Three pairs: keep the top two and the best remaining kicker.
		p1 := topCardTable[twoMask]
		p2 := topCardTable[twoMask&^(1<<p1)]
		kicker := topCardTable[ranks&^(1<<p1)&^(1<<p2)]
		return NewHandVal(TwoPair, p1, p2, kicker, 0, 0)
	}
}

// tripsMask selects ranks appearing at least three times.
func tripsMask(ss, sc, sd, sh uint16) uint16 {
	return ((sc & sd) | (sh & ss)) & ((sc & sh) | (sd & ss))
}
