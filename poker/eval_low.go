package poker

import "math/bits"

// LowEval evaluates the best A-5 lowball hand in a mask of at least
// five cards. Straights and flushes do not exist in A-5; aces play
// low via the rank rotation.
func LowEval(m CardMask, nCards int) LowHandVal {
	ss := RotateRanks(m.SpadeRanks())
	sc := RotateRanks(m.ClubRanks())
	sd := RotateRanks(m.DiamondRanks())
	sh := RotateRanks(m.HeartRanks())

	ranks := ss | sc | sd | sh
	nRanks := bits.OnesCount16(ranks)

	// dups selects every rank present in two or more suits.
	dups := (sc & sd) | (sh & (sc | sd)) | (ss & (sh | sc | sd))

	if nRanks >= 5 {
		return LowHandVal(HighCard)<<handTypeShift | LowHandVal(bottomFiveCardsTable[ranks])
	}

	switch nRanks {
	case 4:
		// The lowest duplicated rank pairs; the rest are kickers.
		pair := bottomCardTable[dups]
		kickers := bottomNCards(ranks&^(1<<pair), 3)
		return LowHandVal(Pair)<<handTypeShift | LowHandVal(pair)<<lowTopShift | LowHandVal(kickers)<<4
	case 3:
		if bits.OnesCount16(dups) >= 2 {
			p1 := bottomCardTable[dups]
			p2 := bottomCardTable[dups&^(1<<p1)]
			kicker := bottomCardTable[ranks&^(1<<p1)&^(1<<p2)]
			return NewLowHandVal(TwoPair, p1, p2, kicker, 0, 0)
		}
		trips := bottomCardTable[dups]
		kickers := bottomNCards(ranks&^(1<<trips), 2)
		return LowHandVal(Trips)<<handTypeShift | LowHandVal(trips)<<lowTopShift | LowHandVal(kickers)<<8
	default:
		threeMask := tripsMask(ss, sc, sd, sh)
		if bits.OnesCount16(dups) == 2 {
			three := bottomCardTable[threeMask]
			pair := bottomCardTable[dups&^(1<<three)]
			return NewLowHandVal(FullHouse, three, pair, 0, 0, 0)
		}
		quads := bottomCardTable[dups]
		kicker := bottomCardTable[ranks&^(1<<quads)]
		return NewLowHandVal(Quads, quads, kicker, 0, 0, 0)
	}
}

// bottomNCards packs the lowest howMany ranks of a rotated mask into
// ascending nibbles, smallest in the least significant slot.
func bottomNCards(ranks uint16, howMany int) uint32 {
	var packed uint32
	for i := 0; i < howMany; i++ {
		r := bottomCardTable[ranks]
		packed |= uint32(r) << (uint(i) * 4)
		ranks &^= 1 << r
	}
	return packed
}

// LowEval8 evaluates the 8-or-better low qualifier: it returns the
// best A-5 low when one qualifies, LowHandValNothing otherwise. A
// qualifying low always uses five distinct ranks of eight or below,
// so the rotated rank union decides it in one table probe.
func LowEval8(m CardMask, nCards int) LowHandVal {
	ranks := RotateRanks(m.RankMask())
	packed := bottomFiveCardsTable[ranks]
	val := LowHandVal(HighCard)<<handTypeShift | LowHandVal(packed)
	if packed != 0 && val <= LowHandValWorstEight {
		return val
	}
	return LowHandValNothing
}
