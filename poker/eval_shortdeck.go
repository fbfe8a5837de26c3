package poker

// ShortDeckMask selects the 36 cards of a short (six-plus) deck:
// ranks six through ace in every suit.
const ShortDeckMask CardMask = shortLane |
	shortLane<<suitShift | shortLane<<(2*suitShift) | shortLane<<(3*suitShift)

const (
	shortLane       = CardMask(shortRankMask)
	shortRankMask   = uint16(0x1FFF &^ (1<<Two | 1<<Three | 1<<Four | 1<<Five))
	shortWheelRanks = uint16(1<<Ace | 1<<Six | 1<<Seven | 1<<Eight | 1<<Nine)
)

// ShortDeckEval evaluates a short-deck (six-plus) hold'em hand. The
// deck drops deuces through fives, which changes two rules: a flush
// beats a full house, and A-6-7-8-9 plays as a nine-high straight.
func ShortDeckEval(m CardMask, nCards int) HandVal {
	v := Eval(m, nCards)

	// A-6-7-8-9 in one suit is a straight flush; the standard straight
	// table cannot see it because ace-low runs only exist as wheels. A
	// higher natural straight flush in the lane still wins.
	for _, lane := range [4]uint16{m.SpadeRanks(), m.ClubRanks(), m.DiamondRanks(), m.HeartRanks()} {
		if lane&shortWheelRanks == shortWheelRanks {
			if sf := NewHandVal(StraightFlush, Nine, 0, 0, 0, 0); v < sf {
				return sf
			}
		}
	}

	if m.RankMask()&shortWheelRanks == shortWheelRanks && v.Type() < Straight {
		return NewHandVal(Straight, Nine, 0, 0, 0, 0)
	}

	return swapFlushFullHouse(v)
}

// swapFlushFullHouse exchanges the Flush and FullHouse type nibbles so
// that unsigned comparison matches short-deck ordering.
func swapFlushFullHouse(v HandVal) HandVal {
	switch v.Type() {
	case Flush:
		return v&^handTypeMask | HandVal(FullHouse)<<handTypeShift
	case FullHouse:
		return v&^handTypeMask | HandVal(Flush)<<handTypeShift
	default:
		return v
	}
}
