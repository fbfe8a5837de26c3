package poker

import (
	"fmt"
	"math/bits"
)

// Omaha evaluation must use exactly two hole cards and exactly three
// board cards. Instead of re-evaluating every 5-card combination from
// scratch, the hole pairs and board triplets are pre-hashed per suit
// so the inner loop is one wrapping add and a single non-flush
// lookup; a flush is only possible when the triplet is monotone in a
// suit and the pair supplies two more cards of it.

type omahaPartial struct {
	ss, sc, sd, sh             uint16
	hashS, hashC, hashD, hashH uint32
}

func newOmahaPartial(m CardMask) omahaPartial {
	ss := m.SpadeRanks()
	sc := m.ClubRanks()
	sd := m.DiamondRanks()
	sh := m.HeartRanks()
	return omahaPartial{
		ss: ss, sc: sc, sd: sd, sh: sh,
		hashS: suitHash[ss], hashC: suitHash[sc],
		hashD: suitHash[sd], hashH: suitHash[sh],
	}
}

// OmahaHiEval evaluates the best Omaha high hand for 4, 5, or 6 hole
// cards against a 3-5 card board.
func OmahaHiEval(hole, board CardMask) (HandVal, error) {
	hi, _, err := omahaEval(hole, board, false)
	return hi, err
}

// OmahaHiLow8Eval evaluates both the high hand and the 8-or-better
// low for an Omaha hi/lo game. The low is LowHandValNothing when no
// two-plus-three selection qualifies.
func OmahaHiLow8Eval(hole, board CardMask) (HandVal, LowHandVal, error) {
	return omahaEval(hole, board, true)
}

func omahaEval(hole, board CardMask, wantLow bool) (HandVal, LowHandVal, error) {
	nHole := hole.Count()
	if nHole < 4 || nHole > 6 {
		return 0, 0, fmt.Errorf("%w: omaha needs 4-6 hole cards, got %d", ErrInvariant, nHole)
	}
	nBoard := board.Count()
	if nBoard < 3 || nBoard > 5 {
		return 0, 0, fmt.Errorf("%w: omaha needs 3-5 board cards, got %d", ErrInvariant, nBoard)
	}
	if hole.Overlaps(board) {
		return 0, 0, fmt.Errorf("%w: hole and board overlap", ErrInvariant)
	}

	holeCards := hole.Cards()
	boardCards := board.Cards()

	// A qualifying low needs five distinct low ranks across any legal
	// selection; if even the full union cannot make one, skip the low
	// entirely.
	low := LowHandValNothing
	lowPossible := wantLow && LowEval8(hole|board, nHole+nBoard) != LowHandValNothing

	pairs := make([]omahaPartial, 0, 15)
	pairMasks := make([]CardMask, 0, 15)
	for i := 0; i < len(holeCards); i++ {
		for j := i + 1; j < len(holeCards); j++ {
			m := MaskFromCards(holeCards[i], holeCards[j])
			pairs = append(pairs, newOmahaPartial(m))
			pairMasks = append(pairMasks, m)
		}
	}

	var best HandVal
	for k := 0; k < len(boardCards); k++ {
		for l := k + 1; l < len(boardCards); l++ {
			for n := l + 1; n < len(boardCards); n++ {
				triMask := MaskFromCards(boardCards[k], boardCards[l], boardCards[n])
				tri := newOmahaPartial(triMask)

				// A monotone triplet is the only route to a flush.
				flushSuit := int8(-1)
				switch {
				case bits.OnesCount16(tri.ss) == 3:
					flushSuit = int8(Spades)
				case bits.OnesCount16(tri.sc) == 3:
					flushSuit = int8(Clubs)
				case bits.OnesCount16(tri.sd) == 3:
					flushSuit = int8(Diamonds)
				case bits.OnesCount16(tri.sh) == 3:
					flushSuit = int8(Hearts)
				}

				for p, hp := range pairs {
					key := tri.hashS + hp.hashS + tri.hashC + hp.hashC +
						tri.hashD + hp.hashD + tri.hashH + hp.hashH
					v := noflushKeyVal(key)

					if flushSuit >= 0 {
						suit := uint8(flushSuit)
						hpLane := hp.laneFor(suit)
						if bits.OnesCount16(hpLane) == 2 {
							if fv := flushLookup[tri.laneFor(suit)|hpLane]; fv > v {
								v = fv
							}
						}
					}

					if v > best {
						best = v
					}

					if lowPossible {
						if lv := omahaLowVal(pairMasks[p] | triMask); lv < low {
							low = lv
						}
					}
				}
			}
		}
	}

	return best, low, nil
}

func (p omahaPartial) laneFor(suit uint8) uint16 {
	switch suit {
	case Spades:
		return p.ss
	case Clubs:
		return p.sc
	case Diamonds:
		return p.sd
	default:
		return p.sh
	}
}

// omahaLowVal scores one exact five-card selection for 8-or-better:
// it qualifies only with five distinct ranks of eight or below.
func omahaLowVal(m CardMask) LowHandVal {
	rot := RotateRanks(m.RankMask())
	if bits.OnesCount16(rot) != 5 || rot&^0xFF != 0 {
		return LowHandValNothing
	}
	return LowHandVal(HighCard)<<handTypeShift | LowHandVal(bottomFiveCardsTable[rot])
}

// noflushKeyVal resolves a pre-summed rank key through whichever
// non-flush table is active.
func noflushKeyVal(key uint32) HandVal {
	if noflushLarge != nil {
		return noflushLarge[key]
	}
	return noflushCompact[key+perfHashRowOffsets[key>>perfHashRowShift]]
}
