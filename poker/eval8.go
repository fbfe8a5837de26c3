package poker

import "math/bits"

// Eval8 evaluates eight masks in one call. It mirrors the wide-lane
// kernel contract: non-flush hands sum their four lane hashes and
// gather from the non-flush table, flush hands fall back to the
// scalar path per lane. The result equals Eval for every mask.
func Eval8(masks *[8]CardMask, nCards int) [8]HandVal {
	var out [8]HandVal
	var keys [8]uint32
	var flushLanes uint8

	for i, m := range masks {
		ss := m.SpadeRanks()
		sc := m.ClubRanks()
		sd := m.DiamondRanks()
		sh := m.HeartRanks()

		if bits.OnesCount16(ss) >= 5 || bits.OnesCount16(sc) >= 5 ||
			bits.OnesCount16(sd) >= 5 || bits.OnesCount16(sh) >= 5 {
			out[i] = Eval(m, nCards)
			flushLanes |= 1 << uint(i)
			continue
		}
		keys[i] = suitHash[ss] + suitHash[sc] + suitHash[sd] + suitHash[sh]
	}

	for i := range out {
		if flushLanes&(1<<uint(i)) == 0 {
			out[i] = noflushKeyVal(keys[i])
		}
	}
	return out
}
