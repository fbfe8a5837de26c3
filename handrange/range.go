// Package handrange parses textual hand-range notation into weighted
// sets of specific two-card combinations.
//
// The grammar accepts comma-separated parts, each one of:
//
//	specific   AhKh          an exact two-card combo
//	single     AKs, AKo, AK  suited, offsuit, or all combos
//	pair       TT            the six combos of a pocket pair
//	plus       JJ+, AJs+     the single plus all higher equivalents
//	dash       KJs-K9s       an inclusive run with a fixed high card
package handrange

import (
	"fmt"
	"strings"

	"github.com/lox/pokereval/poker"
)

// Combo is one specific hand with its weight.
type Combo struct {
	Mask   poker.CardMask
	Weight float64
}

// Range is a set of weighted combos with unique masks.
type Range struct {
	combos []Combo
	index  map[poker.CardMask]int
}

// New returns an empty range.
func New() *Range {
	return &Range{index: make(map[poker.CardMask]int)}
}

// Combos returns the combos in insertion order.
func (r *Range) Combos() []Combo { return r.combos }

// Len returns the number of distinct combos.
func (r *Range) Len() int { return len(r.combos) }

// Add inserts a combo with weight 1, or updates the weight of an
// existing mask. The last weight wins when notations overlap.
func (r *Range) Add(mask poker.CardMask) { r.AddWeighted(mask, 1) }

// AddWeighted inserts or updates a combo with an explicit weight.
func (r *Range) AddWeighted(mask poker.CardMask, weight float64) {
	if i, ok := r.index[mask]; ok {
		r.combos[i].Weight = weight
		return
	}
	r.index[mask] = len(r.combos)
	r.combos = append(r.combos, Combo{Mask: mask, Weight: weight})
}

// Filter returns the combos that do not overlap the given mask.
func (r *Range) Filter(blocked poker.CardMask) []Combo {
	out := make([]Combo, 0, len(r.combos))
	for _, c := range r.combos {
		if !c.Mask.Overlaps(blocked) {
			out = append(out, c)
		}
	}
	return out
}

// Parse parses a comma-separated range string.
func Parse(s string) (*Range, error) {
	r := New()
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := parsePart(r, part); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parsePart(r *Range, s string) error {
	// Specific combos first: the deck parser is strict about RankSuit
	// pairs, so it cannot accidentally swallow "AKs" or "JJ+". Explicit
	// combos may hold more than two cards (Omaha hands).
	if mask, n, err := poker.ParseMask(s); err == nil && n >= 2 {
		r.Add(mask)
		return nil
	}

	if base, ok := strings.CutSuffix(s, "+"); ok {
		return parsePlus(r, base)
	}

	if start, end, ok := strings.Cut(s, "-"); ok {
		return parseDash(r, start, end)
	}

	return parseSingle(r, s)
}

// token is a canonicalised single notation: high >= low, with an
// optional suited/offsuit suffix.
type token struct {
	high, low uint8
	suffix    byte // 's', 'o', or 0
}

func parseToken(s string) (token, error) {
	if len(s) < 2 || len(s) > 3 {
		return token{}, fmt.Errorf("%w: invalid range token %q", poker.ErrParse, s)
	}
	high, err := parseRank(s[0])
	if err != nil {
		return token{}, err
	}
	low, err := parseRank(s[1])
	if err != nil {
		return token{}, err
	}

	var suffix byte
	if len(s) == 3 {
		switch s[2] {
		case 's', 'S':
			suffix = 's'
		case 'o', 'O':
			suffix = 'o'
		default:
			return token{}, fmt.Errorf("%w: invalid suffix in %q", poker.ErrParse, s)
		}
	}

	if high == low && suffix != 0 {
		return token{}, fmt.Errorf("%w: pairs cannot be suited or offsuit (%q)", poker.ErrParse, s)
	}
	if high < low {
		high, low = low, high
	}
	return token{high: high, low: low, suffix: suffix}, nil
}

func parseRank(b byte) (uint8, error) {
	switch b {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return b - '2', nil
	case 'T', 't':
		return poker.Ten, nil
	case 'J', 'j':
		return poker.Jack, nil
	case 'Q', 'q':
		return poker.Queen, nil
	case 'K', 'k':
		return poker.King, nil
	case 'A', 'a':
		return poker.Ace, nil
	default:
		return 0, fmt.Errorf("%w: invalid rank %q", poker.ErrParse, string(b))
	}
}

func parseSingle(r *Range, s string) error {
	tok, err := parseToken(s)
	if err != nil {
		return err
	}
	expandToken(r, tok)
	return nil
}

func expandToken(r *Range, tok token) {
	switch {
	case tok.high == tok.low:
		addPairCombos(r, tok.high)
	case tok.suffix == 's':
		addSuitedCombos(r, tok.high, tok.low)
	case tok.suffix == 'o':
		addOffsuitCombos(r, tok.high, tok.low)
	default:
		addSuitedCombos(r, tok.high, tok.low)
		addOffsuitCombos(r, tok.high, tok.low)
	}
}

func parsePlus(r *Range, base string) error {
	tok, err := parseToken(base)
	if err != nil {
		return err
	}

	if tok.high == tok.low {
		// Every pair from the base up to aces.
		for rank := tok.high; rank <= poker.Ace; rank++ {
			addPairCombos(r, rank)
		}
		return nil
	}

	// Raise the low card toward the fixed high card.
	for low := tok.low; low < tok.high; low++ {
		expandToken(r, token{high: tok.high, low: low, suffix: tok.suffix})
	}
	return nil
}

func parseDash(r *Range, startStr, endStr string) error {
	start, err := parseToken(startStr)
	if err != nil {
		return err
	}
	end, err := parseToken(endStr)
	if err != nil {
		return err
	}
	if start.suffix != end.suffix {
		return fmt.Errorf("%w: mismatched suffixes in %q-%q", poker.ErrParse, startStr, endStr)
	}

	if start.high == start.low {
		if end.high != end.low {
			return fmt.Errorf("%w: cannot mix pairs and non-pairs in %q-%q", poker.ErrParse, startStr, endStr)
		}
		lo, hi := end.high, start.high
		if lo > hi {
			lo, hi = hi, lo
		}
		for rank := lo; rank <= hi; rank++ {
			addPairCombos(r, rank)
		}
		return nil
	}

	if start.high != end.high {
		return fmt.Errorf("%w: dashed range must share a high card (%q-%q)", poker.ErrParse, startStr, endStr)
	}
	lo, hi := end.low, start.low
	if lo > hi {
		lo, hi = hi, lo
	}
	for low := lo; low <= hi; low++ {
		expandToken(r, token{high: start.high, low: low, suffix: start.suffix})
	}
	return nil
}

func addPairCombos(r *Range, rank uint8) {
	for s1 := uint8(0); s1 < poker.NumSuits; s1++ {
		for s2 := s1 + 1; s2 < poker.NumSuits; s2++ {
			r.Add(poker.MaskFromCards(poker.NewCard(rank, s1), poker.NewCard(rank, s2)))
		}
	}
}

func addSuitedCombos(r *Range, high, low uint8) {
	for s := uint8(0); s < poker.NumSuits; s++ {
		r.Add(poker.MaskFromCards(poker.NewCard(high, s), poker.NewCard(low, s)))
	}
}

func addOffsuitCombos(r *Range, high, low uint8) {
	for s1 := uint8(0); s1 < poker.NumSuits; s1++ {
		for s2 := uint8(0); s2 < poker.NumSuits; s2++ {
			if s1 == s2 {
				continue
			}
			r.Add(poker.MaskFromCards(poker.NewCard(high, s1), poker.NewCard(low, s2)))
		}
	}
}
