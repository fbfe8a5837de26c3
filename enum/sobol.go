package enum

import "math/bits"

// sobolSeq generates a Sobol low-discrepancy sequence of up to eight
// dimensions using the gray-code construction. Direction numbers come
// from the Joe-Kuo tables; dimension one is the van der Corput
// sequence in base two.
type sobolSeq struct {
	dim   int
	count uint64
	x     []uint32
	v     [][]uint32
}

const sobolBits = 32

// Joe-Kuo parameters per dimension (degree, polynomial coefficient,
// initial direction integers).
var sobolParams = []struct {
	s uint
	a uint32
	m []uint32
}{
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
	{3, 1, []uint32{1, 3, 1}},
	{3, 2, []uint32{1, 1, 1}},
	{4, 1, []uint32{1, 1, 3, 3}},
	{4, 4, []uint32{1, 3, 5, 13}},
	{5, 2, []uint32{1, 1, 5, 5, 17}},
}

const sobolMaxDim = 8

func newSobol(dim int) *sobolSeq {
	if dim < 1 || dim > sobolMaxDim {
		return nil
	}
	s := &sobolSeq{
		dim: dim,
		x:   make([]uint32, dim),
		v:   make([][]uint32, dim),
	}

	for d := 0; d < dim; d++ {
		v := make([]uint32, sobolBits+1)
		if d == 0 {
			for k := uint(1); k <= sobolBits; k++ {
				v[k] = 1 << (sobolBits - k)
			}
		} else {
			p := sobolParams[d-1]
			deg := p.s
			m := make([]uint32, sobolBits+1)
			copy(m[1:], p.m)
			for k := deg + 1; k <= sobolBits; k++ {
				mk := m[k-deg] ^ (m[k-deg] << deg)
				for i := uint(1); i < deg; i++ {
					if p.a>>(deg-1-i)&1 == 1 {
						mk ^= m[k-i] << i
					}
				}
				m[k] = mk
			}
			for k := uint(1); k <= sobolBits; k++ {
				v[k] = m[k] << (sobolBits - k)
			}
		}
		s.v[d] = v
	}
	return s
}

// next writes the following point of the sequence into out, one value
// per dimension in [0,1).
func (s *sobolSeq) next(out []float64) {
	// Gray-code update: flip the direction number indexed by the
	// lowest zero bit of the counter.
	c := uint(bits.TrailingZeros64(^s.count)) + 1
	s.count++
	for d := 0; d < s.dim; d++ {
		s.x[d] ^= s.v[d][c]
		out[d] = float64(s.x[d]) / (1 << sobolBits)
	}
}
