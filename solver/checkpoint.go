package solver

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/lox/pokereval/internal/fileutil"
)

// Checkpoint blob layout, little-endian throughout:
//
//	magic "PEVS", version u16, flags u16
//	iteration u64, numPlayers u8
//	alpha f64, beta f64, gamma f64, linearPower f64
//	infosetCount u64
//	records: keyLen u32, key bytes, numActions u16,
//	         regrets[numActions] f64, strategySum[numActions] f64
//
// The game tree and any abstraction are not serialized; the caller
// reinstalls them on load. Restoring and continuing with the same
// seed reproduces the uninterrupted training trajectory exactly.
const (
	checkpointMagic   = "PEVS"
	checkpointVersion = uint16(1)

	flagCFRPlus  = 1 << 0
	flagECFR     = 1 << 1
	flagExternal = 1 << 2
	flagDCFR     = 1 << 3
)

// SaveCheckpoint atomically writes the solver state to path.
func (s *Solver) SaveCheckpoint(path string) error {
	var buf bytes.Buffer
	buf.WriteString(checkpointMagic)

	var flags uint16
	if s.cfg.CFRPlus {
		flags |= flagCFRPlus
	}
	if s.cfg.ECFR {
		flags |= flagECFR
	}
	if s.cfg.Sampling == ExternalSampling {
		flags |= flagExternal
	}
	if s.cfg.DCFR {
		flags |= flagDCFR
	}

	le := binary.LittleEndian
	writeU16 := func(v uint16) { binary.Write(&buf, le, v) }
	writeU64 := func(v uint64) { binary.Write(&buf, le, v) }
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	writeU16(checkpointVersion)
	writeU16(flags)
	writeU64(uint64(s.iteration))
	buf.WriteByte(uint8(s.cfg.NumPlayers))
	writeF64(s.cfg.Alpha)
	writeF64(s.cfg.Beta)
	writeF64(s.cfg.Gamma)
	writeF64(s.cfg.LinearPower)

	// Records in sorted key order so identical states produce
	// identical blobs.
	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	writeU64(uint64(len(keys)))
	for _, key := range keys {
		node := s.table[key]
		binary.Write(&buf, le, uint32(len(key)))
		buf.WriteString(key)
		writeU16(uint16(len(node.Regrets)))
		for _, r := range node.Regrets {
			writeF64(r)
		}
		for _, v := range node.StrategySum {
			writeF64(v)
		}
	}

	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// LoadCheckpoint restores a solver from a checkpoint blob. The seed
// and sampling game are not part of the blob: pass the original
// configuration's seed so the continued run stays deterministic.
func LoadCheckpoint(path string, seed int64) (*Solver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != checkpointMagic {
		return nil, fmt.Errorf("not a solver checkpoint: bad magic")
	}

	le := binary.LittleEndian
	var version, flags uint16
	if err := binary.Read(r, le, &version); err != nil {
		return nil, err
	}
	if version != checkpointVersion {
		return nil, fmt.Errorf("unsupported checkpoint version %d", version)
	}
	if err := binary.Read(r, le, &flags); err != nil {
		return nil, err
	}

	var iteration uint64
	if err := binary.Read(r, le, &iteration); err != nil {
		return nil, err
	}
	numPlayers, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	cfg := Config{
		NumPlayers: int(numPlayers),
		CFRPlus:    flags&flagCFRPlus != 0,
		ECFR:       flags&flagECFR != 0,
		DCFR:       flags&flagDCFR != 0,
		Seed:       seed,
	}
	if flags&flagExternal != 0 {
		cfg.Sampling = ExternalSampling
	}
	for _, field := range []*float64{&cfg.Alpha, &cfg.Beta, &cfg.Gamma, &cfg.LinearPower} {
		if err := binary.Read(r, le, field); err != nil {
			return nil, err
		}
	}

	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	s.iteration = int(iteration)

	var count uint64
	if err := binary.Read(r, le, &count); err != nil {
		return nil, err
	}
	for i := uint64(0); i < count; i++ {
		var keyLen uint32
		if err := binary.Read(r, le, &keyLen); err != nil {
			return nil, err
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, err
		}
		var numActions uint16
		if err := binary.Read(r, le, &numActions); err != nil {
			return nil, err
		}
		node := newNode(int(numActions))
		for a := range node.Regrets {
			if err := binary.Read(r, le, &node.Regrets[a]); err != nil {
				return nil, err
			}
		}
		for a := range node.StrategySum {
			if err := binary.Read(r, le, &node.StrategySum[a]); err != nil {
				return nil, err
			}
		}
		s.table[string(key)] = node
	}

	return s, nil
}
