package common

import (
	"encoding/binary"
	"io"

	"lukechampine.com/frand"
)

// Zobrist holds one key per (cell, side) and one side-to-move key.
// A table is built once and shared by every position of the process.
type Zobrist struct {
	cells [CellCount][2]uint64
	side  uint64
}

// NewZobrist builds a reproducible table from seed.
func NewZobrist(seed uint64) *Zobrist {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return newZobrist(frand.NewCustom(key[:], 1024, 12))
}

// NewRandomZobrist builds a table from system entropy.
func NewRandomZobrist() *Zobrist {
	return newZobrist(frand.New())
}

func newZobrist(r io.Reader) *Zobrist {
	var z = &Zobrist{}
	var buf [8]byte
	var next = func() uint64 {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			panic(err)
		}
		return binary.LittleEndian.Uint64(buf[:])
	}
	for cell := range z.cells {
		z.cells[cell][Red] = next()
		z.cells[cell][Yellow] = next()
	}
	z.side = next()
	return z
}

func (z *Zobrist) Stone(cell int, side Side) uint64 {
	return z.cells[cell][side]
}

func (z *Zobrist) SideToMove() uint64 {
	return z.side
}
