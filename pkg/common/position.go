package common

import (
	"fmt"
	"math/bits"
	"strings"
)

// Position is a 9x7 board. Cell index is column*Height+row, row 0 is the bottom.
// A Position is mutated in place with Apply/Revert and is not safe for concurrent use.
type Position struct {
	zobrist  *Zobrist
	stones   [2]uint64
	numMoves int
	key      uint64
	history  [CellCount]int8
	scores   [CellCount + 1]scoreCache
	evals    int
}

type scoreCache struct {
	value int
	valid bool
}

var _ Game = (*Position)(nil)

func NewPosition(z *Zobrist) *Position {
	return &Position{zobrist: z}
}

// NewPositionFromColumns plays the columns alternately, starting with Red.
func NewPositionFromColumns(z *Zobrist, columns []int) (*Position, error) {
	var p = NewPosition(z)
	var side = Red
	for _, column := range columns {
		if p.IsTerminal() {
			return nil, fmt.Errorf("game is over before column %v", column)
		}
		var cell, ok = p.DropCell(column)
		if !ok {
			return nil, fmt.Errorf("illegal column %v", column)
		}
		p.Apply(cell, side)
		side = side.Opponent()
	}
	return p, nil
}

func (p *Position) Apply(cell int, side Side) {
	if !IsValidCell(cell) {
		panic(fmt.Errorf("apply: cell %v out of range", cell))
	}
	var bit = uint64(1) << uint(cell)
	if (p.stones[Red]|p.stones[Yellow])&bit != 0 {
		panic(fmt.Errorf("apply: cell %v is occupied", CellName(cell)))
	}
	p.stones[side] |= bit
	p.history[p.numMoves] = int8(cell)
	p.numMoves++
	p.key ^= p.zobrist.Stone(cell, side) ^ p.zobrist.SideToMove()
	p.scores[p.numMoves] = scoreCache{}
}

func (p *Position) Revert(cell int, side Side) {
	if p.numMoves == 0 {
		panic(fmt.Errorf("revert: no move to revert"))
	}
	if int(p.history[p.numMoves-1]) != cell {
		panic(fmt.Errorf("revert: cell %v is not the last move", CellName(cell)))
	}
	var bit = uint64(1) << uint(cell)
	if p.stones[side]&bit == 0 {
		panic(fmt.Errorf("revert: cell %v is not occupied by %v", CellName(cell), side))
	}
	p.stones[side] &^= bit
	p.numMoves--
	p.key ^= p.zobrist.Stone(cell, side) ^ p.zobrist.SideToMove()
}

func (p *Position) Key() uint64 {
	return p.key
}

// ComputeKey recomputes the hash from the occupancy and the number of plies.
func (p *Position) ComputeKey() uint64 {
	var result uint64
	for side := Red; side <= Yellow; side++ {
		for x := p.stones[side]; x != 0; x &= x - 1 {
			result ^= p.zobrist.Stone(bits.TrailingZeros64(x), side)
		}
	}
	if p.numMoves&1 != 0 {
		result ^= p.zobrist.SideToMove()
	}
	return result
}

func (p *Position) NumMoves() int {
	return p.numMoves
}

func (p *Position) LastMove() int {
	if p.numMoves == 0 {
		return CellNone
	}
	return int(p.history[p.numMoves-1])
}

func (p *Position) Stones(side Side) uint64 {
	return p.stones[side]
}

func (p *Position) IsOccupied(cell int) bool {
	if !IsValidCell(cell) {
		panic(fmt.Errorf("cell %v out of range", cell))
	}
	return (p.stones[Red]|p.stones[Yellow])&(uint64(1)<<uint(cell)) != 0
}

// Owner returns the side occupying the cell; ok is false for an empty cell.
func (p *Position) Owner(cell int) (side Side, ok bool) {
	var bit = uint64(1) << uint(cell)
	if p.stones[Red]&bit != 0 {
		return Red, true
	}
	if p.stones[Yellow]&bit != 0 {
		return Yellow, true
	}
	return Red, false
}

func (p *Position) EmptyCells() int {
	return CellCount - p.numMoves
}

func (p *Position) IsFull() bool {
	return p.numMoves == CellCount
}

// Mirror swaps the colors of all stones. The hash is recomputed, cached scores are dropped.
func (p *Position) Mirror() Position {
	var result = Position{
		zobrist:  p.zobrist,
		stones:   [2]uint64{p.stones[Yellow], p.stones[Red]},
		numMoves: p.numMoves,
		history:  p.history,
	}
	result.key = result.ComputeKey()
	return result
}

// String draws the board top row first: 'x' is Red, 'o' is Yellow.
func (p *Position) String() string {
	var sb = &strings.Builder{}
	for row := Height - 1; row >= 0; row-- {
		for column := 0; column < Width; column++ {
			var side, ok = p.Owner(MakeCell(column, row))
			if !ok {
				sb.WriteByte('.')
			} else if side == Red {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('o')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(columnNames)
	return sb.String()
}
