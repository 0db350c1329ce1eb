package common

import (
	"math/bits"
)

const columnBits = uint64(1)<<Height - 1

var columnMasks [Width]uint64

func init() {
	for column := range columnMasks {
		columnMasks[column] = columnBits << uint(column*Height)
	}
}

// DropCell returns the lowest empty cell of the column.
func (p *Position) DropCell(column int) (cell int, ok bool) {
	if !IsValidColumn(column) {
		return CellNone, false
	}
	var empty = ^(p.stones[Red] | p.stones[Yellow]) & columnMasks[column]
	if empty == 0 {
		return CellNone, false
	}
	return bits.TrailingZeros64(empty), true
}

// LegalMoves appends to buffer[:0] the lowest empty cell of each column, columns ascending.
// Full columns are skipped.
func (p *Position) LegalMoves(buffer []int) []int {
	var result = buffer[:0]
	var empty = ^(p.stones[Red] | p.stones[Yellow])
	for column := 0; column < Width; column++ {
		var x = empty & columnMasks[column]
		if x != 0 {
			result = append(result, bits.TrailingZeros64(x))
		}
	}
	return result
}
