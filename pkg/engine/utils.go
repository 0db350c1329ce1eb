package engine

import (
	"github.com/counterfour/counterfour/pkg/common"
)

const (
	stackSize     = common.CellCount + 2
	maxHeight     = common.CellCount
	valueDraw     = 0
	valueInfinity = 10 * common.WinScore
)

func isDecisive(v int) bool {
	return v != valueDraw
}

func sideOf(perspective int) common.Side {
	if perspective > 0 {
		return common.Red
	}
	return common.Yellow
}

func cloneMoves(ml []int) []int {
	var result = make([]int, len(ml))
	copy(result, ml)
	return result
}
