package common

const (
	WinScore    = 100
	connectSize = 4
)

var directions = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// TerminalScore is WinScore-NumMoves if the last move connected four for Red,
// the negation for Yellow, 0 otherwise. The value is cached until the next Apply/Revert.
func (p *Position) TerminalScore() int {
	var cache = &p.scores[p.numMoves]
	if cache.valid {
		return cache.value
	}
	p.evals++
	cache.value = p.computeTerminalScore()
	cache.valid = true
	return cache.value
}

func (p *Position) computeTerminalScore() int {
	if p.numMoves == 0 {
		return 0
	}
	var last = int(p.history[p.numMoves-1])
	var side, _ = p.Owner(last)
	var own = p.stones[side]
	var column, row = Column(last), Row(last)
	for _, dir := range directions {
		var count = 1 +
			countStones(own, column, row, dir[0], dir[1]) +
			countStones(own, column, row, -dir[0], -dir[1])
		if count >= connectSize {
			return side.Sign() * (WinScore - p.numMoves)
		}
	}
	return 0
}

// countStones counts contiguous stones from (column, row) exclusive, at most connectSize-1.
func countStones(own uint64, column, row, dc, dr int) int {
	var count = 0
	for i := 1; i < connectSize; i++ {
		var c, r = column + dc*i, row + dr*i
		if c < 0 || c >= Width || r < 0 || r >= Height ||
			own&(uint64(1)<<uint(MakeCell(c, r))) == 0 {
			break
		}
		count++
	}
	return count
}

func (p *Position) IsTerminal() bool {
	return p.numMoves == CellCount || p.TerminalScore() != 0
}
