package common

import (
	"time"
)

type Side int

// Red moves first in a fresh game and is the maximizing side of TerminalScore.
const (
	Red Side = iota
	Yellow
)

func (s Side) Opponent() Side {
	return s ^ 1
}

// Sign is the negamax perspective of the side: +1 for Red, -1 for Yellow.
func (s Side) Sign() int {
	return let(s == Red, 1, -1)
}

func (s Side) String() string {
	if s == Red {
		return "red"
	}
	return "yellow"
}

// Game is what the search engine needs from a board.
// Apply and Revert must be paired: one Revert per Apply, same arguments, LIFO order.
type Game interface {
	LegalMoves(buffer []int) []int
	Apply(cell int, side Side)
	Revert(cell int, side Side)
	TerminalScore() int
	IsTerminal() bool
	Key() uint64
}

// WithMove applies the move, runs f and reverts the move on every exit path.
func WithMove(g Game, cell int, side Side, f func()) {
	g.Apply(cell, side)
	defer g.Revert(cell, side)
	f()
}

type LimitsType struct {
	MoveTime int
	Depth    int
	Infinite bool
}

type SearchParams struct {
	Game     Game
	Side     Side
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	Move   int
	Column int
	Score  int
	Depth  int
	Nodes  int64
	Time   time.Duration
}
