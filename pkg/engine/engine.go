package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/counterfour/counterfour/pkg/common"
)

type Engine struct {
	Options     Options
	transTable  TransTable
	timeManager *timeManager
	game        common.Game
	side        common.Side
	mainLine    mainLine
	progress    func(common.SearchInfo)
	start       time.Time
	nodes       int64
	stack       [stackSize]struct {
		moveList [common.Width]int
	}
}

type mainLine struct {
	move  int
	score int
	depth int
}

type TransTable interface {
	Size() (megabytes int)
	IncDate()
	Clear()
	HashFull() int
	Probe(key uint64, depth, alpha, beta int) (value, newAlpha, newBeta int, cutoff bool)
	Record(key uint64, depth, score, bound int)
}

// emptyCounter is implemented by games that know how many moves are left.
// Deeper iterations than that can not change the result.
type emptyCounter interface {
	EmptyCells() int
}

func NewEngine(options Options) *Engine {
	return &Engine{
		Options: options,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Options.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Options.Hash)
	}
}

func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
}

func (e *Engine) HashFull() int {
	if e.transTable == nil {
		return 0
	}
	return e.transTable.HashFull()
}

// Search returns the best move for searchParams.Side from the last fully completed depth.
// The game is left as it was on return.
func (e *Engine) Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	e.start = time.Now()
	e.Prepare()
	e.timeManager = newTimeManager(ctx, e.start, searchParams.Limits)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.game = searchParams.Game
	e.side = searchParams.Side
	e.progress = searchParams.Progress
	e.nodes = 0
	defer func() {
		e.game = nil
		e.progress = nil
	}()
	iterativeDeepening(e, searchParams.Limits)
	return e.currentSearchResult()
}

func (e *Engine) currentSearchResult() common.SearchInfo {
	var column = common.ColumnNone
	if e.mainLine.move != common.CellNone {
		column = common.Column(e.mainLine.move)
	}
	return common.SearchInfo{
		Move:   e.mainLine.move,
		Column: column,
		Score:  e.mainLine.score,
		Depth:  e.mainLine.depth,
		Nodes:  e.nodes,
		Time:   time.Since(e.start),
	}
}

func (e *Engine) onIterationComplete(depth, score, move int) {
	e.mainLine = mainLine{
		depth: depth,
		score: score,
		move:  move,
	}
	e.timeManager.OnIterationComplete(e.mainLine)
	if e.progress != nil && e.nodes >= int64(e.Options.ProgressMinNodes) {
		e.progress(e.currentSearchResult())
	}
}
