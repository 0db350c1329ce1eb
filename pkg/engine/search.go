package engine

import (
	"errors"

	"github.com/counterfour/counterfour/pkg/common"
)

var errNoLegalMoves = errors.New("search: no legal moves in a non-terminal position")

func iterativeDeepening(e *Engine, limits common.LimitsType) {
	var ml = e.genRootMoves()
	if len(ml) == 0 {
		e.mainLine = mainLine{move: common.CellNone}
		return
	}
	// fallback when no iteration completes
	e.mainLine = mainLine{
		depth: 0,
		score: valueDraw,
		move:  ml[0],
	}

	var maxDepth = maxHeight
	if ec, ok := e.game.(emptyCounter); ok {
		maxDepth = common.Max(1, ec.EmptyCells())
	}
	if limits.Depth > 0 {
		maxDepth = common.Min(maxDepth, limits.Depth)
	}

	for depth := common.Min(2, maxDepth); !e.timeManager.IsDone(); depth++ {
		var move, score = searchRoot(e, ml, depth)
		e.onIterationComplete(depth, score, move)
		if depth >= maxDepth {
			break
		}
	}
}

func searchRoot(e *Engine, ml []int, depth int) (bestMove, bestScore int) {
	var alpha, beta = -valueInfinity, valueInfinity
	var perspective = e.side.Sign()
	bestMove, bestScore = ml[0], -valueInfinity
	for _, move := range ml {
		var score int
		common.WithMove(e.game, move, e.side, func() {
			score = -e.alphaBeta(-beta, -alpha, depth-1, 1, -perspective)
		})
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
	}
	return
}

// alphaBeta returns the value of the position for the side to move (perspective).
func (e *Engine) alphaBeta(alpha, beta, depth, height, perspective int) int {
	e.nodes++
	var game = e.game
	var key = game.Key()
	var oldAlpha, oldBeta = alpha, beta

	// transposition table
	var ttValue, ttAlpha, ttBeta, ttCutoff = e.transTable.Probe(key, depth, alpha, beta)
	if ttCutoff {
		return ttValue
	}
	alpha, beta = ttAlpha, ttBeta

	if depth == 0 || game.IsTerminal() {
		return perspective * game.TerminalScore()
	}

	var ml = game.LegalMoves(e.stack[height].moveList[:])
	if len(ml) == 0 {
		panic(errNoLegalMoves)
	}

	var side = sideOf(perspective)
	var best = -valueInfinity
	for _, move := range ml {
		game.Apply(move, side)
		var score = -e.alphaBeta(-beta, -alpha, depth-1, height+1, -perspective)
		game.Revert(move, side)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < oldBeta {
		bound |= boundUpper
	}
	e.transTable.Record(key, depth, best, bound)

	return best
}

func (e *Engine) genRootMoves() []int {
	if e.game.IsTerminal() {
		return nil
	}
	var ml = e.game.LegalMoves(e.stack[0].moveList[:])
	if len(ml) == 0 {
		panic(errNoLegalMoves)
	}
	return cloneMoves(ml)
}
