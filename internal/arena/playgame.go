package arena

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/counterfour/counterfour/pkg/common"
)

func playGame(
	ctx context.Context,
	logger zerolog.Logger,
	zobrist *common.Zobrist,
	engineA, engineB IEngine,
	tc TimeControl,
	info gameInfo,
) (gameResult, error) {

	logger.Debug().
		Str("game", info.id.String()).
		Int("gameNumber", info.gameNumber).
		Ints("opening", info.opening).
		Bool("engineAIsRed", info.engineAIsRed).
		Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var position, err = common.NewPositionFromColumns(zobrist, info.opening)
	if err != nil {
		return gameResult{}, errors.Wrapf(err, "opening %v", info.opening)
	}
	var columns = append([]int(nil), info.opening...)
	var buf [common.Width]int

	for {
		if score := position.TerminalScore(); score != 0 {
			var result = lo.Ternary(score > 0, gameResultRedWins, gameResultYellowWins)
			return gameResult{gameInfo: info, columns: columns, comment: "four in a row", result: result}, nil
		}
		if position.IsFull() {
			return gameResult{gameInfo: info, columns: columns, comment: "board full", result: gameResultDraw}, nil
		}
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		var side = common.Side(position.NumMoves() & 1)
		var eng = lo.Ternary((side == common.Red) == info.engineAIsRed, engineA, engineB)
		var limits common.LimitsType
		if tc.FixedDepth != 0 {
			limits.Depth = tc.FixedDepth
		} else if tc.FixedTime != 0 {
			limits.MoveTime = int(tc.FixedTime.Milliseconds())
		} else {
			panic("bad time control")
		}
		var searchResult = eng.Search(ctx, common.SearchParams{
			Game:   position,
			Side:   side,
			Limits: limits,
		})
		var ml = position.LegalMoves(buf[:])
		if !lo.Contains(ml, searchResult.Move) {
			return gameResult{}, errors.Errorf("game %v: bad move %v", info.id, common.CellName(searchResult.Move))
		}
		position.Apply(searchResult.Move, side)
		columns = append(columns, searchResult.Column)
	}
}
