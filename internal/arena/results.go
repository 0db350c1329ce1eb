package arena

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type GameStatistics struct {
	Wins            int
	Losses          int
	Draws           int
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

// showResults reports every finished game and the running score from engine A's point of view.
func showResults(
	ctx context.Context,
	logger zerolog.Logger,
	gameResults <-chan gameResult,
	stat *GameStatistics,
) error {
	var finished []gameResult
	for gameResult := range gameResults {
		finished = append(finished, gameResult)
		logger.Info().
			Str("game", gameResult.gameInfo.id.String()).
			Int("gameNumber", gameResult.gameInfo.gameNumber).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Ints("columns", gameResult.columns).
			Msg("finished game")
		*stat = tally(finished)
		logger.Info().
			Int("wins", stat.Wins).
			Int("losses", stat.Losses).
			Int("draws", stat.Draws).
			Float64("winningFraction", stat.WinningFraction).
			Float64("elo", stat.EloDifference).
			Float64("los", stat.LOS).
			Int("games", len(finished)).
			Msg("score")
	}
	return nil
}

func tally(results []gameResult) GameStatistics {
	var draws = lo.CountBy(results, func(r gameResult) bool {
		return r.result == gameResultDraw
	})
	var wins = lo.CountBy(results, func(r gameResult) bool {
		return r.result == gameResultRedWins && r.gameInfo.engineAIsRed ||
			r.result == gameResultYellowWins && !r.gameInfo.engineAIsRed
	})
	return computeStat(wins, len(results)-wins-draws, draws)
}

//https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var result = GameStatistics{Wins: wins, Losses: losses, Draws: draws}
	var games = wins + losses + draws
	if games == 0 {
		return result
	}
	result.WinningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	result.EloDifference = -math.Log(1/result.WinningFraction-1) * 400 / math.Ln10
	if wins+losses == 0 {
		result.LOS = 0.5
	} else {
		result.LOS = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return result
}

func gameResultString(v int) string {
	switch v {
	case gameResultRedWins:
		return "1-0"
	case gameResultYellowWins:
		return "0-1"
	case gameResultDraw:
		return "1/2-1/2"
	}
	return ""
}
