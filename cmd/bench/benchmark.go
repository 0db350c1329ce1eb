package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/counterfour/counterfour/internal/arena"
	"github.com/counterfour/counterfour/pkg/common"
)

// benchmark searches every two move opening to a fixed depth.
func benchmark(logger zerolog.Logger, eng Engine, zobrist *common.Zobrist, depth int) error {
	logger.Info().Int("depth", depth).Msg("benchmark started")
	defer logger.Info().Msg("benchmark finished")

	var ctx = context.Background()
	var start = time.Now()
	var nodes int64
	for _, opening := range arena.AllOpenings() {
		var p, err = common.NewPositionFromColumns(zobrist, opening)
		if err != nil {
			return err
		}
		var searchInfo = eng.Search(ctx, common.SearchParams{
			Game:   p,
			Side:   common.Side(p.NumMoves() & 1),
			Limits: common.LimitsType{Depth: depth},
		})
		nodes += searchInfo.Nodes
	}
	var elapsed = time.Since(start)
	logger.Info().
		Dur("time", elapsed).
		Int64("nodes", nodes).
		Int64("kNPS", nodes/(elapsed.Milliseconds()+1)).
		Msg("benchmark result")
	return nil
}
