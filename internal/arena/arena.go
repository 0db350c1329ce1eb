package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/counterfour/counterfour/pkg/common"
)

// Run plays engine A against engine B over every opening with both colors.
// Each worker owns one engine pair, the Zobrist keys are shared.
func Run(ctx context.Context, logger zerolog.Logger, config Config) (GameStatistics, error) {
	if config.Concurrency <= 0 {
		return GameStatistics{}, errors.Errorf("concurrency %v must be positive", config.Concurrency)
	}
	if config.TimeControl.FixedDepth <= 0 && config.TimeControl.FixedTime <= 0 {
		return GameStatistics{}, errors.New("bad time control")
	}
	if config.NewEngineA == nil || config.NewEngineB == nil {
		return GameStatistics{}, errors.New("engines are not set")
	}
	var openings = config.Openings
	if openings == nil {
		openings = AllOpenings()
	}
	var zobrist *common.Zobrist
	if config.Seed == 0 {
		zobrist = common.NewRandomZobrist()
	} else {
		zobrist = common.NewZobrist(config.Seed)
	}

	logger.Info().
		Int("numCPU", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", config.Concurrency).
		Int("fixedDepth", config.TimeControl.FixedDepth).
		Dur("fixedTime", config.TimeControl.FixedTime).
		Int("openings", len(openings)).
		Msg("arena started")
	defer logger.Info().Msg("arena finished")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var stat GameStatistics

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, openings, gameInfos)
	})

	g.Go(func() error {
		return showResults(ctx, logger, gameResults, &stat)
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, logger, zobrist, config, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	return stat, err
}

func playGames(
	ctx context.Context,
	logger zerolog.Logger,
	zobrist *common.Zobrist,
	config Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var engineA = config.NewEngineA()
	var engineB = config.NewEngineB()
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, logger, zobrist, engineA, engineB, config.TimeControl, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
