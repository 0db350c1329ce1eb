package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/counterfour/counterfour/internal/arena"
	"github.com/counterfour/counterfour/internal/logger"
	"github.com/counterfour/counterfour/pkg/engine"
)

type Config struct {
	Concurrency int
	Depth       int
	MoveTime    time.Duration
	HashA       int
	HashB       int
	Seed        uint64
	LogLevel    string
	LogPretty   bool
}

var config Config

func main() {
	flag.IntVar(&config.Concurrency, "concurrency", 4, "Number of games played at once")
	flag.IntVar(&config.Depth, "depth", 0, "Fixed search depth per move")
	flag.DurationVar(&config.MoveTime, "movetime", 20*time.Millisecond, "Fixed time per move when depth is 0")
	flag.IntVar(&config.HashA, "hasha", 16, "Transposition table of engine A in MB")
	flag.IntVar(&config.HashB, "hashb", 0, "Transposition table of engine B in MB")
	flag.Uint64Var(&config.Seed, "seed", 0, "Zobrist seed, 0 means random keys")
	flag.StringVar(&config.LogLevel, "loglevel", "info", "Log level")
	flag.BoolVar(&config.LogPretty, "logpretty", true, "Human readable log")
	flag.Parse()

	var log, err = logger.New(config.LogLevel, config.LogPretty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Info().Interface("config", config).Msg("arena config")

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stat, err := arena.Run(ctx, log, arena.Config{
		Concurrency: config.Concurrency,
		TimeControl: arena.TimeControl{
			FixedDepth: config.Depth,
			FixedTime:  config.MoveTime,
		},
		Seed:       config.Seed,
		NewEngineA: newEngine(config.HashA),
		NewEngineB: newEngine(config.HashB),
	})
	if err != nil {
		log.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
	log.Info().
		Int("wins", stat.Wins).
		Int("losses", stat.Losses).
		Int("draws", stat.Draws).
		Float64("elo", stat.EloDifference).
		Float64("los", stat.LOS).
		Msg("final score")
}

func newEngine(hash int) func() arena.IEngine {
	return func() arena.IEngine {
		var options = engine.NewOptions()
		options.Hash = hash
		var eng = engine.NewEngine(options)
		eng.Prepare()
		return eng
	}
}
