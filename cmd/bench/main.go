package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/counterfour/counterfour/internal/logger"
	"github.com/counterfour/counterfour/pkg/common"
	"github.com/counterfour/counterfour/pkg/engine"
)

type Engine interface {
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

func main() {
	var (
		depth = flag.Int("depth", 8, "Fixed depth of the benchmark")
		hash  = flag.Int("hash", 16, "Transposition table in MB")
		seed  = flag.Uint64("seed", 1, "Zobrist seed")
	)
	flag.Parse()
	var command = flag.Arg(0)
	if command == "" {
		command = "benchmark"
	}

	var log, err = logger.New("info", true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var options = engine.NewOptions()
	options.Hash = *hash
	var eng = engine.NewEngine(options)
	eng.Prepare()
	var zobrist = common.NewZobrist(*seed)

	switch command {
	case "benchmark":
		err = benchmark(log, eng, zobrist, *depth)
	case "tactic":
		err = solveTactic(log, eng, zobrist, *depth)
	default:
		err = errors.Errorf("unknown command %v", command)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("failed")
		os.Exit(1)
	}
}
