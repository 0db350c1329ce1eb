package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/counterfour/counterfour/internal/config"
	"github.com/counterfour/counterfour/internal/logger"
	"github.com/counterfour/counterfour/pkg/engine"
	"github.com/counterfour/counterfour/pkg/protocol"
)

/*
CounterFour is a move picker for nine by seven gravity connect four.
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "CounterFour"
	author = "CounterFour authors"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var cfg, err = config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log.Info().
		Str("name", name).
		Str("versionName", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtimeVersion", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("hash", cfg.Hash).
		Int("seed", cfg.Seed).
		Msg("started")

	var options = engine.NewOptions()
	options.Hash = cfg.Hash
	var eng = engine.NewEngine(options)

	var p = protocol.New(name, author, versionName, eng,
		[]protocol.Option{
			&protocol.IntOption{OptionName: "Hash", Min: 0, Max: 1024, Value: &eng.Options.Hash},
		},
		protocol.Settings{
			Seed:        cfg.Seed,
			FirstTurnMs: cfg.FirstTurnMs,
			TurnMs:      cfg.TurnMs,
		},
	)
	p.Run(log, os.Stdin, os.Stdout)
}
