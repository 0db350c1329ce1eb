package arena

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/counterfour/counterfour/pkg/common"
	"github.com/counterfour/counterfour/pkg/engine"
)

func newTestEngine(hash int) func() IEngine {
	return func() IEngine {
		var options = engine.NewOptions()
		options.Hash = hash
		var e = engine.NewEngine(options)
		e.Prepare()
		return e
	}
}

func TestAllOpenings(t *testing.T) {
	var openings = AllOpenings()
	if len(openings) != common.Width*common.Width {
		t.Fatal(len(openings))
	}
	var seen = make(map[[2]int]bool)
	for _, opening := range openings {
		if _, err := common.NewPositionFromColumns(common.NewZobrist(1), opening); err != nil {
			t.Error(opening, err)
		}
		seen[[2]int{opening[0], opening[1]}] = true
	}
	if len(seen) != len(openings) {
		t.Error("duplicate openings")
	}
}

func TestComputeStat(t *testing.T) {
	var tests = []struct {
		wins, losses, draws int
		fraction, elo, los  float64
	}{
		{0, 0, 0, 0, 0, 0},
		{5, 5, 2, 0.5, 0, 0.5},
		{0, 0, 4, 0.5, 0, 0.5},
		{3, 1, 0, 0.75, 190.8, 0.8413},
	}
	for _, test := range tests {
		var stat = computeStat(test.wins, test.losses, test.draws)
		if math.Abs(stat.WinningFraction-test.fraction) > 1e-9 ||
			math.Abs(stat.EloDifference-test.elo) > 0.1 ||
			math.Abs(stat.LOS-test.los) > 1e-3 {
			t.Errorf("%+v: %+v", test, stat)
		}
	}
}

func TestTally(t *testing.T) {
	var results = []gameResult{
		{gameInfo: gameInfo{engineAIsRed: true}, result: gameResultRedWins},
		{gameInfo: gameInfo{engineAIsRed: false}, result: gameResultRedWins},
		{gameInfo: gameInfo{engineAIsRed: false}, result: gameResultYellowWins},
		{gameInfo: gameInfo{engineAIsRed: true}, result: gameResultDraw},
	}
	var stat = tally(results)
	if stat.Wins != 2 || stat.Losses != 1 || stat.Draws != 1 {
		t.Errorf("%+v", stat)
	}
}

func TestPlayGame(t *testing.T) {
	var engineA, engineB = newTestEngine(1)(), newTestEngine(0)()
	var info = gameInfo{gameNumber: 1, opening: []int{4, 4}, engineAIsRed: true}
	var res, err = playGame(context.Background(), zerolog.Nop(), common.NewZobrist(1),
		engineA, engineB, TimeControl{FixedDepth: 3}, info)
	if err != nil {
		t.Fatal(err)
	}
	var p, perr = common.NewPositionFromColumns(common.NewZobrist(1), res.columns[:len(res.columns)-1])
	if perr != nil {
		t.Fatal(perr)
	}
	if p.IsTerminal() {
		t.Error("game continued after the end")
	}
	var last, _ = p.DropCell(res.columns[len(res.columns)-1])
	p.Apply(last, common.Side(p.NumMoves()&1))
	switch res.result {
	case gameResultRedWins:
		if p.TerminalScore() <= 0 {
			t.Error(res.comment, p.TerminalScore())
		}
	case gameResultYellowWins:
		if p.TerminalScore() >= 0 {
			t.Error(res.comment, p.TerminalScore())
		}
	case gameResultDraw:
		if !p.IsFull() || p.TerminalScore() != 0 {
			t.Error(res.comment)
		}
	}
}

func TestRunSymmetricEngines(t *testing.T) {
	var openings = [][]int{{0, 8}, {4, 4}, {3, 5}}
	var stat, err = Run(context.Background(), zerolog.Nop(), Config{
		Concurrency: 2,
		TimeControl: TimeControl{FixedDepth: 3},
		Seed:        1,
		Openings:    openings,
		NewEngineA:  newTestEngine(1),
		NewEngineB:  newTestEngine(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if stat.Wins+stat.Losses+stat.Draws != 2*len(openings) {
		t.Errorf("%+v", stat)
	}
	if stat.Wins != stat.Losses {
		t.Errorf("identical engines must score equally: %+v", stat)
	}
}

func TestRunBadConfig(t *testing.T) {
	var tests = []Config{
		{Concurrency: 0, TimeControl: TimeControl{FixedDepth: 2}, NewEngineA: newTestEngine(0), NewEngineB: newTestEngine(0)},
		{Concurrency: 1, NewEngineA: newTestEngine(0), NewEngineB: newTestEngine(0)},
		{Concurrency: 1, TimeControl: TimeControl{FixedDepth: 2}},
	}
	for _, config := range tests {
		if _, err := Run(context.Background(), zerolog.Nop(), config); err == nil {
			t.Errorf("%+v: expected error", config)
		}
	}
}
