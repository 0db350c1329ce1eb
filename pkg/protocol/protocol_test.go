package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/counterfour/counterfour/pkg/common"
	"github.com/counterfour/counterfour/pkg/engine"
)

func newTestProtocol() *Protocol {
	var e = engine.NewEngine(engine.NewOptions())
	var options = []Option{
		&IntOption{OptionName: "Hash", Min: 0, Max: 1024, Value: &e.Options.Hash},
	}
	return New("CounterFour", "test", "dev", e, options, Settings{
		Seed:        1,
		FirstTurnMs: 20,
		TurnMs:      10,
	})
}

func runScript(p *Protocol, script string) (output, log string) {
	var out, logBuf bytes.Buffer
	p.Run(zerolog.New(&logBuf).Level(zerolog.InfoLevel), strings.NewReader(script), &out)
	return out.String(), logBuf.String()
}

func TestPositionAndGo(t *testing.T) {
	var p = newTestProtocol()
	var out, log = runScript(p, "position moves 0 1 0 1 0 1\ngo depth 4\n")
	if !strings.Contains(out, "bestmove 0\n") {
		t.Error(out)
	}
	if !strings.Contains(out, "info depth 2 ") {
		t.Error("missing progress", out)
	}
	if log != "" {
		t.Error(log)
	}
	if p.position.NumMoves() != 6 {
		t.Error("go must not play the move", p.position.NumMoves())
	}
}

func TestTurns(t *testing.T) {
	var p = newTestProtocol()
	var out, log = runScript(p, "turn yellow 4 20\nturn yellow 4 10\n")
	if log != "" {
		t.Fatal(log)
	}
	if n := strings.Count(out, "bestmove "); n != 2 {
		t.Error("bestmove count", n, out)
	}
	if p.position.NumMoves() != 4 {
		t.Error("moves on board", p.position.NumMoves())
	}
	if side, ok := p.position.Owner(common.MakeCell(4, 0)); !ok || side != common.Red {
		t.Error("opponent move not applied")
	}
	if side, _ := p.position.Owner(p.position.LastMove()); side != common.Yellow {
		t.Error("own move not applied")
	}
	if p.firstTurn {
		t.Error("first turn flag")
	}
}

func TestFirstTurnBudget(t *testing.T) {
	var p = newTestProtocol()
	if p.turnBudget() != 20 {
		t.Error(p.turnBudget())
	}
	runScript(p, "turn red -1\n")
	if p.position.NumMoves() != 1 {
		t.Fatal(p.position.NumMoves())
	}
	if p.turnBudget() != 10 {
		t.Error(p.turnBudget())
	}
}

func TestWinningTurn(t *testing.T) {
	var p = newTestProtocol()
	var out, log = runScript(p, "position moves 0 1 0 1 0 1\nturn red -1 50\nturn red 5 10\n")
	if !strings.Contains(out, "bestmove 0\n") {
		t.Error(out)
	}
	if !p.position.IsTerminal() || p.position.TerminalScore() <= 0 {
		t.Error("red must have won\n", p.position)
	}
	if !strings.Contains(log, errGameOver.Error()) {
		t.Error("turn after the end of the game", log)
	}
}

func TestCommandErrors(t *testing.T) {
	var tests = []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "bogus\n", "command not found"},
		{"full column", "position moves 0 0 0 0 0 0 0 0\n", "illegal column"},
		{"column out of range", "position moves 9\n", "illegal column"},
		{"not a column", "position moves a\n", "parse column"},
		{"bad position", "position startpos\n", "unknown position argument"},
		{"bad depth", "go depth x\n", "invalid depth"},
		{"bad go argument", "go wtime 100\n", "unknown go argument"},
		{"bad side", "turn green -1 10\n", "unknown side"},
		{"opponent not to move", "turn red 4 10\n", "yellow is not to move"},
		{"illegal opponent column", "turn yellow 9 10\n", "illegal column"},
		{"side not to move", "turn yellow -1 10\n", "yellow is not to move"},
		{"hash out of range", "setoption name Hash value 5000\n", "out of range"},
		{"unknown option", "setoption name Threads value 2\n", "unhandled option"},
		{"bad setoption", "setoption Hash 2\n", "invalid setoption arguments"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var p = newTestProtocol()
			var out, log = runScript(p, test.script)
			if !strings.Contains(log, test.want) {
				t.Errorf("log %q, want %q", log, test.want)
			}
			if strings.Contains(out, "bestmove") {
				t.Error("unexpected search", out)
			}
			if p.position.NumMoves() != 0 {
				t.Error("board changed", p.position.NumMoves())
			}
		})
	}
}

func TestStop(t *testing.T) {
	for _, script := range []string{"go infinite\nstop\n", "go infinite\nquit\nboard\n"} {
		var p = newTestProtocol()
		var out, _ = runScript(p, script)
		if !strings.Contains(out, "bestmove ") {
			t.Error(script, out)
		}
		if strings.Contains(out, "side ") {
			t.Error("command after quit", out)
		}
	}
}

func TestSeedOption(t *testing.T) {
	var p = newTestProtocol()
	runScript(p, "setoption name Seed value 7\nnewgame\nposition moves 4\n")
	var z = common.NewZobrist(7)
	if p.position.Key() != z.Stone(common.MakeCell(4, 0), common.Red)^z.SideToMove() {
		t.Error("keys must follow the seed")
	}
}

func TestAbout(t *testing.T) {
	var p = newTestProtocol()
	var out, _ = runScript(p, "about\nisready\n")
	for _, want := range []string{
		"id name CounterFour dev",
		"option name Hash type spin default 16 min 0 max 1024",
		"option name Seed type spin default 1",
		"aboutok",
		"readyok",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestBoard(t *testing.T) {
	var p = newTestProtocol()
	var out, _ = runScript(p, "position moves 4 4 3\nboard\n")
	if !strings.Contains(out, "side yellow key ") {
		t.Error(out)
	}

	var buf bytes.Buffer
	var board = renderBoard(termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii)), p.position)
	var lines = strings.Split(strings.TrimSuffix(board, "\n"), "\n")
	if len(lines) != common.Height+1 {
		t.Fatal(board)
	}
	var want = map[int]string{
		0: "7  . . . . . . . . .",
		5: "2  . . . . o . . . .",
		6: "1  . . . x x . . . .",
		7: "   0 1 2 3 4 5 6 7 8",
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %v: %q, want %q", i, lines[i], line)
		}
	}
}

func TestSearchInfoString(t *testing.T) {
	var si = common.SearchInfo{Move: common.MakeCell(3, 0), Column: 3, Score: 92, Depth: 5, Nodes: 1234}
	if s := searchInfoString(si); s != "info depth 5 score 92 nodes 1234 time 0 pv 3" {
		t.Error(s)
	}
	si = common.SearchInfo{Move: common.CellNone, Column: common.ColumnNone}
	if s := searchInfoString(si); strings.Contains(s, "pv") {
		t.Error(s)
	}
}
