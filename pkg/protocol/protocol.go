package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/counterfour/counterfour/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// Settings are the protocol defaults that do not belong to the engine.
type Settings struct {
	Seed        int
	FirstTurnMs int
	TurnMs      int
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	settings     Settings
	zobristSeed  int
	zobrist      *common.Zobrist
	position     *common.Position
	firstTurn    bool
	out          io.Writer
	logger       zerolog.Logger
	thinking     bool
	engineOutput chan common.SearchInfo
	cancel       context.CancelFunc
	search       pendingSearch
}

// pendingSearch describes the search started by go or turn.
type pendingSearch struct {
	side   common.Side
	play   bool
	result common.SearchInfo
}

var (
	errSearchRunning   = errors.New("search still run")
	errCommandNotFound = errors.New("command not found")
	errGameOver        = errors.New("game is over")
)

func New(name, author, version string, engine Engine, options []Option, settings Settings) *Protocol {
	var p = &Protocol{
		name:     name,
		author:   author,
		version:  version,
		engine:   engine,
		settings: settings,
	}
	p.options = append(options, &IntOption{
		OptionName: "Seed",
		Min:        0,
		Max:        math.MaxInt32,
		Value:      &p.settings.Seed,
	})
	p.newGame()
	return p
}

// Run reads commands from in until quit or end of input.
// Commands other than stop wait for the running search to finish.
func (p *Protocol) Run(logger zerolog.Logger, in io.Reader, out io.Writer) {
	p.logger = logger
	p.out = out

	var commands = make(chan string)
	go func() {
		defer close(commands)
		readCommands(in, commands)
	}()

	for {
		select {
		case si, ok := <-p.engineOutput:
			p.onEngineOutput(si, ok)
		case commandLine, ok := <-commands:
			if !ok {
				p.waitSearch()
				return
			}
			if commandLine == "quit" {
				if p.cancel != nil {
					p.cancel()
				}
				p.waitSearch()
				return
			}
			if p.thinking && commandLine != "stop" {
				p.waitSearch()
			}
			if err := p.handle(commandLine); err != nil {
				p.logger.Error().Err(err).Str("command", commandLine).Msg("command failed")
			}
		}
	}
}

func readCommands(in io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		commands <- commandLine
		if commandLine == "quit" {
			return
		}
	}
}

func (p *Protocol) onEngineOutput(si common.SearchInfo, ok bool) {
	if ok {
		fmt.Fprintln(p.out, searchInfoString(si))
		p.search.result = si
		return
	}
	var result = p.search.result
	if p.search.play && result.Move != common.CellNone {
		p.position.Apply(result.Move, p.search.side)
		p.firstTurn = false
	}
	fmt.Fprintf(p.out, "bestmove %v\n", result.Column)
	p.logger.Debug().
		Int("column", result.Column).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Int64("nodes", result.Nodes).
		Dur("time", result.Time).
		Msg("search finished")
	p.thinking = false
	p.cancel = nil
	p.engineOutput = nil
	p.search = pendingSearch{}
}

func (p *Protocol) waitSearch() {
	if !p.thinking {
		return
	}
	for {
		var si, ok = <-p.engineOutput
		p.onEngineOutput(si, ok)
		if !ok {
			return
		}
	}
}

func (p *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if commandName == "stop" {
		if p.cancel != nil {
			p.cancel()
		}
		return nil
	}
	if p.thinking {
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "about":
		h = p.aboutCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "newgame":
		h = p.newGameCommand
	case "position":
		h = p.positionCommand
	case "go":
		h = p.goCommand
	case "turn":
		h = p.turnCommand
	case "board":
		h = p.boardCommand
	}

	if h == nil {
		return errCommandNotFound
	}

	return h(fields)
}

func (p *Protocol) aboutCommand(fields []string) error {
	fmt.Fprintf(p.out, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Fprintln(p.out, option.String())
	}
	fmt.Fprintln(p.out, "aboutok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range p.options {
		if strings.EqualFold(option.Name(), name) {
			return option.Set(value)
		}
	}
	return errors.Errorf("unhandled option %v", name)
}

func (p *Protocol) isReadyCommand(fields []string) error {
	p.engine.Prepare()
	fmt.Fprintln(p.out, "readyok")
	return nil
}

func (p *Protocol) newGameCommand(fields []string) error {
	p.engine.Clear()
	p.newGame()
	return nil
}

func (p *Protocol) newGame() {
	p.ensureZobrist()
	p.position = common.NewPosition(p.zobrist)
	p.firstTurn = true
}

// ensureZobrist rebuilds the keys when the Seed option changed. Seed 0 means random keys.
func (p *Protocol) ensureZobrist() {
	if p.zobrist != nil && p.zobristSeed == p.settings.Seed {
		return
	}
	if p.settings.Seed == 0 {
		p.zobrist = common.NewRandomZobrist()
	} else {
		p.zobrist = common.NewZobrist(uint64(p.settings.Seed))
	}
	if p.zobristSeed != p.settings.Seed {
		p.engine.Clear()
	}
	p.zobristSeed = p.settings.Seed
}

func (p *Protocol) positionCommand(fields []string) error {
	var columns []int
	if len(fields) != 0 {
		if fields[0] != "moves" {
			return errors.Errorf("unknown position argument %v", fields[0])
		}
		for _, s := range fields[1:] {
			var column, err = strconv.Atoi(s)
			if err != nil {
				return errors.Wrapf(err, "parse column %q", s)
			}
			columns = append(columns, column)
		}
	}
	p.ensureZobrist()
	var position, err = common.NewPositionFromColumns(p.zobrist, columns)
	if err != nil {
		return errors.Wrap(err, "position")
	}
	p.position = position
	p.firstTurn = position.NumMoves() <= 1
	return nil
}

func (p *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	if limits == (common.LimitsType{}) {
		limits.MoveTime = p.turnBudget()
	}
	return p.startSearch(p.sideToMove(), limits, false)
}

// turnCommand is "turn <side> <opponentColumn|-1> [budgetMs]".
// The opponent's column is dropped first, then the chosen move is played on the board.
func (p *Protocol) turnCommand(fields []string) error {
	if len(fields) < 2 {
		return errors.New("invalid turn arguments")
	}
	var side, err = parseSide(fields[0])
	if err != nil {
		return err
	}
	opponentColumn, err := strconv.Atoi(fields[1])
	if err != nil {
		return errors.Wrapf(err, "parse column %q", fields[1])
	}
	var budget = 0
	if len(fields) >= 3 {
		budget, err = strconv.Atoi(fields[2])
		if err != nil || budget < 0 {
			return errors.Errorf("invalid budget %q", fields[2])
		}
	}
	if budget == 0 {
		budget = p.turnBudget()
	}

	if opponentColumn != common.ColumnNone {
		if p.sideToMove() != side.Opponent() {
			return errors.Errorf("%v is not to move", side.Opponent())
		}
		if p.position.IsTerminal() {
			return errGameOver
		}
		var cell, ok = p.position.DropCell(opponentColumn)
		if !ok {
			return errors.Errorf("illegal column %v", opponentColumn)
		}
		p.position.Apply(cell, side.Opponent())
	}
	if p.sideToMove() != side {
		return errors.Errorf("%v is not to move", side)
	}
	if p.position.IsTerminal() {
		return errGameOver
	}
	return p.startSearch(side, common.LimitsType{MoveTime: budget}, true)
}

func (p *Protocol) startSearch(side common.Side, limits common.LimitsType, play bool) error {
	var ctx, cancel = context.WithCancel(context.Background())
	p.cancel = cancel
	p.thinking = true
	p.search = pendingSearch{side: side, play: play}
	var engineOutput = make(chan common.SearchInfo, 3)
	p.engineOutput = engineOutput
	var game = p.position
	go func() {
		defer cancel()
		var searchResult = p.engine.Search(ctx, common.SearchParams{
			Game:   game,
			Side:   side,
			Limits: limits,
			Progress: func(si common.SearchInfo) {
				select {
				case engineOutput <- si:
				default:
				}
			},
		})
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func (p *Protocol) turnBudget() int {
	if p.firstTurn {
		return p.settings.FirstTurnMs
	}
	return p.settings.TurnMs
}

// sideToMove follows from the number of stones: Red always starts.
func (p *Protocol) sideToMove() common.Side {
	return common.Side(p.position.NumMoves() & 1)
}

func searchInfoString(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.Score)
	var timeMs = si.Time.Milliseconds()
	fmt.Fprintf(sb, " nodes %v time %v", si.Nodes, timeMs)
	if si.Column != common.ColumnNone {
		fmt.Fprintf(sb, " pv %v", si.Column)
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "movetime":
			if i+1 >= len(args) {
				return result, errors.Errorf("missing value for %v", args[i])
			}
			var v, convErr = strconv.Atoi(args[i+1])
			if convErr != nil || v < 0 {
				return result, errors.Errorf("invalid %v %q", args[i], args[i+1])
			}
			if args[i] == "depth" {
				result.Depth = v
			} else {
				result.MoveTime = v
			}
			i++
		case "infinite":
			result.Infinite = true
		default:
			return result, errors.Errorf("unknown go argument %v", args[i])
		}
	}
	return
}

func parseSide(s string) (common.Side, error) {
	switch strings.ToLower(s) {
	case "red", "0":
		return common.Red, nil
	case "yellow", "1":
		return common.Yellow, nil
	}
	return common.Red, errors.Errorf("unknown side %q", s)
}
