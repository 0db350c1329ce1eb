package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/counterfour/counterfour/pkg/common"
)

// Each test is "columns played | accepted best columns".
var tacticTests = []string{
	"0 1 0 1 0 1 | 0",
	"4 4 3 3 2 2 | 1 5",
	"0 8 1 8 2 | 3",
	"4 4 5 5 | 3 6",
	"8 0 8 0 8 | 8",
}

type tacticItem struct {
	columns []int
	best    []int
}

func parseTactic(s string) (tacticItem, error) {
	var parts = strings.Split(s, "|")
	if len(parts) != 2 {
		return tacticItem{}, errors.Errorf("bad tactic test %q", s)
	}
	var columns, err = parseColumns(parts[0])
	if err != nil {
		return tacticItem{}, err
	}
	best, err := parseColumns(parts[1])
	if err != nil {
		return tacticItem{}, err
	}
	return tacticItem{columns: columns, best: best}, nil
}

func parseColumns(s string) ([]int, error) {
	var result []int
	for _, field := range strings.Fields(s) {
		var column, err = strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "parse column %q", field)
		}
		result = append(result, column)
	}
	return result, nil
}

func solveTactic(logger zerolog.Logger, eng Engine, zobrist *common.Zobrist, depth int) error {
	var solved = 0
	for _, test := range tacticTests {
		var item, err = parseTactic(test)
		if err != nil {
			return err
		}
		p, err := common.NewPositionFromColumns(zobrist, item.columns)
		if err != nil {
			return errors.Wrapf(err, "tactic test %q", test)
		}
		var si = eng.Search(context.Background(), common.SearchParams{
			Game:   p,
			Side:   common.Side(p.NumMoves() & 1),
			Limits: common.LimitsType{Depth: depth},
		})
		var ok = lo.Contains(item.best, si.Column)
		if ok {
			solved++
		}
		logger.Info().
			Str("test", test).
			Int("column", si.Column).
			Int("score", si.Score).
			Bool("solved", ok).
			Msg("tactic")
	}
	logger.Info().Int("solved", solved).Int("total", len(tacticTests)).Msg("tactic result")
	return nil
}
