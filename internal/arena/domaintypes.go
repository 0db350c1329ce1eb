package arena

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/counterfour/counterfour/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultRedWins
	gameResultYellowWins
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// TimeControl limits every move of a game. FixedDepth wins when both are set.
type TimeControl struct {
	FixedDepth int
	FixedTime  time.Duration
}

type Config struct {
	Concurrency int
	TimeControl TimeControl
	Seed        uint64
	Openings    [][]int
	NewEngineA  func() IEngine
	NewEngineB  func() IEngine
}

type gameInfo struct {
	id           uuid.UUID
	gameNumber   int
	opening      []int
	engineAIsRed bool
}

type gameResult struct {
	gameInfo gameInfo
	columns  []int
	comment  string
	result   int
}
