package engine

import (
	"context"
	"time"

	"github.com/counterfour/counterfour/pkg/common"
)

// timeManager is consulted between iterations only: a started depth always completes.
type timeManager struct {
	start  time.Time
	limits common.LimitsType
	budget time.Duration
	ctx    context.Context
	cancel context.CancelFunc
}

func newTimeManager(ctx context.Context, start time.Time,
	limits common.LimitsType) *timeManager {

	var tm = &timeManager{
		start:  start,
		limits: limits,
	}
	if limits.MoveTime > 0 {
		tm.budget = time.Duration(limits.MoveTime) * time.Millisecond
	}
	tm.ctx, tm.cancel = context.WithCancel(ctx)
	return tm
}

func (tm *timeManager) IsDone() bool {
	return tm.ctx.Err() != nil
}

func (tm *timeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Infinite {
		return
	}
	if tm.limits.Depth != 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	if isDecisive(line.score) {
		tm.cancel()
		return
	}
	if tm.budget != 0 &&
		time.Since(tm.start) >= tm.budget {
		tm.cancel()
		return
	}
}

func (tm *timeManager) Close() {
	tm.cancel()
}
