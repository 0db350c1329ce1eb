package arena

import (
	"context"

	"github.com/google/uuid"

	"github.com/counterfour/counterfour/pkg/common"
)

// AllOpenings lists every pair of first moves, so 81 openings on a 9 column board.
func AllOpenings() [][]int {
	var result [][]int
	for first := 0; first < common.Width; first++ {
		for second := 0; second < common.Width; second++ {
			result = append(result, []int{first, second})
		}
	}
	return result
}

// loadOpenings sends every opening twice: engine A plays red first, then yellow.
func loadOpenings(
	ctx context.Context,
	openings [][]int,
	gameInfos chan<- gameInfo,
) error {
	for i, opening := range openings {
		for j, engineAIsRed := range []bool{true, false} {
			var info = gameInfo{
				id:           uuid.New(),
				gameNumber:   1 + 2*i + j,
				opening:      opening,
				engineAIsRed: engineAIsRed,
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
	}
	return nil
}
