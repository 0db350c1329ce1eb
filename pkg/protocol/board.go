package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/samber/lo"

	"github.com/counterfour/counterfour/pkg/common"
)

func (p *Protocol) boardCommand(fields []string) error {
	fmt.Fprint(p.out, renderBoard(termenv.NewOutput(p.out), p.position))
	fmt.Fprintf(p.out, "side %v key %016x\n", p.sideToMove(), p.position.Key())
	return nil
}

// renderBoard draws the top row first with the column numbers used by the protocol below.
// The last move is shown in bold.
func renderBoard(o *termenv.Output, position *common.Position) string {
	var sb = &strings.Builder{}
	var lastMove = position.LastMove()
	for row := common.Height - 1; row >= 0; row-- {
		fmt.Fprintf(sb, "%v ", row+1)
		for column := 0; column < common.Width; column++ {
			var cell = common.MakeCell(column, row)
			var side, ok = position.Owner(cell)
			var style termenv.Style
			switch {
			case !ok:
				style = o.String(".")
			case side == common.Red:
				style = o.String("x").Foreground(o.Color("1"))
			default:
				style = o.String("o").Foreground(o.Color("3"))
			}
			if cell == lastMove {
				style = style.Bold()
			}
			sb.WriteString(" ")
			sb.WriteString(style.String())
		}
		sb.WriteString("\n")
	}
	var columns = lo.Map(lo.Range(common.Width), func(column int, _ int) string {
		return strconv.Itoa(column)
	})
	sb.WriteString("   ")
	sb.WriteString(strings.Join(columns, " "))
	sb.WriteString("\n")
	return sb.String()
}
