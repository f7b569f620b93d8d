package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// render - draws scores, grid and the round status.
func (that *Console) render() {
	players := that.game.Players()

	that.println("")
	that.println(fmt.Sprintf("%s (%s): %d    %s (%s): %d",
		players[0].Name, that.mark(players[0].Mark), players[0].Score,
		players[1].Name, that.mark(players[1].Mark), players[1].Score,
	))
	that.println("")

	grid := that.game.Board()

	for row := range entity.BoardSize {
		cells := make([]string, 0, entity.BoardSize)

		for col := range entity.BoardSize {
			cells = append(cells, that.cell(grid, entity.Coordinate{Row: row, Col: col}))
		}

		that.println(" " + strings.Join(cells, " | "))

		if row < entity.BoardSize-1 {
			that.println("---+---+---")
		}
	}

	that.println("")
	that.println(that.status())
}

func (that *Console) cell(grid entity.Grid, pos entity.Coordinate) string {
	mark := grid[pos.Row][pos.Col]
	if mark == entity.EmptyCell {
		return that.out.String(strconv.Itoa(pos.Index() + 1)).Faint().String()
	}

	if winner := that.outcome.Winner; winner != nil && winner.Contains(pos) {
		return that.out.String(string(mark)).Bold().Reverse().Foreground(that.out.Color(colorWin)).String()
	}

	return that.mark(mark)
}

func (that *Console) mark(mark entity.Mark) string {
	color := colorO
	if mark == entity.MarkX {
		color = colorX
	}

	return that.out.String(string(mark)).Bold().Foreground(that.out.Color(color)).String()
}

func (that *Console) status() string {
	switch that.outcome.Status {
	case entity.StatusWon:
		winner := that.game.ActivePlayer()

		return fmt.Sprintf("%s (%s) wins on %s! n for the next round, r to reset.",
			winner.Name, that.mark(winner.Mark), describeLine(that.outcome.Winner.Line))
	case entity.StatusDraw:
		return "Draw! n for the next round, r to reset."
	default:
		return ""
	}
}

func describeLine(line entity.Line) string {
	first := line.Coordinates[0]

	switch line.Kind {
	case entity.LineRow:
		return fmt.Sprintf("row %d", first.Row+1)
	case entity.LineColumn:
		return fmt.Sprintf("column %d", first.Col+1)
	case entity.LineDiagonalMain:
		return "the main diagonal"
	default:
		return "the anti-diagonal"
	}
}
