package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var (
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", apperror.ErrInvalidMove)
	ErrInvalidMark  = fmt.Errorf("%w: mark must belong to a player", apperror.ErrInvalidMove)
	ErrInvalidCell  = fmt.Errorf("%w: %w", apperror.ErrInvalidMove, entity.ErrInvalidCell)
)

// Board owns the grid and the number of filled cells.
type Board struct {
	grid   entity.Grid
	filled int
}

func NewBoard() *Board {
	return &Board{}
}

// Get - returns a copy of the grid.
func (that *Board) Get() entity.Grid {
	return that.grid
}

func (that *Board) FilledCount() int {
	return that.filled
}

// At - returns the mark at (row, col), EmptyCell for coordinates off the board.
func (that *Board) At(row, col int) entity.Mark {
	if !(entity.Coordinate{Row: row, Col: col}).IsValid() {
		return entity.EmptyCell
	}

	return that.grid[row][col]
}

// SetMarker - writes the mark into an empty cell. A rejected call leaves the board unchanged.
func (that *Board) SetMarker(row, col int, mark entity.Mark) error {
	if !(entity.Coordinate{Row: row, Col: col}).IsValid() {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, row, col)
	}

	if !mark.IsPlayerMark() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that.grid[row][col] != entity.EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, row, col)
	}

	that.grid[row][col] = mark
	that.filled++

	return nil
}

func (that *Board) Reset() {
	that.grid = entity.Grid{}
	that.filled = 0
}

// restoreBoard - rebuilds a board from a snapshot, checking the filled counter.
func restoreBoard(grid entity.Grid, filled int) (*Board, error) {
	count := 0
	for _, row := range grid {
		for _, mark := range row {
			switch {
			case mark == entity.EmptyCell:
			case mark.IsPlayerMark():
				count++
			default:
				return nil, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidState, mark)
			}
		}
	}

	if count != filled {
		return nil, fmt.Errorf("%w: filled count %d, board holds %d marks", apperror.ErrInvalidState, filled, count)
	}

	return &Board{grid: grid, filled: filled}, nil
}
