package entity

import (
	"errors"
	"fmt"
)

// BoardSize is the side length of the square board.
const BoardSize = 3

// CellCount is the number of cells on the board.
const CellCount = BoardSize * BoardSize

// Mark is the content of a single board cell.
type Mark string

const (
	EmptyCell Mark = ""
	MarkO     Mark = "O"
	MarkX     Mark = "X"
)

var ErrInvalidCell = errors.New("invalid cell index")

// IsPlayerMark reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayerMark() bool {
	return that == MarkO || that == MarkX
}

// Opponent - returns the other player's mark. The empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkO:
		return MarkX
	case MarkX:
		return MarkO
	default:
		return EmptyCell
	}
}

// Coordinate addresses one cell of the board.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// IsValid reports whether the coordinate lies on the board.
func (that Coordinate) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Index - returns the cell number (0-8) of the coordinate, row-major.
func (that Coordinate) Index() int {
	return that.Row*BoardSize + that.Col
}

// CoordinateFromIndex - converts a cell number (0-8) into (row, col).
func CoordinateFromIndex(cell int) (Coordinate, error) {
	if cell < 0 || cell >= CellCount {
		return Coordinate{}, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	return Coordinate{Row: cell / BoardSize, Col: cell % BoardSize}, nil
}
