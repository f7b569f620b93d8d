package entity

// LineKind tells which of the eight board lines produced a win.
type LineKind string

const (
	LineRow          LineKind = "row"
	LineColumn       LineKind = "column"
	LineDiagonalMain LineKind = "diagonal_main"
	LineDiagonalAnti LineKind = "diagonal_anti"
)

// Line is a straight run of three cells in scan order.
type Line struct {
	Kind        LineKind              `json:"kind"`
	Coordinates [BoardSize]Coordinate `json:"coordinates"`
}

// WinResult describes a line fully occupied by one mark.
type WinResult struct {
	Line
	Mark Mark `json:"mark"`
}

// Contains reports whether the coordinate is one of the line's cells.
func (that Line) Contains(pos Coordinate) bool {
	for _, c := range that.Coordinates {
		if c == pos {
			return true
		}
	}
	return false
}
