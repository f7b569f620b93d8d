package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var ErrRoundFinished = fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrRoundFinished)

// winLines holds the eight lines in scan order: row i before column i,
// ascending i, then the main and the anti diagonal.
var winLines = buildWinLines()

func buildWinLines() []entity.Line {
	lines := make([]entity.Line, 0, 2*entity.BoardSize+2)

	for i := 0; i < entity.BoardSize; i++ {
		row := entity.Line{Kind: entity.LineRow}
		col := entity.Line{Kind: entity.LineColumn}

		for j := 0; j < entity.BoardSize; j++ {
			row.Coordinates[j] = entity.Coordinate{Row: i, Col: j}
			col.Coordinates[j] = entity.Coordinate{Row: j, Col: i}
		}

		lines = append(lines, row, col)
	}

	mainDiagonal := entity.Line{Kind: entity.LineDiagonalMain}
	antiDiagonal := entity.Line{Kind: entity.LineDiagonalAnti}

	for i := 0; i < entity.BoardSize; i++ {
		mainDiagonal.Coordinates[i] = entity.Coordinate{Row: i, Col: i}
		antiDiagonal.Coordinates[i] = entity.Coordinate{Row: i, Col: entity.BoardSize - 1 - i}
	}

	return append(lines, mainDiagonal, antiDiagonal)
}

// Game composes the board and the players of one table.
type Game struct {
	board   *Board
	players *PlayerSet
}

func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		players: NewPlayerSet(),
	}
}

func (that *Game) Board() entity.Grid {
	return that.board.Get()
}

func (that *Game) FilledCount() int {
	return that.board.FilledCount()
}

func (that *Game) Players() [2]entity.Player {
	return that.players.Players()
}

func (that *Game) ActivePlayer() entity.Player {
	return that.players.ActivePlayer()
}

func (that *Game) SwitchActivePlayer() entity.Player {
	return that.players.SwitchActivePlayer()
}

func (that *Game) IncrementActiveScore() int {
	return that.players.IncrementActiveScore()
}

// Play - writes the active player's mark at (row, col).
// It neither switches turns nor evaluates the round; see TakeTurn.
func (that *Game) Play(row, col int) error {
	if that.Outcome().IsFinished() {
		return ErrRoundFinished
	}

	if err := that.board.SetMarker(row, col, that.players.ActivePlayer().Mark); err != nil {
		return err
	}

	return nil
}

// CheckWinner - returns the first fully occupied line in scan order.
func (that *Game) CheckWinner() (entity.WinResult, bool) {
	for _, line := range winLines {
		a := that.board.At(line.Coordinates[0].Row, line.Coordinates[0].Col)
		b := that.board.At(line.Coordinates[1].Row, line.Coordinates[1].Col)
		c := that.board.At(line.Coordinates[2].Row, line.Coordinates[2].Col)

		if a != entity.EmptyCell && a == b && b == c {
			return entity.WinResult{Line: line, Mark: a}, true
		}
	}

	return entity.WinResult{}, false
}

// CheckDraw reports a full board. Check the winner first: a full board can also be a win.
func (that *Game) CheckDraw() bool {
	return that.board.FilledCount() == entity.CellCount
}

// Outcome - evaluates the round in click contract order: winner first, then draw.
func (that *Game) Outcome() entity.Outcome {
	if winner, ok := that.CheckWinner(); ok {
		return entity.Outcome{Status: entity.StatusWon, Winner: &winner}
	}

	if that.CheckDraw() {
		return entity.Outcome{Status: entity.StatusDraw}
	}

	return entity.Outcome{Status: entity.StatusOngoing}
}

// ResetGame - clears the board, zeroes both scores and gives the turn to player one.
func (that *Game) ResetGame() {
	that.board.Reset()
	that.players.Reset()
}

// NextRound - clears the board only. Scores and the active player carry over.
func (that *Game) NextRound() {
	that.board.Reset()
}
