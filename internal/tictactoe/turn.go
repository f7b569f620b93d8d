package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// TakeTurn - handles a click on a cell: play, then the winner check (scoring the
// active player), then the draw check, and only if the round goes on the turn switch.
func TakeTurn(game *Game, cell int) (entity.Outcome, error) {
	pos, err := entity.CoordinateFromIndex(cell)
	if err != nil {
		return game.Outcome(), fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if err = game.Play(pos.Row, pos.Col); err != nil {
		return game.Outcome(), err
	}

	if winner, ok := game.CheckWinner(); ok {
		game.IncrementActiveScore()
		return entity.Outcome{Status: entity.StatusWon, Winner: &winner}, nil
	}

	if game.CheckDraw() {
		return entity.Outcome{Status: entity.StatusDraw}, nil
	}

	game.SwitchActivePlayer()

	return entity.Outcome{Status: entity.StatusOngoing}, nil
}
