package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Snapshot - captures the game so it can be stored and restored later.
func (that *Game) Snapshot() entity.GameState {
	return entity.GameState{
		Board:       that.board.Get(),
		FilledCount: that.board.FilledCount(),
		Players:     that.players.Players(),
		ActiveMark:  that.players.ActivePlayer().Mark,
	}
}

// Restore - rebuilds a game from a snapshot, rejecting inconsistent ones.
func Restore(state entity.GameState) (*Game, error) {
	board, err := restoreBoard(state.Board, state.FilledCount)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}

	players, err := restorePlayerSet(state.Players, state.ActiveMark)
	if err != nil {
		return nil, fmt.Errorf("failed to restore players: %w", err)
	}

	return &Game{board: board, players: players}, nil
}
