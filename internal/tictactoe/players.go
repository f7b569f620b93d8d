package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	playerA = 0
	playerB = 1
)

// PlayerSet owns both players and tracks whose turn it is.
type PlayerSet struct {
	players [2]entity.Player
	active  int
}

// NewPlayerSet - player one plays O, player two plays X, player one is active.
func NewPlayerSet() *PlayerSet {
	return &PlayerSet{
		players: [2]entity.Player{
			{Name: "Player One", Mark: entity.MarkO},
			{Name: "Player Two", Mark: entity.MarkX},
		},
		active: playerA,
	}
}

// Players - returns copies of player A and player B, in that order.
func (that *PlayerSet) Players() [2]entity.Player {
	return that.players
}

func (that *PlayerSet) ActivePlayer() entity.Player {
	return that.players[that.active]
}

// SwitchActivePlayer - hands the turn to the other player and returns them.
func (that *PlayerSet) SwitchActivePlayer() entity.Player {
	if that.active == playerA {
		that.active = playerB
	} else {
		that.active = playerA
	}

	return that.players[that.active]
}

// IncrementActiveScore - adds a point to the active player and returns the new score.
func (that *PlayerSet) IncrementActiveScore() int {
	that.players[that.active].Score++

	return that.players[that.active].Score
}

func (that *PlayerSet) Reset() {
	that.players[playerA].Score = 0
	that.players[playerB].Score = 0
	that.active = playerA
}

func restorePlayerSet(players [2]entity.Player, activeMark entity.Mark) (*PlayerSet, error) {
	if players[playerA].Mark != entity.MarkO || players[playerB].Mark != entity.MarkX {
		return nil, fmt.Errorf("%w: players must hold %s and %s", apperror.ErrInvalidState, entity.MarkO, entity.MarkX)
	}

	for _, player := range players {
		if player.Score < 0 {
			return nil, fmt.Errorf("%w: negative score for %s", apperror.ErrInvalidState, player.Mark)
		}
	}

	set := &PlayerSet{players: players}

	switch activeMark {
	case players[playerA].Mark:
		set.active = playerA
	case players[playerB].Mark:
		set.active = playerB
	default:
		return nil, fmt.Errorf("%w: active mark %q", apperror.ErrInvalidState, activeMark)
	}

	return set, nil
}
