package entity

import "time"

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// Grid is a row-major copy of the board cells.
type Grid [BoardSize][BoardSize]Mark

// GameState is a serializable snapshot of a game between two players.
type GameState struct {
	Board       Grid      `json:"board"`
	FilledCount int       `json:"filled_count"`
	Players     [2]Player `json:"players"`
	ActiveMark  Mark      `json:"active_mark"`
}

// Outcome is the state of the current round as seen by the click contract.
type Outcome struct {
	Status string     `json:"status"`
	Winner *WinResult `json:"winner,omitempty"`
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// Session is a hosted game addressed by ID.
type Session struct {
	ID        string    `json:"id"`
	State     GameState `json:"state"`
	Outcome   Outcome   `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
