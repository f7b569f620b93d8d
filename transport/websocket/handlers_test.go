package websocket

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

func TestClientError(t *testing.T) {
	internal := http.StatusText(http.StatusInternalServerError)

	tests := []struct {
		name     string
		err      error
		want     string
		rejected bool
	}{
		{"occupied cell", tictactoe.ErrCellOccupied, tictactoe.ErrCellOccupied.Error(), true},
		{"finished round", tictactoe.ErrRoundFinished, tictactoe.ErrRoundFinished.Error(), true},
		{"unknown session", fmt.Errorf("failed to get session: %w", apperror.ErrSessionNotFound),
			"failed to get session: " + apperror.ErrSessionNotFound.Error(), true},
		{"missing cell", ErrCellRequired, ErrCellRequired.Error(), true},
		{"storage failure", errors.New("redis: connection refused"), internal, false},
		{"corrupt snapshot", apperror.ErrInvalidState, internal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rejected := clientError(tt.err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rejected, rejected)
		})
	}
}
