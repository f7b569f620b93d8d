package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

var ErrCellRequired = errors.New("cell is required")

// handleConnect - returns the connection's session, or switches to the one named by session_id.
func (that *Server) handleConnect(ctx context.Context, conn *connection, req *Request) (*entity.Session, error) {
	session, err := that.gameUseCase.GetOrCreateSession(ctx, conn.resolveSession(req))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	conn.sessionID = session.ID
	that.logger.Info("connected to session", "sessionID", session.ID)

	return session, nil
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, req *Request) (*entity.Session, error) {
	if req.Cell == nil {
		return nil, ErrCellRequired
	}

	return that.gameUseCase.MakeTurn(ctx, conn.resolveSession(req), *req.Cell)
}

func (that *Server) handleReset(ctx context.Context, conn *connection, req *Request) (*entity.Session, error) {
	return that.gameUseCase.ResetGame(ctx, conn.resolveSession(req))
}

func (that *Server) handleNextRound(ctx context.Context, conn *connection, req *Request) (*entity.Session, error) {
	return that.gameUseCase.NextRound(ctx, conn.resolveSession(req))
}

// clientError - hides internal failures behind a generic message, like the REST API does.
// The bool reports whether err is the client's fault.
func clientError(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrSessionNotFound),
		errors.Is(err, ErrCellRequired):
		return err.Error(), true
	default:
		return http.StatusText(http.StatusInternalServerError), false
	}
}
