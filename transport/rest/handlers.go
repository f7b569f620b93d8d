package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type gameUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error)
	ResetGame(ctx context.Context, id string) (*entity.Session, error)
	NextRound(ctx context.Context, id string) (*entity.Session, error)
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type sessionHandler struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func newSessionHandler(logger *slog.Logger, gameUseCase gameUseCase) *sessionHandler {
	return &sessionHandler{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *sessionHandler) create(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "create", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *sessionHandler) get(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "get", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *sessionHandler) remove(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *sessionHandler) turn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": 0-8}"})
		return
	}

	session, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "sessionID"), *req.Cell)
	if err != nil {
		that.writeError(w, "turn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *sessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.ResetGame(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "reset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *sessionHandler) nextRound(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.NextRound(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "next-round", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *sessionHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *sessionHandler) writeError(w http.ResponseWriter, action string, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "action", action, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, tictactoe.ErrCellOccupied), errors.Is(err, apperror.ErrRoundFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
