package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager hosts hot-seat games for the network transports.
// Every mutation runs under one lock, so game operations never interleave.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	metrics     *metrics.Metrics

	mu  sync.Mutex
	now func() time.Time
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, metrics *metrics.Metrics) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		metrics:     metrics,
		now:         time.Now,
	}
}

// CreateSession - starts a new game with zero scores and player one to move.
func (that *GameManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := tictactoe.NewGame()
	now := that.now().UTC()

	session := &entity.Session{
		ID:        uuid.NewString(),
		State:     game.Snapshot(),
		Outcome:   game.Outcome(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.metrics.SessionsCreated.Inc()
	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// GetOrCreateSession - resumes the session when it still exists, otherwise starts a new one.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return that.CreateSession(ctx)
	}

	session, err := that.GetSession(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.logger.Info("session not found, creating a new one", "sessionID", id)

		return that.CreateSession(ctx)
	}

	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession - removes the session. It waits for a running turn, so a deleted session is never written back.
func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "sessionID", id)

	return nil
}

// MakeTurn - applies a click on cell 0-8 for whoever's turn it is.
// A rejected move returns the unchanged session together with the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", id)

	return that.update(ctx, id, func(game *tictactoe.Game) error {
		outcome, err := tictactoe.TakeTurn(game, cell)
		if err != nil {
			that.metrics.InvalidMoves.Inc()
			log.Debug("move rejected", "cell", cell, "error", err)

			return fmt.Errorf("failed make turn: %w", err)
		}

		that.metrics.Moves.Inc()
		that.metrics.ObserveOutcome(outcome)

		if outcome.IsFinished() {
			log.Info("round finished", "status", outcome.Status)
		}

		return nil
	})
}

// ResetGame - clears the board and both scores.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, func(game *tictactoe.Game) error {
		game.ResetGame()
		return nil
	})
}

// NextRound - clears the board and keeps the scores.
func (that *GameManager) NextRound(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, func(game *tictactoe.Game) error {
		game.NextRound()
		return nil
	})
}

// update - loads the session, applies fn to its game and stores the result.
// When fn fails nothing is stored and the loaded session is returned with the error.
func (that *GameManager) update(
	ctx context.Context,
	id string,
	fn func(game *tictactoe.Game) error,
) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	game, err := tictactoe.Restore(session.State)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if err = fn(game); err != nil {
		return session, err
	}

	session.State = game.Snapshot()
	session.Outcome = game.Outcome()
	session.UpdatedAt = that.now().UTC()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}
