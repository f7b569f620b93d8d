package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var errStorageDown = errors.New("storage down")

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestManager(repo sessionRepo) (*GameManager, *metrics.Metrics) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	return NewGameManager(logger, repo, m), m
}

func playCells(ctx context.Context, t *testing.T, manager *GameManager, id string, cells ...int) *entity.Session {
	t.Helper()

	var session *entity.Session
	for _, cell := range cells {
		var err error
		session, err = manager.MakeTurn(ctx, id, cell)
		require.NoError(t, err, "cell %d", cell)
	}

	return session
}

func TestGameManager_CreateSession(t *testing.T) {
	ctx := context.Background()
	manager, m := newTestManager(repository.NewMemorySessionRepository())

	// When: creating a session
	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// Then: it holds a fresh game and can be fetched back
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, tictactoe.NewGame().Snapshot(), session.State)
	assert.Equal(t, entity.StatusOngoing, session.Outcome.Status)

	stored, err := manager.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session, stored)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SessionsCreated), 0)
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Alternates players and persists the board", func(t *testing.T) {
		manager, m := newTestManager(repository.NewMemorySessionRepository())
		session, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: player one clicks cell 4
		session = playCells(ctx, t, manager, session.ID, 4)

		// Then: O is in the centre and X is to move
		assert.Equal(t, entity.MarkO, session.State.Board[1][1])
		assert.Equal(t, entity.MarkX, session.State.ActiveMark)
		assert.Equal(t, 1, session.State.FilledCount)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Moves), 0)
	})

	t.Run("Scores the winner and finishes the round", func(t *testing.T) {
		manager, m := newTestManager(repository.NewMemorySessionRepository())
		session, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: O completes the left column
		session = playCells(ctx, t, manager, session.ID, 0, 1, 3, 2, 6)

		// Then: the round is won by O with column 0 and O scored
		require.Equal(t, entity.StatusWon, session.Outcome.Status)
		require.NotNil(t, session.Outcome.Winner)
		assert.Equal(t, entity.LineColumn, session.Outcome.Winner.Kind)
		assert.Equal(t, 1, session.State.Players[0].Score)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Rounds.WithLabelValues("won_O")), 0)

		// When: another click arrives
		after, err := manager.MakeTurn(ctx, session.ID, 8)

		// Then: it is refused and the session is unchanged
		require.ErrorIs(t, err, apperror.ErrRoundFinished)
		assert.Equal(t, session.State, after.State)
		assert.InDelta(t, 1, testutil.ToFloat64(m.InvalidMoves), 0)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		manager, _ := newTestManager(repository.NewMemorySessionRepository())
		session, err := manager.CreateSession(ctx)
		require.NoError(t, err)
		session = playCells(ctx, t, manager, session.ID, 0)

		after, err := manager.MakeTurn(ctx, session.ID, 0)

		require.ErrorIs(t, err, tictactoe.ErrCellOccupied)
		assert.Equal(t, session.State, after.State)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager, _ := newTestManager(repository.NewMemorySessionRepository())

		_, err := manager.MakeTurn(ctx, "missing", 0)

		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Storage failure is reported", func(t *testing.T) {
		// Given: a repository that loads but cannot save
		repo := &mockSessionRepo{}
		manager, _ := newTestManager(repo)

		stored := &entity.Session{ID: "abc", State: tictactoe.NewGame().Snapshot()}
		repo.On("GetByID", mock.Anything, "abc").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Session")).Return(errStorageDown).Once()

		// When: a move is made
		session, err := manager.MakeTurn(ctx, "abc", 4)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errStorageDown)
		assert.Nil(t, session)
		repo.AssertExpectations(t)
	})

	t.Run("Corrupt snapshot is rejected", func(t *testing.T) {
		repo := &mockSessionRepo{}
		manager, _ := newTestManager(repo)

		state := tictactoe.NewGame().Snapshot()
		state.FilledCount = 5
		repo.On("GetByID", mock.Anything, "abc").Return(&entity.Session{ID: "abc", State: state}, nil).Once()

		_, err := manager.MakeTurn(ctx, "abc", 4)

		require.ErrorIs(t, err, apperror.ErrInvalidState)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})
}

func TestGameManager_NextRound(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(repository.NewMemorySessionRepository())
	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// Given: O won a round
	won := playCells(ctx, t, manager, session.ID, 0, 3, 1, 4, 2)

	// When: the next round starts
	next, err := manager.NextRound(ctx, session.ID)
	require.NoError(t, err)

	// Then: scores are kept exactly and the board is empty
	assert.Equal(t, won.State.Players, next.State.Players)
	assert.Equal(t, entity.Grid{}, next.State.Board)
	assert.Equal(t, 0, next.State.FilledCount)
	assert.Equal(t, entity.MarkO, next.State.ActiveMark)
	assert.Equal(t, entity.Outcome{Status: entity.StatusOngoing}, next.Outcome)
}

func TestGameManager_ResetGame(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(repository.NewMemorySessionRepository())
	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// Given: O won a round and X has made a move in the next one
	playCells(ctx, t, manager, session.ID, 0, 3, 1, 4, 2)
	_, err = manager.NextRound(ctx, session.ID)
	require.NoError(t, err)
	playCells(ctx, t, manager, session.ID, 4)

	// When: resetting the game
	reset, err := manager.ResetGame(ctx, session.ID)
	require.NoError(t, err)

	// Then: both scores are zero and player one is to move
	assert.Equal(t, tictactoe.NewGame().Snapshot(), reset.State)
}

func TestGameManager_GetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(repository.NewMemorySessionRepository())

	t.Run("Resumes an existing session", func(t *testing.T) {
		session, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		resumed, err := manager.GetOrCreateSession(ctx, session.ID)

		require.NoError(t, err)
		assert.Equal(t, session.ID, resumed.ID)
	})

	t.Run("Creates a session for an unknown ID", func(t *testing.T) {
		created, err := manager.GetOrCreateSession(ctx, "expired")

		require.NoError(t, err)
		assert.NotEqual(t, "expired", created.ID)
	})
}

func TestGameManager_DeleteSession(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(repository.NewMemorySessionRepository())
	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.DeleteSession(ctx, session.ID))

	_, err = manager.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	assert.ErrorIs(t, manager.DeleteSession(ctx, session.ID), apperror.ErrSessionNotFound)
}

// gatedRepo pauses the first GetByID until release is closed.
type gatedRepo struct {
	sessionRepo

	armed   atomic.Bool
	loaded  chan struct{}
	release chan struct{}
}

func newGatedRepo(inner sessionRepo) *gatedRepo {
	return &gatedRepo{
		sessionRepo: inner,
		loaded:      make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (that *gatedRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)

	if that.armed.CompareAndSwap(true, false) {
		close(that.loaded)
		<-that.release
	}

	return session, err
}

func TestGameManager_DeleteWaitsForRunningTurn(t *testing.T) {
	ctx := context.Background()
	repo := newGatedRepo(repository.NewMemorySessionRepository())
	manager, _ := newTestManager(repo)

	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// Given: a turn that has loaded the session and is paused before saving
	repo.armed.Store(true)

	turnErr := make(chan error, 1)
	go func() {
		_, err := manager.MakeTurn(ctx, session.ID, 4)
		turnErr <- err
	}()

	<-repo.loaded

	// When: the session is deleted meanwhile
	deleteErr := make(chan error, 1)
	go func() {
		deleteErr <- manager.DeleteSession(ctx, session.ID)
	}()

	// Then: the delete waits for the turn
	select {
	case err = <-deleteErr:
		t.Fatalf("delete finished while a turn was running: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)

	require.NoError(t, <-turnErr)
	require.NoError(t, <-deleteErr)

	// Then: the session stays deleted
	_, err = manager.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestGameManager_ConcurrentTurnsAreSerialized(t *testing.T) {
	ctx := context.Background()
	manager, m := newTestManager(repository.NewMemorySessionRepository())

	session, err := manager.CreateSession(ctx)
	require.NoError(t, err)

	// When: many clicks on the same session arrive at once, several per cell
	const clicks = 36

	var (
		wg       sync.WaitGroup
		accepted atomic.Int64
	)

	for i := range clicks {
		wg.Add(1)

		go func(cell int) {
			defer wg.Done()

			if _, err := manager.MakeTurn(ctx, session.ID, cell); err == nil {
				accepted.Add(1)
			}
		}(i % entity.CellCount)
	}

	wg.Wait()

	// Then: every accepted click is on the board exactly once
	stored, err := manager.GetSession(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, int(accepted.Load()), stored.State.FilledCount)
	assert.InDelta(t, float64(accepted.Load()), testutil.ToFloat64(m.Moves), 0)
	assert.InDelta(t, float64(clicks-accepted.Load()), testutil.ToFloat64(m.InvalidMoves), 0)

	_, err = tictactoe.Restore(stored.State)
	assert.NoError(t, err)
}
