package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const minMaintainInterval = 500 * time.Millisecond

// session is one independent game. Its mutex serializes calls into the engine.
type session struct {
	mu         sync.Mutex
	engine     *gomoku.Engine
	lastActive time.Time
}

// GameManager keeps the active game sessions in memory.
type GameManager struct {
	logger *slog.Logger

	defaultSize int
	maxSessions int
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, defaultSize, maxSessions int) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		defaultSize: defaultSize,
		maxSessions: maxSessions,
		now:         time.Now,

		sessions: make(map[string]*session),
	}
}

// CreateGame starts a new session. A size of zero selects the default size.
func (that *GameManager) CreateGame(ctx context.Context, size int) (*entity.GameSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine, err := gomoku.NewWithSize(that.boardSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.sessions) >= that.maxSessions {
		return nil, apperror.ErrTooManyGames
	}

	gameID := pkg.GenerateGameID()
	that.sessions[gameID] = &session{
		engine:     engine,
		lastActive: that.now(),
	}

	that.logger.Info("game created", "gameID", gameID, "size", engine.State().Size)

	return snapshot(gameID, engine), nil
}

// ResetGame abandons the current game of a session and starts a fresh one.
func (that *GameManager) ResetGame(ctx context.Context, gameID string, size int) (*entity.GameSnapshot, error) {
	sess, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = sess.engine.NewGame(that.boardSize(size)); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}
	sess.lastActive = that.now()

	that.logger.Info("game reset", "gameID", gameID, "size", sess.engine.State().Size)

	return snapshot(gameID, sess.engine), nil
}

func (that *GameManager) MakeTurn(ctx context.Context, gameID string, x, y int) (entity.MoveResult, *entity.GameSnapshot, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	sess, err := that.getSession(ctx, gameID)
	if err != nil {
		return entity.MoveResult{}, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.ApplyMove(x, y)
	if err != nil {
		log.Debug("move rejected", "x", x, "y", y, "error", err)
		return entity.MoveResult{}, nil, fmt.Errorf("failed make turn: %w", err)
	}
	sess.lastActive = that.now()

	if result.Outcome != entity.OutcomeContinue {
		log.Info("game finished", "outcome", result.Outcome.String(), "winner", sess.engine.State().Winner.String())
	}

	return result, snapshot(gameID, sess.engine), nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.GameSnapshot, error) {
	sess, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return snapshot(gameID, sess.engine), nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[gameID]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}
	delete(that.sessions, gameID)

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// CleanupIdle drops sessions untouched for longer than ttl and returns how
// many were removed.
func (that *GameManager) CleanupIdle(ttl time.Duration) int {
	deadline := that.now().Add(-ttl)

	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for gameID, sess := range that.sessions {
		sess.mu.Lock()
		idle := sess.lastActive.Before(deadline)
		sess.mu.Unlock()

		if idle {
			delete(that.sessions, gameID)
			removed++
		}
	}

	if removed > 0 {
		that.logger.Info("idle games removed", "count", removed)
	}

	return removed
}

// MaintainGames runs CleanupIdle every interval until ctx is done. Intervals
// shorter than minMaintainInterval are raised to it.
func (that *GameManager) MaintainGames(ctx context.Context, interval, ttl time.Duration) {
	if interval < minMaintainInterval {
		interval = minMaintainInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.CleanupIdle(ttl)
		}
	}
}

func (that *GameManager) getSession(ctx context.Context, gameID string) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	sess, ok := that.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	return sess, nil
}

func (that *GameManager) boardSize(size int) int {
	if size == 0 {
		return that.defaultSize
	}

	return size
}

func snapshot(gameID string, engine *gomoku.Engine) *entity.GameSnapshot {
	return &entity.GameSnapshot{
		ID:    gameID,
		State: engine.State(),
		Board: entity.EncodeRows(engine.Board()),
	}
}
