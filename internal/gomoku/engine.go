package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Engine enforces the rules for a single game. It owns exactly one board and
// one state and is not safe for concurrent use. The zero value starts a game
// on a default-size board the first time it is used.
type Engine struct {
	board *entity.Board
	state entity.GameState
}

// New returns an engine with an empty board of the default size.
func New() *Engine {
	engine, err := NewWithSize(entity.DefaultBoardSize)
	if err != nil {
		panic(fmt.Errorf("default board size rejected: %w", err))
	}

	return engine
}

func NewWithSize(size int) (*Engine, error) {
	engine := &Engine{}
	if err := engine.NewGame(size); err != nil {
		return nil, err
	}

	return engine, nil
}

// NewGame abandons the current game and starts over on an empty board of the
// given size. Board and state are replaced together or not at all.
func (that *Engine) NewGame(size int) error {
	if that.board != nil && that.board.Size() == size {
		that.board.Reset()
		that.state = entity.NewGameState(size)

		return nil
	}

	board, err := entity.NewBoard(size)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	that.board = board
	that.state = entity.NewGameState(size)

	return nil
}

// ApplyMove places the current player's stone at (x, y). On error nothing
// about the game has changed.
func (that *Engine) ApplyMove(x, y int) (entity.MoveResult, error) {
	that.ensureGame()

	if err := that.validateMove(x, y); err != nil {
		return entity.MoveResult{}, fmt.Errorf("invalid move: %w", err)
	}

	player := that.state.CurrentPlayer
	if err := that.board.Set(x, y, player); err != nil {
		return entity.MoveResult{}, fmt.Errorf("failed to place stone: %w", err)
	}
	that.state.MovesPlayed++

	return that.updateGameStatus(x, y, player), nil
}

func (that *Engine) State() entity.GameState {
	that.ensureGame()

	return that.state
}

// Board returns a copy of the grid indexed as [y][x].
func (that *Engine) Board() [][]entity.Cell {
	that.ensureGame()

	return that.board.Cells()
}

func (that *Engine) ensureGame() {
	if that.board != nil {
		return
	}

	if err := that.NewGame(entity.DefaultBoardSize); err != nil {
		panic(fmt.Errorf("default board size rejected: %w", err))
	}
}

// validateMove - checks the move against the rules without touching the board.
func (that *Engine) validateMove(x, y int) error {
	if that.state.IsOver {
		return apperror.ErrGameAlreadyOver
	}

	cell, err := that.board.Get(x, y)
	if err != nil {
		return err
	}

	if cell != entity.CellEmpty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	return nil
}

// updateGameStatus - settles the outcome after a stone was placed at (x, y).
func (that *Engine) updateGameStatus(x, y int, player entity.Cell) entity.MoveResult {
	result := entity.MoveResult{
		Placed: entity.Point{X: x, Y: y},
		Player: player,
	}

	if line := winningLine(that.board, x, y, player); line != nil {
		that.state.IsOver = true
		that.state.Winner = entity.WinnerOf(player)

		result.Outcome = entity.OutcomeWin
		result.Line = line

		return result
	}

	size := that.board.Size()
	if that.state.MovesPlayed == size*size {
		that.state.IsOver = true
		that.state.Winner = entity.WinnerDraw

		result.Outcome = entity.OutcomeDraw

		return result
	}

	that.state.CurrentPlayer = player.Opponent()

	result.Outcome = entity.OutcomeContinue
	result.NextPlayer = that.state.CurrentPlayer

	return result
}
