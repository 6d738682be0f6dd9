package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("coordinates are out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrGameAlreadyOver  = errors.New("game is already over")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrGameNotFound     = errors.New("game not found")
	ErrTooManyGames     = errors.New("too many active games")
)

// Code returns a stable machine-readable name for the error kind. Wording
// for users is left to the client.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrInvalidBoardSize):
		return "invalid_board_size"
	case errors.Is(err, ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, ErrGameAlreadyOver):
		return "game_already_over"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrTooManyGames):
		return "too_many_games"
	default:
		return "internal_error"
	}
}
