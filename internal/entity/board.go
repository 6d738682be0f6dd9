package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	DefaultBoardSize = 15
	MaxBoardSize     = 100
)

var ErrUnknownValue = errors.New("unknown value")

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "black"
	case CellWhite:
		return "white"
	default:
		return "empty"
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("cell must be a string: %w", err)
	}

	switch name {
	case "empty", "":
		*c = CellEmpty
	case "black":
		*c = CellBlack
	case "white":
		*c = CellWhite
	default:
		return fmt.Errorf("%w: cell %q", ErrUnknownValue, name)
	}

	return nil
}

// Opponent returns the other player's colour. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case CellBlack:
		return CellWhite
	case CellWhite:
		return CellBlack
	default:
		return CellEmpty
	}
}

// Board is a square grid of cells addressed by x (column) and y (row).
type Board struct {
	size  int
	cells [][]Cell
}

// NewBoard returns an empty board. The size must be within [1, MaxBoardSize].
func NewBoard(size int) (*Board, error) {
	if size < 1 || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
	}

	return &Board{size: size, cells: cells}, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && x < that.size && y >= 0 && y < that.size
}

func (that *Board) Get(x, y int) (Cell, error) {
	if !that.InBounds(x, y) {
		return CellEmpty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, x, y)
	}

	return that.cells[y][x], nil
}

// Set writes value at (x, y). A stone is never written over another stone.
func (that *Board) Set(x, y int, value Cell) error {
	if !that.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, x, y)
	}

	if that.cells[y][x] != CellEmpty && value != CellEmpty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	that.cells[y][x] = value

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == CellEmpty {
				return false
			}
		}
	}

	return true
}

// Count returns the number of stones on the board.
func (that *Board) Count() int {
	count := 0
	for _, row := range that.cells {
		for _, cell := range row {
			if cell != CellEmpty {
				count++
			}
		}
	}

	return count
}

func (that *Board) Reset() {
	for _, row := range that.cells {
		for x := range row {
			row[x] = CellEmpty
		}
	}
}

// Cells returns a copy of the grid indexed as [y][x].
func (that *Board) Cells() [][]Cell {
	cells := make([][]Cell, that.size)
	for y, row := range that.cells {
		cells[y] = make([]Cell, that.size)
		copy(cells[y], row)
	}

	return cells
}

// EncodeRows flattens a grid into one string per row, '0' for empty,
// '1' for black and '2' for white.
func EncodeRows(cells [][]Cell) []string {
	rows := make([]string, len(cells))
	for y, row := range cells {
		out := make([]byte, len(row))
		for x, cell := range row {
			out[x] = byte('0' + cell)
		}
		rows[y] = string(out)
	}

	return rows
}
