package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// WinLength is the shortest run that wins. Longer runs win as well.
const WinLength = 5

type direction struct {
	dx, dy int
}

// axis is a line through a stone, walked in both of its directions.
type axis [2]direction

var axes = [4]axis{
	{{dx: 1, dy: 0}, {dx: -1, dy: 0}},  // horizontal
	{{dx: 0, dy: 1}, {dx: 0, dy: -1}},  // vertical
	{{dx: 1, dy: 1}, {dx: -1, dy: -1}}, // diagonal
	{{dx: 1, dy: -1}, {dx: -1, dy: 1}}, // anti-diagonal
}

// winningLine returns the run through (x, y) that gives player the game, or
// nil when none of the four axes holds WinLength or more stones.
func winningLine(board *entity.Board, x, y int, player entity.Cell) []entity.Point {
	for _, ax := range axes {
		back := run(board, x, y, ax[1], player)
		forward := run(board, x, y, ax[0], player)

		if 1+len(back)+len(forward) < WinLength {
			continue
		}

		line := make([]entity.Point, 0, 1+len(back)+len(forward))
		for i := len(back) - 1; i >= 0; i-- {
			line = append(line, back[i])
		}
		line = append(line, entity.Point{X: x, Y: y})
		line = append(line, forward...)

		return line
	}

	return nil
}

// run collects the consecutive stones of player next to (x, y) along dir,
// stopping at the first foreign cell or the edge of the board.
func run(board *entity.Board, x, y int, dir direction, player entity.Cell) []entity.Point {
	var points []entity.Point

	for cx, cy := x+dir.dx, y+dir.dy; ; cx, cy = cx+dir.dx, cy+dir.dy {
		cell, err := board.Get(cx, cy)
		if err != nil || cell != player {
			return points
		}

		points = append(points, entity.Point{X: cx, Y: cy})
	}
}
