package entity

import (
	"encoding/json"
	"fmt"
)

type Winner int

const (
	WinnerNone Winner = iota
	WinnerBlack
	WinnerWhite
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerBlack:
		return "black"
	case WinnerWhite:
		return "white"
	case WinnerDraw:
		return "draw"
	default:
		return ""
	}
}

func (w Winner) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Winner) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("winner must be a string: %w", err)
	}

	switch name {
	case "":
		*w = WinnerNone
	case "black":
		*w = WinnerBlack
	case "white":
		*w = WinnerWhite
	case "draw":
		*w = WinnerDraw
	default:
		return fmt.Errorf("%w: winner %q", ErrUnknownValue, name)
	}

	return nil
}

// WinnerOf maps a stone colour to the matching winner value.
func WinnerOf(player Cell) Winner {
	switch player {
	case CellBlack:
		return WinnerBlack
	case CellWhite:
		return WinnerWhite
	default:
		return WinnerNone
	}
}

type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "continue"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("outcome must be a string: %w", err)
	}

	switch name {
	case "continue":
		*o = OutcomeContinue
	case "win":
		*o = OutcomeWin
	case "draw":
		*o = OutcomeDraw
	default:
		return fmt.Errorf("%w: outcome %q", ErrUnknownValue, name)
	}

	return nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type GameState struct {
	Size          int    `json:"size"`
	CurrentPlayer Cell   `json:"current_player"`
	IsOver        bool   `json:"is_over"`
	Winner        Winner `json:"winner"`
	MovesPlayed   int    `json:"moves_played"`
}

func NewGameState(size int) GameState {
	return GameState{
		Size:          size,
		CurrentPlayer: CellBlack,
		IsOver:        false,
		Winner:        WinnerNone,
		MovesPlayed:   0,
	}
}

// MoveResult describes what an accepted move changed.
// NextPlayer is CellEmpty unless the game continues; Line holds the
// winning run when Outcome is OutcomeWin.
type MoveResult struct {
	Placed     Point   `json:"placed"`
	Player     Cell    `json:"player"`
	Outcome    Outcome `json:"outcome"`
	NextPlayer Cell    `json:"next_player,omitempty"`
	Line       []Point `json:"line,omitempty"`
}

func (that *MoveResult) IsWin() bool {
	return that.Outcome == OutcomeWin
}

func (that *MoveResult) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

// GameSnapshot is a read-only view of a game session handed to presentation.
type GameSnapshot struct {
	ID    string    `json:"id"`
	State GameState `json:"state"`
	Board []string  `json:"board"`
}
