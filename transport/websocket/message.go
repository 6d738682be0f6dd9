package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	actionNewGame   = "game:new"
	actionResetGame = "game:reset"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every action; each action reads
// only the fields it needs.
type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Size   int    `json:"size,omitempty"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
}

type ResponsePayload struct {
	Game   *entity.GameSnapshot `json:"game,omitempty"`
	Result *entity.MoveResult   `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, code string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: code})
}
