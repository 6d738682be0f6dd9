package websocket

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	codeInvalidMessage = "invalid_message"
	codeInvalidPayload = "invalid_payload"
	codeUnknownAction  = "unknown_action"
	codeGameIDRequired = "game_id_required"
)

// Handlers return an error only when the connection can no longer be written
// to. Rejected requests are answered with an error payload instead.

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok := that.readPayload(msg)
	if !ok {
		return that.sendErrorResponse(conn, msg.Action, codeInvalidPayload)
	}

	game, err := that.uGame.CreateGame(ctx, payloadReq.Size)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleResetGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok := that.readPayload(msg)
	if !ok {
		return that.sendErrorResponse(conn, msg.Action, codeInvalidPayload)
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, codeGameIDRequired)
	}

	game, err := that.uGame.ResetGame(ctx, payloadReq.GameID, payloadReq.Size)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok := that.readPayload(msg)
	if !ok || payloadReq.X == nil || payloadReq.Y == nil {
		return that.sendErrorResponse(conn, msg.Action, codeInvalidPayload)
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, codeGameIDRequired)
	}

	result, game, err := that.uGame.MakeTurn(ctx, payloadReq.GameID, *payloadReq.X, *payloadReq.Y)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game, Result: &result})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok := that.readPayload(msg)
	if !ok {
		return that.sendErrorResponse(conn, msg.Action, codeInvalidPayload)
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, codeGameIDRequired)
	}

	game, err := that.uGame.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) readPayload(msg *Message) (RequestPayload, bool) {
	var payloadReq RequestPayload
	if len(msg.Payload) == 0 {
		return payloadReq, true
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		that.logger.Warn("failed to unmarshal payload", "action", msg.Action, "error", err)
		return payloadReq, false
	}

	return payloadReq, true
}

func (that *Server) sendUseCaseError(conn *websocket.Conn, action string, err error) error {
	code := apperror.Code(err)
	if code == "internal_error" {
		that.logger.Error("request failed", "action", action, "error", err)
	} else {
		that.logger.Debug("request rejected", "action", action, "error", err)
	}

	return that.sendErrorResponse(conn, action, code)
}
