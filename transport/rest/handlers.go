package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const maxBodySize = 1 << 10

var errInvalidBody = errors.New("invalid request body")

type newGameRequest struct {
	Size int `json:"size"`
}

type moveRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type moveResponse struct {
	Result entity.MoveResult    `json:"result"`
	Game   *entity.GameSnapshot `json:"game"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeBody(r, &req, true); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.uGame.CreateGame(r.Context(), req.Size)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleResetGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeBody(r, &req, true); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.uGame.ResetGame(r.Context(), r.PathValue("id"), req.Size)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleMakeTurn(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req, false); err != nil {
		that.writeError(w, err)
		return
	}

	if req.X == nil || req.Y == nil {
		that.writeError(w, errInvalidBody)
		return
	}

	result, game, err := that.uGame.MakeTurn(r.Context(), r.PathValue("id"), *req.X, *req.Y)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Result: result, Game: game})
}

// decodeBody - reads a JSON body into dst. An empty body is accepted only
// when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}

	if err != nil {
		return errInvalidBody
	}

	return nil
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: errorCode(err)})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameAlreadyOver):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrTooManyGames):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	if errors.Is(err, errInvalidBody) {
		return "invalid_body"
	}

	return apperror.Code(err)
}
