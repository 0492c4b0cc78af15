package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type joinRequest struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type joinResponse struct {
	RoomID   string           `json:"room_id"`
	PlayerID string           `json:"player_id"`
	Color    string           `json:"color"`
	State    *entity.Snapshot `json:"state"`
}

type moveRequest struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	X        *int   `json:"x"`
	Y        *int   `json:"y"`
	SkillID  string `json:"skill_id,omitempty"`
}

type skillRequest struct {
	RoomID   string        `json:"room_id"`
	PlayerID string        `json:"player_id"`
	SkillID  string        `json:"skill_id"`
	Target   *entity.Point `json:"target,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleJoin")

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: invalid body", apperror.ErrMalformedRequest))
		return
	}

	result, err := that.gameUseCase.Join(r.Context(), req.RoomID, req.Name)
	if err != nil {
		log.Error("failed to join room", "roomID", req.RoomID, "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, joinResponse{
		RoomID:   result.RoomID,
		PlayerID: result.PlayerID,
		Color:    result.Color,
		State:    result.State,
	})
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: invalid body", apperror.ErrMalformedRequest))
		return
	}

	if req.RoomID == "" || req.PlayerID == "" || req.X == nil || req.Y == nil {
		that.writeError(w, fmt.Errorf("%w: room_id, player_id, x and y are required", apperror.ErrMalformedRequest))
		return
	}

	if err := that.gameUseCase.Move(r.Context(), req.RoomID, req.PlayerID, *req.X, *req.Y, req.SkillID); err != nil {
		log.Debug("move rejected", "roomID", req.RoomID, "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (that *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSkill")

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: invalid body", apperror.ErrMalformedRequest))
		return
	}

	if req.RoomID == "" || req.PlayerID == "" || req.SkillID == "" {
		that.writeError(w, fmt.Errorf("%w: room_id, player_id and skill_id are required", apperror.ErrMalformedRequest))
		return
	}

	if err := that.gameUseCase.UseSkill(r.Context(), req.RoomID, req.PlayerID, req.SkillID, req.Target); err != nil {
		log.Debug("skill rejected", "roomID", req.RoomID, "skillID", req.SkillID, "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError - reports a failed request to the requester only; nothing is
// ever broadcast for a failure.
func (that *Server) writeError(w http.ResponseWriter, err error) {
	status, message := userMessage(err)
	that.writeJSON(w, status, errorResponse{Error: message})
}

// userMessage - maps the error taxonomy onto short human-readable messages.
func userMessage(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrMalformedRequest):
		return http.StatusBadRequest, "required fields are missing"
	case errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusBadRequest, "that cell cannot be played"
	case errors.Is(err, apperror.ErrOutOfTurn):
		return http.StatusBadRequest, "it's not your turn"
	case errors.Is(err, apperror.ErrNotSeated):
		return http.StatusBadRequest, "only a seated player can do that"
	case errors.Is(err, apperror.ErrGameConcluded):
		return http.StatusBadRequest, "the game is already over"
	case errors.Is(err, apperror.ErrSkillAlreadyUsed):
		return http.StatusBadRequest, "that skill is already used"
	case errors.Is(err, apperror.ErrSkillNotAllowed):
		return http.StatusBadRequest, "that skill cannot be used this way"
	case errors.Is(err, apperror.ErrUnknownSkill):
		return http.StatusBadRequest, "unknown skill"
	case errors.Is(err, apperror.ErrUnknownParticipant):
		return http.StatusBadRequest, "you are not registered in this room"
	case errors.Is(err, apperror.ErrNoHistory):
		return http.StatusBadRequest, "there is nothing to rewind"
	case errors.Is(err, apperror.ErrInvalidTarget):
		return http.StatusBadRequest, "invalid target cell"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
