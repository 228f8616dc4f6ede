package httpserver

import (
	"errors"
	"net/http"
	"strings"

	rewarderrors "impulse/contexts/community-experience/reward-service/domain/errors"
	rewardhttp "impulse/contexts/community-experience/reward-service/transport/http"
)

func writeRewardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rewardhttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) handleUserPoints(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("user_id"))
	resp, err := s.rewards.Handler.UserPointsHandler(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, rewarderrors.ErrInvalidInput):
			writeRewardError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			writeRewardError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
