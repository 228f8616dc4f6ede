package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	capabilityerrors "impulse/contexts/identity-access/capability-service/domain/errors"
	capabilityhttp "impulse/contexts/identity-access/capability-service/transport/http"
)

func writeCapabilityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, capabilityhttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) handleResolvePermissions(w http.ResponseWriter, r *http.Request) {
	var req capabilityhttp.ResolvePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCapabilityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	// The caller identity wins over the body so a gateway can pin it.
	if fromHeader := strings.TrimSpace(r.Header.Get("X-User-Id")); fromHeader != "" {
		req.UserID = fromHeader
	}

	resp, err := s.capabilities.Handler.ResolvePermissionsHandler(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, capabilityerrors.ErrInvalidChallengeID):
			writeCapabilityError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case capabilityerrors.IsNotFound(err):
			writeCapabilityError(w, http.StatusNotFound, "not_found", err.Error())
		default:
			writeCapabilityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
