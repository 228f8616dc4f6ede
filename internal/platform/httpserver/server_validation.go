package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	validationerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	validationhttp "impulse/contexts/challenge-core/validation-engine/transport/http"
)

func writeValidationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, validationhttp.ErrorResponse{Code: code, Message: message})
}

// writeValidationDomainError maps the engine's error taxonomy onto transport
// codes: validation 400, not-found 404, conflict 409, corrupt state 500.
func writeValidationDomainError(w http.ResponseWriter, err error) {
	switch {
	case validationerrors.IsValidation(err):
		writeValidationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case validationerrors.IsNotFound(err):
		writeValidationError(w, http.StatusNotFound, "not_found", err.Error())
	case validationerrors.IsConflict(err):
		writeValidationError(w, http.StatusConflict, "conflict", err.Error())
	case validationerrors.IsCorruptState(err):
		writeValidationError(w, http.StatusInternalServerError, "corrupt_state", err.Error())
	default:
		writeValidationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeValidationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req validationhttp.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.validation.Handler.SubmitReportHandler(r.Context(), authorID, req)
	if err != nil {
		writeValidationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID := strings.TrimSpace(r.PathValue("report_id"))
	resp, err := s.validation.Handler.GetReportHandler(r.Context(), reportID)
	if err != nil {
		writeValidationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportProgress(w http.ResponseWriter, r *http.Request) {
	reportID := strings.TrimSpace(r.PathValue("report_id"))
	resp, err := s.validation.Handler.ReportProgressHandler(r.Context(), reportID)
	if err != nil {
		writeValidationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	validatorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req validationhttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	reportID := strings.TrimSpace(r.PathValue("report_id"))
	resp, err := s.validation.Handler.SubmitVoteHandler(r.Context(), reportID, validatorID, req)
	if err != nil {
		writeValidationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReopenReport(w http.ResponseWriter, r *http.Request) {
	moderatorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req validationhttp.ReopenReportRequest
	if r.Body != nil {
		// Reopen reason is optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reportID := strings.TrimSpace(r.PathValue("report_id"))
	resp, err := s.validation.Handler.ReopenReportHandler(r.Context(), reportID, moderatorID, req)
	if err != nil {
		writeValidationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
