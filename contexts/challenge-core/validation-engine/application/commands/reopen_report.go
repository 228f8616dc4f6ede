package commands

import (
	"context"
	"errors"
	"strings"

	application "impulse/contexts/challenge-core/validation-engine/application"
	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/domain/services"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

// ReopenReportCommand reverses a terminal verdict. Only moderators and
// admins may reopen; normal validators must go through them.
type ReopenReportCommand struct {
	ReportID    string
	ModeratorID string
	Reason      string
}

// ReopenReport resets the votes that produced the terminal outcome back to
// PENDIENTE and recomputes the aggregate. The RewardApplied marker survives
// the reopen, so an approve-after-reopen never grants twice.
func (uc VoteUseCase) ReopenReport(ctx context.Context, cmd ReopenReportCommand) (SubmitVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	reportID := strings.TrimSpace(cmd.ReportID)
	moderatorID := strings.TrimSpace(cmd.ModeratorID)
	logger.Info("report reopen processing started",
		"event", "validation_report_reopen_started",
		"module", "challenge-core/validation-engine",
		"layer", "application",
		"report_id", reportID,
		"moderator_id", moderatorID,
	)

	if reportID == "" || moderatorID == "" {
		return SubmitVoteResult{}, domainerrors.ErrInvalidInput
	}

	role, err := uc.Roles.GetRole(ctx, moderatorID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if role != ports.RoleModerator && role != ports.RoleAdmin {
		logger.Warn("report reopen denied",
			"event", "validation_report_reopen_denied",
			"module", "challenge-core/validation-engine",
			"layer", "application",
			"report_id", reportID,
			"moderator_id", moderatorID,
			"role", string(role),
		)
		return SubmitVoteResult{}, domainerrors.ErrReopenNotAllowed
	}

	for attempt := 1; attempt <= uc.maxAttempts(); attempt++ {
		result, err := uc.applyReopen(ctx, reportID)
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return SubmitVoteResult{}, err
		}
		logger.Info("report reopened",
			"event", "validation_report_reopened",
			"module", "challenge-core/validation-engine",
			"layer", "application",
			"report_id", reportID,
			"moderator_id", moderatorID,
			"reason", strings.TrimSpace(cmd.Reason),
			"status", string(result.Report.Status),
		)
		return result, nil
	}
	return SubmitVoteResult{}, domainerrors.ErrRetriesExhausted
}

func (uc VoteUseCase) applyReopen(ctx context.Context, reportID string) (SubmitVoteResult, error) {
	report, version, err := uc.Reports.GetReport(ctx, reportID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if !report.Status.Terminal() {
		return SubmitVoteResult{}, domainerrors.ErrReportNotClosed
	}

	now := uc.now()
	oldStatus := report.Status
	for i := range report.Votes {
		if oldStatus == entities.ReportStatusApproved ||
			report.Votes[i].Decision == entities.DecisionRejected {
			report.Votes[i].Decision = entities.DecisionPending
			report.Votes[i].DecidedAt = now
		}
	}
	report.Status = services.ComputeStatus(report.Votes)
	report.UpdatedAt = now

	if _, err := uc.Reports.SaveReport(ctx, report, version); err != nil {
		return SubmitVoteResult{}, err
	}

	transition := &entities.StatusTransition{Old: oldStatus, New: report.Status}
	events := services.EmitTransitionEvents(*transition, report, nil, now)
	if err := uc.appendEvents(ctx, report.ReportID, events); err != nil {
		return SubmitVoteResult{}, err
	}
	return SubmitVoteResult{Report: report, Transition: transition}, nil
}
