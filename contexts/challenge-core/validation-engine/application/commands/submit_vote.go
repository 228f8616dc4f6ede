package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "impulse/contexts/challenge-core/validation-engine/application"
	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/domain/services"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

const defaultMaxWriteAttempts = 3

// SubmitVoteCommand is the write-model input for casting or changing a
// validator's decision on a progress report.
type SubmitVoteCommand struct {
	ReportID    string
	ValidatorID string
	Decision    entities.Decision
	Comment     string
}

// SubmitVoteResult returns the saved report plus the status transition, when
// the write changed the aggregate status. Transition is nil for writes that
// leave the consensus unchanged.
type SubmitVoteResult struct {
	Report     entities.ProgressReport
	Transition *entities.StatusTransition
	Reward     *entities.RewardGranted
}

// VoteUseCase orchestrates vote writes under optimistic concurrency: each
// attempt reads the report with its version token, applies the vote,
// recomputes the aggregate status, and writes back conditioned on the
// version being unchanged. No report-level lock is held across attempts.
type VoteUseCase struct {
	Challenges  ports.ChallengeRepository
	Reports     ports.ReportRepository
	Roles       ports.UserRoleProvider
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAttempts int
	Logger      *slog.Logger
}

// SubmitVote records one validator's decision. Re-voting overwrites the
// prior vote; a closed report rejects the write and requires an explicit
// moderator reopen instead.
func (uc VoteUseCase) SubmitVote(ctx context.Context, cmd SubmitVoteCommand) (SubmitVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	reportID := strings.TrimSpace(cmd.ReportID)
	validatorID := strings.TrimSpace(cmd.ValidatorID)
	logger.Info("vote submit processing started",
		"event", "validation_vote_submit_started",
		"module", "challenge-core/validation-engine",
		"layer", "application",
		"report_id", reportID,
		"validator_id", validatorID,
		"decision", string(cmd.Decision),
	)

	if reportID == "" || validatorID == "" {
		logger.Warn("vote submit validation failed",
			"event", "validation_vote_submit_validation_failed",
			"module", "challenge-core/validation-engine",
			"layer", "application",
			"report_id", reportID,
			"validator_id", validatorID,
		)
		return SubmitVoteResult{}, domainerrors.ErrInvalidInput
	}
	if !entities.ValidDecision(cmd.Decision) {
		logger.Warn("vote submit decision invalid",
			"event", "validation_vote_submit_decision_invalid",
			"module", "challenge-core/validation-engine",
			"layer", "application",
			"report_id", reportID,
			"validator_id", validatorID,
			"decision", string(cmd.Decision),
		)
		return SubmitVoteResult{}, domainerrors.ErrInvalidDecision
	}

	for attempt := 1; attempt <= uc.maxAttempts(); attempt++ {
		result, err := uc.applyVote(ctx, reportID, validatorID, cmd)
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			logger.Warn("vote submit version conflict, retrying",
				"event", "validation_vote_submit_version_conflict",
				"module", "challenge-core/validation-engine",
				"layer", "application",
				"report_id", reportID,
				"validator_id", validatorID,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return SubmitVoteResult{}, err
		}
		logger.Info("vote recorded",
			"event", "validation_vote_recorded",
			"module", "challenge-core/validation-engine",
			"layer", "application",
			"report_id", reportID,
			"validator_id", validatorID,
			"decision", string(cmd.Decision),
			"status", string(result.Report.Status),
			"transitioned", result.Transition != nil,
		)
		return result, nil
	}

	logger.Error("vote submit retries exhausted",
		"event", "validation_vote_submit_retries_exhausted",
		"module", "challenge-core/validation-engine",
		"layer", "application",
		"report_id", reportID,
		"validator_id", validatorID,
		"max_attempts", uc.maxAttempts(),
	)
	return SubmitVoteResult{}, domainerrors.ErrRetriesExhausted
}

// applyVote runs one read-modify-write cycle; version conflicts bubble up to
// the retry loop in SubmitVote.
func (uc VoteUseCase) applyVote(
	ctx context.Context,
	reportID string,
	validatorID string,
	cmd SubmitVoteCommand,
) (SubmitVoteResult, error) {
	report, version, err := uc.Reports.GetReport(ctx, reportID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	for _, vote := range report.Votes {
		if !entities.ValidDecision(vote.Decision) {
			return SubmitVoteResult{}, domainerrors.ErrCorruptVoteState
		}
	}
	if !report.InSnapshot(validatorID) {
		return SubmitVoteResult{}, domainerrors.ErrValidatorNotInSnapshot
	}
	if report.Status.Terminal() {
		return SubmitVoteResult{}, domainerrors.ErrReportClosed
	}

	challenge, err := uc.Challenges.GetChallenge(ctx, report.ChallengeID)
	if err != nil {
		return SubmitVoteResult{}, err
	}

	now := uc.now()
	oldStatus := report.Status
	upsertVote(&report, entities.ValidationVote{
		ReportID:    reportID,
		ValidatorID: validatorID,
		Decision:    cmd.Decision,
		Comment:     strings.TrimSpace(cmd.Comment),
		DecidedAt:   now,
	})
	report.Status = services.ComputeStatus(report.Votes)
	report.UpdatedAt = now

	var transition *entities.StatusTransition
	var grant *entities.RewardGranted
	if report.Status != oldStatus {
		transition = &entities.StatusTransition{Old: oldStatus, New: report.Status}
		grant = services.MaybeGrantReward(report, challenge, *transition, now)
		if grant != nil {
			report.RewardApplied = true
		}
	}

	if _, err := uc.Reports.SaveReport(ctx, report, version); err != nil {
		return SubmitVoteResult{}, err
	}

	if transition != nil {
		events := services.EmitTransitionEvents(*transition, report, grant, now)
		if err := uc.appendEvents(ctx, report.ReportID, events); err != nil {
			return SubmitVoteResult{}, err
		}
	}
	return SubmitVoteResult{Report: report, Transition: transition, Reward: grant}, nil
}

func (uc VoteUseCase) appendEvents(
	ctx context.Context,
	reportID string,
	outbound []entities.OutboundEvent,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	for _, event := range outbound {
		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newValidationEnvelope(eventID, reportID, event, uc.now())
		if err != nil {
			return err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return err
		}
	}
	return nil
}

func (uc VoteUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc VoteUseCase) maxAttempts() int {
	if uc.MaxAttempts <= 0 {
		return defaultMaxWriteAttempts
	}
	return uc.MaxAttempts
}

// upsertVote keeps exactly one vote per (report, validator).
func upsertVote(report *entities.ProgressReport, vote entities.ValidationVote) {
	for i := range report.Votes {
		if report.Votes[i].ValidatorID == vote.ValidatorID {
			report.Votes[i] = vote
			return
		}
	}
	report.Votes = append(report.Votes, vote)
}
