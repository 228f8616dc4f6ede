package commands

import (
	"context"
	"strings"

	application "impulse/contexts/challenge-core/validation-engine/application"
	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/domain/services"
)

// SubmitReportCommand opens a progress report against an active challenge.
// The challenge's validator list is snapshotted here; later edits to the
// challenge never retroactively affect this report.
type SubmitReportCommand struct {
	ChallengeID string
	AuthorID    string
	Description string
	EvidenceRef string
}

// SubmitReport creates the report with one PENDIENTE vote slot per
// snapshotted validator and the aggregate status that follows from it.
func (uc VoteUseCase) SubmitReport(ctx context.Context, cmd SubmitReportCommand) (entities.ProgressReport, error) {
	logger := application.ResolveLogger(uc.Logger)
	challengeID := strings.TrimSpace(cmd.ChallengeID)
	authorID := strings.TrimSpace(cmd.AuthorID)
	if challengeID == "" || authorID == "" {
		return entities.ProgressReport{}, domainerrors.ErrInvalidInput
	}

	challenge, err := uc.Challenges.GetChallenge(ctx, challengeID)
	if err != nil {
		return entities.ProgressReport{}, err
	}
	if challenge.State != entities.ChallengeStateActive {
		return entities.ProgressReport{}, domainerrors.ErrChallengeNotActive
	}

	reportID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ProgressReport{}, err
	}
	now := uc.now()

	snapshot := append([]string(nil), challenge.ValidatorIDs...)
	votes := make([]entities.ValidationVote, 0, len(snapshot))
	for _, validatorID := range snapshot {
		votes = append(votes, entities.ValidationVote{
			ReportID:    reportID,
			ValidatorID: validatorID,
			Decision:    entities.DecisionPending,
			DecidedAt:   now,
		})
	}

	report := entities.ProgressReport{
		ReportID:          reportID,
		ChallengeID:       challengeID,
		AuthorID:          authorID,
		Description:       strings.TrimSpace(cmd.Description),
		EvidenceRef:       strings.TrimSpace(cmd.EvidenceRef),
		SubmittedAt:       now,
		ValidatorSnapshot: snapshot,
		Votes:             votes,
		Status:            services.ComputeStatus(votes),
		UpdatedAt:         now,
	}
	if _, err := uc.Reports.CreateReport(ctx, report); err != nil {
		return entities.ProgressReport{}, err
	}

	logger.Info("progress report submitted",
		"event", "validation_report_submitted",
		"module", "challenge-core/validation-engine",
		"layer", "application",
		"report_id", report.ReportID,
		"challenge_id", challengeID,
		"author_id", authorID,
		"validators", len(snapshot),
	)
	return report, nil
}
