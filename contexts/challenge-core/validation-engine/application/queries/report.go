package queries

import (
	"context"
	"strings"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/ports"
)

// ReportUseCase serves read models over reports and their vote state.
type ReportUseCase struct {
	Challenges ports.ChallengeRepository
	Reports    ports.ReportRepository
}

// GetReport returns the report with its votes and cached aggregate status.
func (uc ReportUseCase) GetReport(ctx context.Context, reportID string) (entities.ProgressReport, error) {
	if strings.TrimSpace(reportID) == "" {
		return entities.ProgressReport{}, domainerrors.ErrInvalidInput
	}
	report, _, err := uc.Reports.GetReport(ctx, strings.TrimSpace(reportID))
	if err != nil {
		return entities.ProgressReport{}, err
	}
	return report, nil
}

// ChallengeProgress summarizes a report's vote state for dashboards.
type ChallengeProgress struct {
	ReportID string
	Status   entities.ReportStatus
	Approved int
	Rejected int
	Pending  int
}

// ReportProgress counts decided and pending votes for one report.
func (uc ReportUseCase) ReportProgress(ctx context.Context, reportID string) (ChallengeProgress, error) {
	report, err := uc.GetReport(ctx, reportID)
	if err != nil {
		return ChallengeProgress{}, err
	}
	progress := ChallengeProgress{
		ReportID: report.ReportID,
		Status:   report.Status,
	}
	for _, vote := range report.Votes {
		switch vote.Decision {
		case entities.DecisionApproved:
			progress.Approved++
		case entities.DecisionRejected:
			progress.Rejected++
		default:
			progress.Pending++
		}
	}
	// Validators that never voted still count as pending slots.
	if missing := len(report.ValidatorSnapshot) - len(report.Votes); missing > 0 {
		progress.Pending += missing
	}
	return progress, nil
}
