package httpadapter

import (
	"context"
	"log/slog"

	"impulse/contexts/challenge-core/validation-engine/application/commands"
	"impulse/contexts/challenge-core/validation-engine/application/queries"
	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	httptransport "impulse/contexts/challenge-core/validation-engine/transport/http"
)

type Handler struct {
	Votes   commands.VoteUseCase
	Reports queries.ReportUseCase
	Logger  *slog.Logger
}

func (h Handler) SubmitVoteHandler(
	ctx context.Context,
	reportID string,
	validatorID string,
	req httptransport.SubmitVoteRequest,
) (httptransport.SubmitVoteResponse, error) {
	result, err := h.Votes.SubmitVote(ctx, commands.SubmitVoteCommand{
		ReportID:    reportID,
		ValidatorID: validatorID,
		Decision:    entities.Decision(req.Decision),
		Comment:     req.Comment,
	})
	if err != nil {
		return httptransport.SubmitVoteResponse{}, err
	}
	return toSubmitVoteResponse(result), nil
}

func (h Handler) SubmitReportHandler(
	ctx context.Context,
	authorID string,
	req httptransport.SubmitReportRequest,
) (httptransport.ReportResponse, error) {
	report, err := h.Votes.SubmitReport(ctx, commands.SubmitReportCommand{
		ChallengeID: req.ChallengeID,
		AuthorID:    authorID,
		Description: req.Description,
		EvidenceRef: req.EvidenceRef,
	})
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	return toReportResponse(report), nil
}

func (h Handler) ReopenReportHandler(
	ctx context.Context,
	reportID string,
	moderatorID string,
	req httptransport.ReopenReportRequest,
) (httptransport.SubmitVoteResponse, error) {
	result, err := h.Votes.ReopenReport(ctx, commands.ReopenReportCommand{
		ReportID:    reportID,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
	})
	if err != nil {
		return httptransport.SubmitVoteResponse{}, err
	}
	return toSubmitVoteResponse(result), nil
}

func (h Handler) GetReportHandler(ctx context.Context, reportID string) (httptransport.ReportResponse, error) {
	report, err := h.Reports.GetReport(ctx, reportID)
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	return toReportResponse(report), nil
}

func (h Handler) ReportProgressHandler(ctx context.Context, reportID string) (httptransport.ReportProgressResponse, error) {
	progress, err := h.Reports.ReportProgress(ctx, reportID)
	if err != nil {
		return httptransport.ReportProgressResponse{}, err
	}
	return httptransport.ReportProgressResponse{
		ReportID: progress.ReportID,
		Status:   string(progress.Status),
		Approved: progress.Approved,
		Rejected: progress.Rejected,
		Pending:  progress.Pending,
	}, nil
}

func toSubmitVoteResponse(result commands.SubmitVoteResult) httptransport.SubmitVoteResponse {
	response := httptransport.SubmitVoteResponse{
		Report: toReportResponse(result.Report),
	}
	if result.Transition != nil {
		response.Transition = &httptransport.TransitionView{
			OldStatus: string(result.Transition.Old),
			NewStatus: string(result.Transition.New),
		}
	}
	if result.Reward != nil {
		response.Reward = &httptransport.RewardView{
			UserID:   result.Reward.UserID,
			ReportID: result.Reward.ReportID,
			Points:   result.Reward.Points,
		}
	}
	return response
}

func toReportResponse(report entities.ProgressReport) httptransport.ReportResponse {
	votes := make([]httptransport.VoteView, 0, len(report.Votes))
	for _, vote := range report.Votes {
		votes = append(votes, httptransport.VoteView{
			ValidatorID: vote.ValidatorID,
			Decision:    string(vote.Decision),
			Comment:     vote.Comment,
			DecidedAt:   vote.DecidedAt,
		})
	}
	return httptransport.ReportResponse{
		ReportID:          report.ReportID,
		ChallengeID:       report.ChallengeID,
		AuthorID:          report.AuthorID,
		Status:            string(report.Status),
		ValidatorSnapshot: report.ValidatorSnapshot,
		Votes:             votes,
		RewardApplied:     report.RewardApplied,
		SubmittedAt:       report.SubmittedAt,
	}
}
