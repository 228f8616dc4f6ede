package services

import (
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

// EmitTransitionEvents maps a status transition to outbound domain events.
// No-op recomputes (old == new) emit nothing, which guards the author
// against duplicate notifications from retried writes. Partial disagreement
// (EN_REVISION) is not user-actionable yet and stays silent.
func EmitTransitionEvents(
	transition entities.StatusTransition,
	report entities.ProgressReport,
	grant *entities.RewardGranted,
	now time.Time,
) []entities.OutboundEvent {
	if transition.Old == transition.New {
		return nil
	}

	switch transition.New {
	case entities.ReportStatusRejected:
		return []entities.OutboundEvent{{
			EventType: entities.EventTypeReportStatusChanged,
			StatusChanged: &entities.ReportStatusChanged{
				ReportID:         report.ReportID,
				ChallengeID:      report.ChallengeID,
				AuthorID:         report.AuthorID,
				OldStatus:        transition.Old,
				NewStatus:        transition.New,
				ValidatorComment: rejectionComment(report),
				At:               now,
			},
		}}
	case entities.ReportStatusApproved:
		out := []entities.OutboundEvent{{
			EventType: entities.EventTypeReportStatusChanged,
			StatusChanged: &entities.ReportStatusChanged{
				ReportID:    report.ReportID,
				ChallengeID: report.ChallengeID,
				AuthorID:    report.AuthorID,
				OldStatus:   transition.Old,
				NewStatus:   transition.New,
				At:          now,
			},
		}}
		if grant != nil {
			out = append(out, entities.OutboundEvent{
				EventType: entities.EventTypeRewardGranted,
				Reward:    grant,
			})
		}
		return out
	default:
		// EN_REVISION and reopen transitions back to PENDIENTE produce a
		// status event only when the report was previously closed, so the
		// author learns the verdict is under review again.
		if transition.Old.Terminal() {
			return []entities.OutboundEvent{{
				EventType: entities.EventTypeReportStatusChanged,
				StatusChanged: &entities.ReportStatusChanged{
					ReportID:    report.ReportID,
					ChallengeID: report.ChallengeID,
					AuthorID:    report.AuthorID,
					OldStatus:   transition.Old,
					NewStatus:   transition.New,
					At:          now,
				},
			}}
		}
		return nil
	}
}

// rejectionComment surfaces the rejecting validator's comment to the author.
// With several rejections the earliest decided one wins.
func rejectionComment(report entities.ProgressReport) string {
	comment := ""
	var decidedAt time.Time
	for _, vote := range report.Votes {
		if vote.Decision != entities.DecisionRejected {
			continue
		}
		if comment == "" || vote.DecidedAt.Before(decidedAt) {
			comment = vote.Comment
			decidedAt = vote.DecidedAt
		}
	}
	return comment
}
