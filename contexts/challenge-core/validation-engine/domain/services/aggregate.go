package services

import "impulse/contexts/challenge-core/validation-engine/domain/entities"

// ComputeStatus maps a vote multiset to the report's consensus status.
// A single RECHAZADO is a hard veto regardless of the remaining votes; a
// non-empty unanimous APROBADO set approves; any decided vote among pending
// ones keeps the report in review; an empty snapshot never approves by
// omission and stays PENDIENTE. Order of the slice is irrelevant.
func ComputeStatus(votes []entities.ValidationVote) entities.ReportStatus {
	if len(votes) == 0 {
		return entities.ReportStatusPending
	}

	approved := 0
	pending := 0
	for _, vote := range votes {
		switch vote.Decision {
		case entities.DecisionRejected:
			return entities.ReportStatusRejected
		case entities.DecisionApproved:
			approved++
		default:
			pending++
		}
	}

	if pending == 0 {
		return entities.ReportStatusApproved
	}
	if approved > 0 {
		return entities.ReportStatusInReview
	}
	return entities.ReportStatusPending
}
