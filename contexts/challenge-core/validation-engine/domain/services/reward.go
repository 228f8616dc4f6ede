package services

import (
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

const defaultRewardPoints = 10

// RewardPoints maps challenge difficulty to the points awarded on approval.
// Difficulty is advisory metadata, so unknown values take the base award
// instead of failing.
func RewardPoints(difficulty entities.Difficulty) int {
	switch difficulty {
	case entities.DifficultyEasy:
		return 10
	case entities.DifficultyMedium:
		return 25
	case entities.DifficultyHard:
		return 50
	case entities.DifficultyExtreme:
		return 100
	default:
		return defaultRewardPoints
	}
}

// MaybeGrantReward decides whether the transition earns the report author a
// point award. Only the transition into APROBADO grants, and the persisted
// RewardApplied marker on the report keeps a retried write from granting
// twice.
func MaybeGrantReward(
	report entities.ProgressReport,
	challenge entities.Challenge,
	transition entities.StatusTransition,
	now time.Time,
) *entities.RewardGranted {
	if transition.New != entities.ReportStatusApproved {
		return nil
	}
	if report.RewardApplied {
		return nil
	}
	return &entities.RewardGranted{
		UserID:   report.AuthorID,
		ReportID: report.ReportID,
		Points:   RewardPoints(challenge.Difficulty),
		At:       now,
	}
}
