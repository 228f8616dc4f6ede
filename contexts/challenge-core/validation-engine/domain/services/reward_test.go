package services

import (
	"testing"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

func TestRewardPointsTable(t *testing.T) {
	cases := []struct {
		difficulty entities.Difficulty
		points     int
	}{
		{entities.DifficultyEasy, 10},
		{entities.DifficultyMedium, 25},
		{entities.DifficultyHard, 50},
		{entities.DifficultyExtreme, 100},
		{entities.Difficulty("LEGENDARIO"), 10},
		{entities.Difficulty(""), 10},
	}
	for _, tc := range cases {
		if got := RewardPoints(tc.difficulty); got != tc.points {
			t.Fatalf("difficulty %q: expected %d points, got %d", tc.difficulty, tc.points, got)
		}
	}
}

func TestMaybeGrantRewardOnApproval(t *testing.T) {
	now := time.Now().UTC()
	report := entities.ProgressReport{ReportID: "report-1", AuthorID: "author-1"}
	challenge := entities.Challenge{Difficulty: entities.DifficultyHard}
	transition := entities.StatusTransition{
		Old: entities.ReportStatusInReview,
		New: entities.ReportStatusApproved,
	}

	grant := MaybeGrantReward(report, challenge, transition, now)
	if grant == nil {
		t.Fatal("expected a grant on transition into APROBADO")
	}
	if grant.UserID != "author-1" || grant.ReportID != "report-1" || grant.Points != 50 {
		t.Fatalf("unexpected grant: %+v", grant)
	}
}

func TestMaybeGrantRewardSkipsNonApproval(t *testing.T) {
	now := time.Now().UTC()
	report := entities.ProgressReport{ReportID: "report-1", AuthorID: "author-1"}
	transition := entities.StatusTransition{
		Old: entities.ReportStatusPending,
		New: entities.ReportStatusRejected,
	}
	if grant := MaybeGrantReward(report, entities.Challenge{}, transition, now); grant != nil {
		t.Fatalf("expected no grant on rejection, got %+v", grant)
	}
}

func TestMaybeGrantRewardHonorsAppliedMarker(t *testing.T) {
	now := time.Now().UTC()
	report := entities.ProgressReport{
		ReportID:      "report-1",
		AuthorID:      "author-1",
		RewardApplied: true,
	}
	transition := entities.StatusTransition{
		Old: entities.ReportStatusPending,
		New: entities.ReportStatusApproved,
	}
	if grant := MaybeGrantReward(report, entities.Challenge{}, transition, now); grant != nil {
		t.Fatalf("expected no second grant after RewardApplied, got %+v", grant)
	}
}
