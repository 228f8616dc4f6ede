package validationengine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/ports"
	httptransport "impulse/contexts/challenge-core/validation-engine/transport/http"
)

func seedChallenge(module Module, validators ...string) entities.Challenge {
	challenge := entities.Challenge{
		ChallengeID:  "challenge-1",
		OwnerID:      "owner-1",
		Title:        "10k steps a day",
		State:        entities.ChallengeStateActive,
		Difficulty:   entities.DifficultyMedium,
		Visibility:   entities.VisibilityPublic,
		ValidatorIDs: validators,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	module.Store.SetChallenge(challenge)
	return challenge
}

func TestSubmitReportSnapshotsValidators(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
		Description: "walked 12k today",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}
	if report.Status != string(entities.ReportStatusPending) {
		t.Fatalf("expected fresh report PENDIENTE, got %s", report.Status)
	}
	if len(report.ValidatorSnapshot) != 2 || len(report.Votes) != 2 {
		t.Fatalf("expected two snapshot slots with pending votes, got %+v", report)
	}

	// Later challenge edits must not leak into the existing report.
	challenge := seedChallenge(module, "v1", "v2", "v3")
	module.Store.SetChallenge(challenge)
	_, err = module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v3", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if !errors.Is(err, domainerrors.ErrValidatorNotInSnapshot) {
		t.Fatalf("expected snapshot rejection for late validator, got %v", err)
	}
}

func TestSubmitReportRequiresActiveChallenge(t *testing.T) {
	module := NewInMemoryModule(nil)
	challenge := seedChallenge(module, "v1")
	challenge.State = entities.ChallengeStatePaused
	module.Store.SetChallenge(challenge)

	_, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if !errors.Is(err, domainerrors.ErrChallengeNotActive) {
		t.Fatalf("expected challenge-not-active conflict, got %v", err)
	}
}

func TestUnanimousApprovalGrantsRewardOnce(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	first, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if first.Report.Status != string(entities.ReportStatusInReview) {
		t.Fatalf("expected EN_REVISION after partial approval, got %s", first.Report.Status)
	}
	if first.Reward != nil {
		t.Fatalf("no reward expected before consensus, got %+v", first.Reward)
	}

	second, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v2", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if err != nil {
		t.Fatalf("second vote failed: %v", err)
	}
	if second.Report.Status != string(entities.ReportStatusApproved) {
		t.Fatalf("expected APROBADO, got %s", second.Report.Status)
	}
	if second.Reward == nil || second.Reward.Points != 25 {
		t.Fatalf("expected MEDIO reward of 25 points, got %+v", second.Reward)
	}
	if !second.Report.RewardApplied {
		t.Fatal("expected RewardApplied marker set")
	}

	events := module.Store.OutboxEvents()
	var statusEvents, rewardEvents int
	for _, event := range events {
		switch event.EventType {
		case entities.EventTypeReportStatusChanged:
			statusEvents++
		case entities.EventTypeRewardGranted:
			rewardEvents++
		}
	}
	if statusEvents != 1 || rewardEvents != 1 {
		t.Fatalf("expected one status and one reward event, got %d/%d", statusEvents, rewardEvents)
	}

	// The closed report rejects further votes.
	_, err = module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionRejected),
	})
	if !errors.Is(err, domainerrors.ErrReportClosed) {
		t.Fatalf("expected closed-report conflict, got %v", err)
	}
}

func TestSingleRejectionClosesReport(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2", "v3")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	if _, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	}); err != nil {
		t.Fatalf("approve vote failed: %v", err)
	}

	result, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v2", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionRejected),
		Comment:  "evidence does not match",
	})
	if err != nil {
		t.Fatalf("reject vote failed: %v", err)
	}
	if result.Report.Status != string(entities.ReportStatusRejected) {
		t.Fatalf("expected single rejection to close the report, got %s", result.Report.Status)
	}
	if result.Reward != nil {
		t.Fatalf("no reward on rejection, got %+v", result.Reward)
	}

	events := module.Store.OutboxEvents()
	if len(events) != 1 || events[0].EventType != entities.EventTypeReportStatusChanged {
		t.Fatalf("expected one status event, got %+v", events)
	}
	var payload struct {
		ValidatorComment string `json:"validator_comment"`
	}
	if err := json.Unmarshal(events[0].Data, &payload); err != nil {
		t.Fatalf("decode event payload: %v", err)
	}
	if payload.ValidatorComment != "evidence does not match" {
		t.Fatalf("expected rejection comment on the event, got %q", payload.ValidatorComment)
	}
}

func TestRevoteOverwritesWhileOpen(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	if _, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	}); err != nil {
		t.Fatalf("initial vote failed: %v", err)
	}
	result, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionRejected),
		Comment:  "changed my mind",
	})
	if err != nil {
		t.Fatalf("re-vote failed: %v", err)
	}
	if result.Report.Status != string(entities.ReportStatusRejected) {
		t.Fatalf("expected overwrite to RECHAZADO, got %s", result.Report.Status)
	}
	if len(result.Report.Votes) != 2 {
		t.Fatalf("re-vote must overwrite, not append: %d votes", len(result.Report.Votes))
	}
}

func TestSubmitVoteRejectsInvalidDecision(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	_, err = module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: "QUIZAS",
	})
	if !errors.Is(err, domainerrors.ErrInvalidDecision) {
		t.Fatalf("expected invalid decision error, got %v", err)
	}
}

func TestSubmitVoteDetectsCorruptPersistedVote(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1")

	now := time.Now().UTC()
	module.Store.SeedReport(entities.ProgressReport{
		ReportID:          "report-corrupt",
		ChallengeID:       "challenge-1",
		AuthorID:          "author-1",
		SubmittedAt:       now,
		ValidatorSnapshot: []string{"v1"},
		Votes: []entities.ValidationVote{
			{ReportID: "report-corrupt", ValidatorID: "v1", Decision: "???", DecidedAt: now},
		},
		Status:    entities.ReportStatusPending,
		UpdatedAt: now,
	})

	_, err := module.Handler.SubmitVoteHandler(context.Background(), "report-corrupt", "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if !errors.Is(err, domainerrors.ErrCorruptVoteState) {
		t.Fatalf("expected corrupt vote state error, got %v", err)
	}
}

func TestReopenRequiresModerator(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1")
	module.Store.SetRole("user-1", ports.RoleUser)

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}
	if _, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionRejected),
	}); err != nil {
		t.Fatalf("reject vote failed: %v", err)
	}

	_, err = module.Handler.ReopenReportHandler(context.Background(), report.ReportID, "user-1", httptransport.ReopenReportRequest{})
	if !errors.Is(err, domainerrors.ErrReopenNotAllowed) {
		t.Fatalf("expected reopen denial for USER role, got %v", err)
	}
}

func TestReopenRejectsOpenReport(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1")
	module.Store.SetRole("mod-1", ports.RoleModerator)

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}
	_, err = module.Handler.ReopenReportHandler(context.Background(), report.ReportID, "mod-1", httptransport.ReopenReportRequest{})
	if !errors.Is(err, domainerrors.ErrReportNotClosed) {
		t.Fatalf("expected not-closed conflict, got %v", err)
	}
}

func TestReopenThenApproveDoesNotGrantTwice(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1")
	module.Store.SetRole("mod-1", ports.RoleModerator)

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	approved, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if err != nil {
		t.Fatalf("approve vote failed: %v", err)
	}
	if approved.Reward == nil {
		t.Fatal("expected reward on first approval")
	}

	reopened, err := module.Handler.ReopenReportHandler(context.Background(), report.ReportID, "mod-1", httptransport.ReopenReportRequest{
		Reason: "evidence disputed",
	})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Report.Status != string(entities.ReportStatusPending) {
		t.Fatalf("expected reopened report PENDIENTE, got %s", reopened.Report.Status)
	}
	if !reopened.Report.RewardApplied {
		t.Fatal("RewardApplied marker must survive the reopen")
	}

	again, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	})
	if err != nil {
		t.Fatalf("second approval failed: %v", err)
	}
	if again.Report.Status != string(entities.ReportStatusApproved) {
		t.Fatalf("expected APROBADO after re-approval, got %s", again.Report.Status)
	}
	if again.Reward != nil {
		t.Fatalf("expected no second grant, got %+v", again.Reward)
	}
}

// Two validators race on the same report; the version conflict retry must
// preserve both votes.
func TestConcurrentVotesBothLand(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, validator := range []string{"v1", "v2"} {
		wg.Add(1)
		go func(validatorID string) {
			defer wg.Done()
			_, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, validatorID, httptransport.SubmitVoteRequest{
				Decision: string(entities.DecisionApproved),
			})
			errs <- err
		}(validator)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent vote failed: %v", err)
		}
	}

	final, err := module.Handler.GetReportHandler(context.Background(), report.ReportID)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if final.Status != string(entities.ReportStatusApproved) {
		t.Fatalf("expected APROBADO after both approvals, got %s", final.Status)
	}
	approvals := 0
	for _, vote := range final.Votes {
		if vote.Decision == string(entities.DecisionApproved) {
			approvals++
		}
	}
	if approvals != 2 {
		t.Fatalf("expected both approvals recorded, got %d", approvals)
	}
}

func TestReportProgressCounts(t *testing.T) {
	module := NewInMemoryModule(nil)
	seedChallenge(module, "v1", "v2", "v3")

	report, err := module.Handler.SubmitReportHandler(context.Background(), "author-1", httptransport.SubmitReportRequest{
		ChallengeID: "challenge-1",
	})
	if err != nil {
		t.Fatalf("submit report failed: %v", err)
	}
	if _, err := module.Handler.SubmitVoteHandler(context.Background(), report.ReportID, "v1", httptransport.SubmitVoteRequest{
		Decision: string(entities.DecisionApproved),
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	progress, err := module.Handler.ReportProgressHandler(context.Background(), report.ReportID)
	if err != nil {
		t.Fatalf("progress query failed: %v", err)
	}
	if progress.Approved != 1 || progress.Rejected != 0 || progress.Pending != 2 {
		t.Fatalf("unexpected progress: %+v", progress)
	}
	if progress.Status != string(entities.ReportStatusInReview) {
		t.Fatalf("expected EN_REVISION, got %s", progress.Status)
	}
}

func TestGetReportUnknownID(t *testing.T) {
	module := NewInMemoryModule(nil)
	_, err := module.Handler.GetReportHandler(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrReportNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
