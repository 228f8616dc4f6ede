package services

import (
	"testing"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

func votesOf(decisions ...entities.Decision) []entities.ValidationVote {
	votes := make([]entities.ValidationVote, 0, len(decisions))
	for i, decision := range decisions {
		votes = append(votes, entities.ValidationVote{
			ReportID:    "report-1",
			ValidatorID: "validator-" + string(rune('a'+i)),
			Decision:    decision,
		})
	}
	return votes
}

func TestComputeStatusEmptySnapshot(t *testing.T) {
	if got := ComputeStatus(nil); got != entities.ReportStatusPending {
		t.Fatalf("expected PENDIENTE for empty vote set, got %s", got)
	}
}

func TestComputeStatusSingleRejectionWins(t *testing.T) {
	cases := [][]entities.Decision{
		{entities.DecisionRejected},
		{entities.DecisionApproved, entities.DecisionRejected},
		{entities.DecisionRejected, entities.DecisionApproved, entities.DecisionApproved},
		{entities.DecisionPending, entities.DecisionRejected, entities.DecisionPending},
	}
	for _, decisions := range cases {
		if got := ComputeStatus(votesOf(decisions...)); got != entities.ReportStatusRejected {
			t.Fatalf("expected RECHAZADO for %v, got %s", decisions, got)
		}
	}
}

func TestComputeStatusUnanimousApproval(t *testing.T) {
	votes := votesOf(entities.DecisionApproved, entities.DecisionApproved, entities.DecisionApproved)
	if got := ComputeStatus(votes); got != entities.ReportStatusApproved {
		t.Fatalf("expected APROBADO, got %s", got)
	}
}

func TestComputeStatusPartialApprovalInReview(t *testing.T) {
	votes := votesOf(entities.DecisionApproved, entities.DecisionPending)
	if got := ComputeStatus(votes); got != entities.ReportStatusInReview {
		t.Fatalf("expected EN_REVISION, got %s", got)
	}
}

func TestComputeStatusAllPending(t *testing.T) {
	votes := votesOf(entities.DecisionPending, entities.DecisionPending)
	if got := ComputeStatus(votes); got != entities.ReportStatusPending {
		t.Fatalf("expected PENDIENTE, got %s", got)
	}
}

// The aggregate must be a pure function of the decision multiset; vote order
// never changes the verdict.
func TestComputeStatusOrderIndependent(t *testing.T) {
	sets := [][]entities.Decision{
		{entities.DecisionApproved, entities.DecisionRejected, entities.DecisionPending},
		{entities.DecisionApproved, entities.DecisionApproved, entities.DecisionPending},
		{entities.DecisionApproved, entities.DecisionApproved, entities.DecisionApproved},
		{entities.DecisionPending, entities.DecisionPending, entities.DecisionRejected},
	}
	for _, set := range sets {
		want := ComputeStatus(votesOf(set...))
		permute(set, func(perm []entities.Decision) {
			if got := ComputeStatus(votesOf(perm...)); got != want {
				t.Fatalf("order dependence: %v gave %s, %v gave %s", set, want, perm, got)
			}
		})
	}
}

func permute(set []entities.Decision, visit func([]entities.Decision)) {
	var rec func(k int)
	rec = func(k int) {
		if k == len(set) {
			visit(set)
			return
		}
		for i := k; i < len(set); i++ {
			set[k], set[i] = set[i], set[k]
			rec(k + 1)
			set[k], set[i] = set[i], set[k]
		}
	}
	rec(0)
}
