package entities

import "time"

type Decision string

const (
	DecisionPending  Decision = "PENDIENTE"
	DecisionApproved Decision = "APROBADO"
	DecisionRejected Decision = "RECHAZADO"
)

// ValidDecision reports whether the value is one of the three canonical
// decisions. Anything else in persisted state is corruption, not input.
func ValidDecision(decision Decision) bool {
	switch decision {
	case DecisionPending, DecisionApproved, DecisionRejected:
		return true
	default:
		return false
	}
}

// ValidationVote is one validator's standing decision on a progress report.
// Exactly one vote exists per (report, validator); re-voting overwrites.
type ValidationVote struct {
	ReportID    string
	ValidatorID string
	Decision    Decision
	Comment     string
	DecidedAt   time.Time
}
