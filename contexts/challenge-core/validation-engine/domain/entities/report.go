package entities

import "time"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDIENTE"
	ReportStatusInReview ReportStatus = "EN_REVISION"
	ReportStatusApproved ReportStatus = "APROBADO"
	ReportStatusRejected ReportStatus = "RECHAZADO"
)

// Terminal reports whether the status closes the report against normal
// votes. Closed reports only change through a moderator reopen.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusApproved || s == ReportStatusRejected
}

// ProgressReport carries the validator snapshot captured at submission time.
// Later edits to the challenge's validator list never touch open reports.
// Status is a cached aggregate and must always equal the recomputation over
// Votes.
type ProgressReport struct {
	ReportID          string
	ChallengeID       string
	AuthorID          string
	Description       string
	EvidenceRef       string
	SubmittedAt       time.Time
	ValidatorSnapshot []string
	Votes             []ValidationVote
	Status            ReportStatus
	RewardApplied     bool
	UpdatedAt         time.Time
}

func (r ProgressReport) InSnapshot(validatorID string) bool {
	for _, id := range r.ValidatorSnapshot {
		if id == validatorID {
			return true
		}
	}
	return false
}

// VoteBy returns the validator's current vote, if any.
func (r ProgressReport) VoteBy(validatorID string) (ValidationVote, bool) {
	for _, vote := range r.Votes {
		if vote.ValidatorID == validatorID {
			return vote, true
		}
	}
	return ValidationVote{}, false
}

// StatusTransition records an aggregate status change produced by a vote
// write or a moderator reopen. Old == New never leaves the engine.
type StatusTransition struct {
	Old ReportStatus
	New ReportStatus
}
