package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitVoteRequest struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment,omitempty"`
}

type SubmitReportRequest struct {
	ChallengeID string `json:"challenge_id"`
	Description string `json:"description"`
	EvidenceRef string `json:"evidence_ref,omitempty"`
}

type ReopenReportRequest struct {
	Reason string `json:"reason,omitempty"`
}

type VoteView struct {
	ValidatorID string    `json:"validator_id"`
	Decision    string    `json:"decision"`
	Comment     string    `json:"comment,omitempty"`
	DecidedAt   time.Time `json:"decided_at"`
}

type TransitionView struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type RewardView struct {
	UserID   string `json:"user_id"`
	ReportID string `json:"report_id"`
	Points   int    `json:"points"`
}

type ReportResponse struct {
	ReportID          string     `json:"report_id"`
	ChallengeID       string     `json:"challenge_id"`
	AuthorID          string     `json:"author_id"`
	Status            string     `json:"status"`
	ValidatorSnapshot []string   `json:"validator_snapshot"`
	Votes             []VoteView `json:"votes"`
	RewardApplied     bool       `json:"reward_applied"`
	SubmittedAt       time.Time  `json:"submitted_at"`
}

type SubmitVoteResponse struct {
	Report     ReportResponse  `json:"report"`
	Transition *TransitionView `json:"transition,omitempty"`
	Reward     *RewardView     `json:"reward,omitempty"`
}

type ReportProgressResponse struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Pending  int    `json:"pending"`
}
