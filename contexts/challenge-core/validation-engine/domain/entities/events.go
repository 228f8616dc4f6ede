package entities

import "time"

// OutboundEvent kinds handed to the notification collaborator.
const (
	EventTypeReportStatusChanged = "report.status_changed"
	EventTypeRewardGranted       = "reward.granted"
)

// ReportStatusChanged notifies the report author about a consensus change.
type ReportStatusChanged struct {
	ReportID         string       `json:"report_id"`
	ChallengeID      string       `json:"challenge_id"`
	AuthorID         string       `json:"author_id"`
	OldStatus        ReportStatus `json:"old_status"`
	NewStatus        ReportStatus `json:"new_status"`
	ValidatorComment string       `json:"validator_comment,omitempty"`
	At               time.Time    `json:"at"`
}

// RewardGranted is produced at most once per report, on the transition into
// APROBADO.
type RewardGranted struct {
	UserID   string    `json:"user_id"`
	ReportID string    `json:"report_id"`
	Points   int       `json:"points"`
	At       time.Time `json:"at"`
}

// OutboundEvent is the union handed across the notification boundary.
// Exactly one of the payload fields is set, matching EventType.
type OutboundEvent struct {
	EventType     string
	StatusChanged *ReportStatusChanged
	Reward        *RewardGranted
}
