package postgresadapter

import (
	"encoding/json"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
)

type challengeModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	OwnerID      string    `gorm:"column:owner_id"`
	Title        string    `gorm:"column:title"`
	State        string    `gorm:"column:state"`
	Difficulty   string    `gorm:"column:difficulty"`
	Visibility   string    `gorm:"column:visibility"`
	ValidatorIDs string    `gorm:"column:validator_ids"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (challengeModel) TableName() string { return "challenges" }

func (m challengeModel) toEntity() entities.Challenge {
	var validators []string
	_ = json.Unmarshal([]byte(m.ValidatorIDs), &validators)
	return entities.Challenge{
		ChallengeID:  m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		State:        entities.ChallengeState(m.State),
		Difficulty:   entities.Difficulty(m.Difficulty),
		Visibility:   entities.Visibility(m.Visibility),
		ValidatorIDs: validators,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type reportModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	ChallengeID       string    `gorm:"column:challenge_id"`
	AuthorID          string    `gorm:"column:author_id"`
	Description       string    `gorm:"column:description"`
	EvidenceRef       string    `gorm:"column:evidence_ref"`
	SubmittedAt       time.Time `gorm:"column:submitted_at"`
	ValidatorSnapshot string    `gorm:"column:validator_snapshot"`
	Status            string    `gorm:"column:status"`
	RewardApplied     bool      `gorm:"column:reward_applied"`
	Version           int64     `gorm:"column:version"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (reportModel) TableName() string { return "progress_reports" }

func reportModelFromEntity(report entities.ProgressReport, version int64) reportModel {
	snapshot, _ := json.Marshal(report.ValidatorSnapshot)
	return reportModel{
		ID:                report.ReportID,
		ChallengeID:       report.ChallengeID,
		AuthorID:          report.AuthorID,
		Description:       report.Description,
		EvidenceRef:       report.EvidenceRef,
		SubmittedAt:       report.SubmittedAt,
		ValidatorSnapshot: string(snapshot),
		Status:            string(report.Status),
		RewardApplied:     report.RewardApplied,
		Version:           version,
		UpdatedAt:         report.UpdatedAt,
	}
}

func (m reportModel) toEntity(votes []voteModel) entities.ProgressReport {
	var snapshot []string
	_ = json.Unmarshal([]byte(m.ValidatorSnapshot), &snapshot)
	report := entities.ProgressReport{
		ReportID:          m.ID,
		ChallengeID:       m.ChallengeID,
		AuthorID:          m.AuthorID,
		Description:       m.Description,
		EvidenceRef:       m.EvidenceRef,
		SubmittedAt:       m.SubmittedAt,
		ValidatorSnapshot: snapshot,
		Status:            entities.ReportStatus(m.Status),
		RewardApplied:     m.RewardApplied,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, vote := range votes {
		report.Votes = append(report.Votes, vote.toEntity())
	}
	return report
}

type voteModel struct {
	ReportID    string    `gorm:"column:report_id;primaryKey"`
	ValidatorID string    `gorm:"column:validator_id;primaryKey"`
	Decision    string    `gorm:"column:decision"`
	Comment     string    `gorm:"column:comment"`
	DecidedAt   time.Time `gorm:"column:decided_at"`
}

func (voteModel) TableName() string { return "validation_votes" }

func voteModelFromEntity(vote entities.ValidationVote) voteModel {
	return voteModel{
		ReportID:    vote.ReportID,
		ValidatorID: vote.ValidatorID,
		Decision:    string(vote.Decision),
		Comment:     vote.Comment,
		DecidedAt:   vote.DecidedAt,
	}
}

func (m voteModel) toEntity() entities.ValidationVote {
	return entities.ValidationVote{
		ReportID:    m.ReportID,
		ValidatorID: m.ValidatorID,
		Decision:    entities.Decision(m.Decision),
		Comment:     m.Comment,
		DecidedAt:   m.DecidedAt,
	}
}

type userRoleModel struct {
	UserID string `gorm:"column:user_id;primaryKey"`
	Role   string `gorm:"column:role"`
}

func (userRoleModel) TableName() string { return "user_roles" }

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "validation_outbox" }
