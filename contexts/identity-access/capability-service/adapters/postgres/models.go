package postgresadapter

import (
	"encoding/json"

	"impulse/contexts/identity-access/capability-service/domain/entities"
)

type challengeModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	OwnerID      string `gorm:"column:owner_id"`
	State        string `gorm:"column:state"`
	Visibility   string `gorm:"column:visibility"`
	ValidatorIDs string `gorm:"column:validator_ids"`
}

func (challengeModel) TableName() string { return "challenges" }

func (m challengeModel) toEntity() entities.ChallengeSnapshot {
	var validators []string
	_ = json.Unmarshal([]byte(m.ValidatorIDs), &validators)
	return entities.ChallengeSnapshot{
		ChallengeID:  m.ID,
		OwnerID:      m.OwnerID,
		State:        entities.ChallengeState(m.State),
		Visibility:   entities.Visibility(m.Visibility),
		ValidatorIDs: validators,
	}
}

type userRoleModel struct {
	UserID string `gorm:"column:user_id;primaryKey"`
	Role   string `gorm:"column:role"`
}

func (userRoleModel) TableName() string { return "user_roles" }
