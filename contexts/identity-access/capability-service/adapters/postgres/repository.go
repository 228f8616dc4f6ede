package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"impulse/contexts/identity-access/capability-service/domain/entities"
	domainerrors "impulse/contexts/identity-access/capability-service/domain/errors"

	"gorm.io/gorm"
)

// Repository implements the capability-service read ports on postgres.
// Both lookups are single-row point reads; resolution stays pure and in
// memory on top of them.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetChallengeSnapshot(ctx context.Context, challengeID string) (entities.ChallengeSnapshot, error) {
	var model challengeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ChallengeSnapshot{}, domainerrors.ErrChallengeNotFound
	}
	if err != nil {
		r.logger.Error("capability challenge load failed",
			"event", "capability_challenge_load_failed",
			"module", "identity-access/capability-service",
			"layer", "adapter",
			"challenge_id", challengeID,
			"error", err.Error(),
		)
		return entities.ChallengeSnapshot{}, err
	}
	return model.toEntity(), nil
}

// GetRole returns RoleUser for unknown users; absence of a role row is not
// an error for resolution purposes.
func (r *Repository) GetRole(ctx context.Context, userID string) (entities.GlobalRole, error) {
	var model userRoleModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.RoleUser, nil
	}
	if err != nil {
		return entities.RoleUser, err
	}
	switch entities.GlobalRole(model.Role) {
	case entities.RoleAdmin:
		return entities.RoleAdmin, nil
	case entities.RoleModerator:
		return entities.RoleModerator, nil
	default:
		return entities.RoleUser, nil
	}
}
