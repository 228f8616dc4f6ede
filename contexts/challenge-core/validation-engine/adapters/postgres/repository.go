package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"impulse/contexts/challenge-core/validation-engine/domain/entities"
	domainerrors "impulse/contexts/challenge-core/validation-engine/domain/errors"
	"impulse/contexts/challenge-core/validation-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository implements the validation-engine ports on postgres. Report
// writes are compare-and-swap on the version column; a stale expected
// version surfaces the domain version-conflict sentinel so the use case can
// rerun the read-modify-write cycle.
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

func (r *Repository) GetChallenge(ctx context.Context, challengeID string) (entities.Challenge, error) {
	var row challengeModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(challengeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Challenge{}, domainerrors.ErrChallengeNotFound
		}
		return entities.Challenge{}, r.logError("validation_repo_get_challenge_failed", err,
			"challenge_id", strings.TrimSpace(challengeID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetRole(ctx context.Context, userID string) (ports.GlobalRole, error) {
	var row userRoleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrUserNotFound
		}
		return "", r.logError("validation_repo_get_role_failed", err,
			"user_id", strings.TrimSpace(userID),
		)
	}
	return ports.GlobalRole(row.Role), nil
}

func (r *Repository) CreateReport(ctx context.Context, report entities.ProgressReport) (int64, error) {
	const initialVersion = int64(1)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := reportModelFromEntity(report, initialVersion)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrVersionConflict
			}
			return err
		}
		return saveVotes(tx, report)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVersionConflict) {
			return 0, err
		}
		return 0, r.logError("validation_repo_create_report_failed", err,
			"report_id", strings.TrimSpace(report.ReportID),
		)
	}
	return initialVersion, nil
}

func (r *Repository) GetReport(ctx context.Context, reportID string) (entities.ProgressReport, int64, error) {
	var row reportModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(reportID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProgressReport{}, 0, domainerrors.ErrReportNotFound
		}
		return entities.ProgressReport{}, 0, r.logError("validation_repo_get_report_failed", err,
			"report_id", strings.TrimSpace(reportID),
		)
	}

	var votes []voteModel
	if err := r.db.WithContext(ctx).
		Where("report_id = ?", row.ID).
		Order("validator_id ASC").
		Find(&votes).Error; err != nil {
		return entities.ProgressReport{}, 0, r.logError("validation_repo_get_votes_failed", err,
			"report_id", row.ID,
		)
	}
	return row.toEntity(votes), row.Version, nil
}

func (r *Repository) SaveReport(
	ctx context.Context,
	report entities.ProgressReport,
	expectedVersion int64,
) (int64, error) {
	nextVersion := expectedVersion + 1
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := reportModelFromEntity(report, nextVersion)
		update := tx.Model(&reportModel{}).
			Where("id = ?", row.ID).
			Where("version = ?", expectedVersion).
			Updates(map[string]any{
				"status":         row.Status,
				"reward_applied": row.RewardApplied,
				"version":        nextVersion,
				"updated_at":     row.UpdatedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			// Either the row is gone or another writer bumped the version.
			var exists int64
			if err := tx.Model(&reportModel{}).
				Where("id = ?", row.ID).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return domainerrors.ErrReportNotFound
			}
			return domainerrors.ErrVersionConflict
		}
		return saveVotes(tx, report)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrVersionConflict) ||
			errors.Is(err, domainerrors.ErrReportNotFound) {
			return 0, err
		}
		return 0, r.logError("validation_repo_save_report_failed", err,
			"report_id", strings.TrimSpace(report.ReportID),
		)
	}
	return nextVersion, nil
}

func saveVotes(tx *gorm.DB, report entities.ProgressReport) error {
	for _, vote := range report.Votes {
		row := voteModelFromEntity(vote)
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "report_id"}, {Name: "validator_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"decision":   row.Decision,
				"comment":    row.Comment,
				"decided_at": row.DecidedAt,
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:        envelope.EventID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// Retried append of the same event id is a no-op.
			return nil
		}
		return r.logError("validation_repo_append_outbox_failed", err,
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("validation_repo_list_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:  row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).Error
	if err != nil {
		return r.logError("validation_repo_mark_outbox_failed", err,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "challenge-core/validation-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("validation postgres adapter failure", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
