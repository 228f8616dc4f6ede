package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"impulse/contexts/community-experience/reward-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type grantModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	ReportID  string    `gorm:"column:report_id;uniqueIndex"`
	Points    int       `gorm:"column:points"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (grantModel) TableName() string { return "reward_grants" }

type userPointsModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	TotalPoints int       `gorm:"column:total_points"`
	Grants      int       `gorm:"column:grants"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userPointsModel) TableName() string { return "user_points" }

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

func (r *Repository) HasGrant(ctx context.Context, reportID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&grantModel{}).
		Where("report_id = ?", strings.TrimSpace(reportID)).
		Count(&count).Error
	if err != nil {
		return false, r.logError("reward_repo_has_grant_failed", err,
			"report_id", strings.TrimSpace(reportID),
		)
	}
	return count > 0, nil
}

func (r *Repository) AppendGrant(ctx context.Context, grant ports.PointsGrant) error {
	row := grantModel{
		ID:        grant.GrantID,
		UserID:    grant.UserID,
		ReportID:  grant.ReportID,
		Points:    grant.Points,
		CreatedAt: grant.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// A concurrent redelivery already appended this grant.
			return nil
		}
		return r.logError("reward_repo_append_grant_failed", err,
			"report_id", grant.ReportID,
			"user_id", grant.UserID,
		)
	}
	return nil
}

func (r *Repository) IncrementUserPoints(
	ctx context.Context,
	userID string,
	points int,
	now time.Time,
) (ports.UserPoints, error) {
	userID = strings.TrimSpace(userID)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_points": gorm.Expr("user_points.total_points + ?", points),
			"grants":       gorm.Expr("user_points.grants + 1"),
			"updated_at":   now,
		}),
	}).Create(&userPointsModel{
		UserID:      userID,
		TotalPoints: points,
		Grants:      1,
		UpdatedAt:   now,
	}).Error
	if err != nil {
		return ports.UserPoints{}, r.logError("reward_repo_increment_failed", err,
			"user_id", userID,
		)
	}
	return r.GetUserPoints(ctx, userID)
}

func (r *Repository) GetUserPoints(ctx context.Context, userID string) (ports.UserPoints, error) {
	var row userPointsModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserPoints{UserID: strings.TrimSpace(userID)}, nil
		}
		return ports.UserPoints{}, r.logError("reward_repo_get_points_failed", err,
			"user_id", strings.TrimSpace(userID),
		)
	}
	return ports.UserPoints{
		UserID:      row.UserID,
		TotalPoints: row.TotalPoints,
		Grants:      row.Grants,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "community-experience/reward-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("reward postgres adapter failure", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
