package repository

import (
	"Linkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepo interface {
	SaveOrUpdate(ctx context.Context, record *model.PlatformAnalytics) error
	GetByUserPlatform(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error)
	DeleteByUserPlatform(ctx context.Context, userID uint64, platform string) error
}

type analyticsRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepo {
	return &analyticsRepoImpl{db: db}
}

// SaveOrUpdate 采用 Upsert 逻辑。(user_id, platform) 已存在时整行覆盖，
// 单条语句落库，不存在半写状态
func (r *analyticsRepoImpl) SaveOrUpdate(ctx context.Context, record *model.PlatformAnalytics) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"handle",
			"display_name",
			"avatar_url",
			"bio",
			"follower_count",
			"following_count",
			"post_count",
			"is_verified",
			"is_private",
			"is_business",
			"country",
			"city",
			"engagement_rate",
			"avg_likes",
			"avg_comments",
			"total_engagement",
			"heart_count",
			"rank_index",
			"flow_index",
			"posts_28d",
			"likes_28d",
			"shares_28d",
			"comments_28d",
			"follower_count_show",
			"heart_count_show",
			"recent_items",
			"fetched_at",
			"updated_at",
		}),
	}).Create(record).Error
}

func (r *analyticsRepoImpl) GetByUserPlatform(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error) {
	var record model.PlatformAnalytics
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteByUserPlatform 删除即解绑，之后的读取等同于从未保存过 handle
func (r *analyticsRepoImpl) DeleteByUserPlatform(ctx context.Context, userID uint64, platform string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&model.PlatformAnalytics{}).Error
}
