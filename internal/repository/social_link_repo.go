package repository

import (
	"Linkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// LinkSummary 刷新成功后冗余到链接卡片的摘要字段
type LinkSummary struct {
	FollowerCount  int64
	MediaCount     int64
	EngagementRate float64
	IsVerified     bool
	LastScrapedAt  time.Time
}

type SocialLinkRepo interface {
	GetByUserPlatform(ctx context.Context, userID uint64, platform string) (*model.SocialLink, error)
	UpdateSummary(ctx context.Context, userID uint64, platform string, summary *LinkSummary) error
}

type socialLinkRepoImpl struct {
	db *gorm.DB
}

func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepo {
	return &socialLinkRepoImpl{db: db}
}

func (r *socialLinkRepoImpl) GetByUserPlatform(ctx context.Context, userID uint64, platform string) (*model.SocialLink, error) {
	var link model.SocialLink
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// UpdateSummary 未绑定链接卡片时静默跳过，影响行数为 0 不算错误
func (r *socialLinkRepoImpl) UpdateSummary(ctx context.Context, userID uint64, platform string, summary *LinkSummary) error {
	return r.db.WithContext(ctx).
		Model(&model.SocialLink{}).
		Where("user_id = ? AND platform = ?", userID, platform).
		Updates(map[string]interface{}{
			"follower_count":  summary.FollowerCount,
			"media_count":     summary.MediaCount,
			"engagement_rate": summary.EngagementRate,
			"is_verified":     summary.IsVerified,
			"last_scraped_at": summary.LastScrapedAt,
		}).Error
}
