package repository

import (
	"Linkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageCounterRepo interface {
	GetCount(ctx context.Context, userID uint64, platform string, date time.Time) (int, error)
	Increment(ctx context.Context, userID uint64, platform string, date time.Time) error
	DeleteBefore(ctx context.Context, date time.Time) (int64, error)
}

type usageCounterRepoImpl struct {
	db *gorm.DB
}

func NewUsageCounterRepository(db *gorm.DB) UsageCounterRepo {
	return &usageCounterRepoImpl{db: db}
}

// GetCount 只读查询，没有当日记录时返回 0，不创建行
func (r *usageCounterRepoImpl) GetCount(ctx context.Context, userID uint64, platform string, date time.Time) (int, error) {
	var counter model.UsageCounter
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ? AND usage_date = ?", userID, platform, truncateToDate(date)).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.Count, nil
}

// Increment 当日首次调用插入 count=1，之后原子地加一
func (r *usageCounterRepoImpl) Increment(ctx context.Context, userID uint64, platform string, date time.Time) error {
	counter := &model.UsageCounter{
		UserID:    userID,
		Platform:  platform,
		UsageDate: truncateToDate(date),
		Count:     1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}, {Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + 1"),
		}),
	}).Create(counter).Error
}

// DeleteBefore 清理过期计数行，配额语义只依赖当日行，历史行仅占空间
func (r *usageCounterRepoImpl) DeleteBefore(ctx context.Context, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("usage_date < ?", truncateToDate(date)).
		Delete(&model.UsageCounter{})
	return result.RowsAffected, result.Error
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
