package model

import "time"

// UsageCounter 每日刷新配额计数，按 (user_id, platform, usage_date) 唯一
// 只有成功的上游调用才会使计数增长，第二天首次查询自然从 0 开始
type UsageCounter struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_platform_date,columns:user_id,platform,usage_date"`
	Platform  string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_platform_date,columns:user_id,platform,usage_date"`
	UsageDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_platform_date,columns:user_id,platform,usage_date"`
	Count     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UsageCounter) TableName() string {
	return "usage_counters"
}
