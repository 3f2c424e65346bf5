package model

import "time"

// SocialLink 主页上的社交平台链接卡片
// 分析流水线成功刷新后会把摘要字段冗余写到这里，属于尽力而为的二次写入
type SocialLink struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_link_user_platform,columns:user_id,platform" json:"user_id"`
	Platform string `gorm:"type:varchar(16);not null;uniqueIndex:idx_link_user_platform,columns:user_id,platform" json:"platform"`
	Title    string `gorm:"type:varchar(128)" json:"title"`
	URL      string `gorm:"type:varchar(512)" json:"url"`

	// 冗余摘要
	FollowerCount  int64      `gorm:"not null;default:0" json:"follower_count"`
	MediaCount     int64      `gorm:"not null;default:0" json:"media_count"`
	EngagementRate float64    `gorm:"type:decimal(8,4);default:0" json:"engagement_rate"`
	IsVerified     bool       `gorm:"type:tinyint(1);default:0" json:"is_verified"`
	LastScrapedAt  *time.Time `json:"last_scraped_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SocialLink) TableName() string {
	return "social_links"
}
