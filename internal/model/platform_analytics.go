package model

import (
	"time"

	"gorm.io/datatypes"
)

// PlatformAnalytics 用户在某个平台上的分析数据快照
// (user_id, platform) 唯一，记录存在即表示已绑定 handle
type PlatformAnalytics struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"not null;uniqueIndex:idx_user_platform,columns:user_id,platform" json:"user_id"`
	Platform string `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_platform,columns:user_id,platform" json:"platform"`
	Handle   string `gorm:"type:varchar(64);not null" json:"handle"`

	// 资料区
	DisplayName    string `gorm:"type:varchar(128);not null" json:"display_name"`
	AvatarURL      string `gorm:"type:varchar(512);not null" json:"avatar_url"`
	Bio            string `gorm:"type:varchar(512);not null" json:"bio"`
	FollowerCount  int64  `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64  `gorm:"not null;default:0" json:"following_count"`
	PostCount      int64  `gorm:"not null;default:0" json:"post_count"`
	IsVerified     bool   `gorm:"type:tinyint(1);default:0" json:"is_verified"`
	IsPrivate      bool   `gorm:"type:tinyint(1);default:0" json:"is_private"`
	IsBusiness     bool   `gorm:"type:tinyint(1);default:0" json:"is_business"`
	Country        string `gorm:"type:varchar(64)" json:"country"`
	City           string `gorm:"type:varchar(64)" json:"city"`

	// 指标区（Instagram 侧）
	EngagementRate  float64 `gorm:"type:decimal(8,4);default:0" json:"engagement_rate"`
	AvgLikes        int64   `gorm:"not null;default:0" json:"avg_likes"`
	AvgComments     int64   `gorm:"not null;default:0" json:"avg_comments"`
	TotalEngagement int64   `gorm:"not null;default:0" json:"total_engagement"`

	// 指标区（TikTok 侧）
	HeartCount     int64 `gorm:"not null;default:0" json:"heart_count"`
	RankIndex      int   `gorm:"not null;default:0" json:"rank_index"`
	FlowIndex      int   `gorm:"not null;default:0" json:"flow_index"`
	Posts28Days    int64 `gorm:"column:posts_28d;not null;default:0" json:"posts_28d"`
	Likes28Days    int64 `gorm:"column:likes_28d;not null;default:0" json:"likes_28d"`
	Shares28Days   int64 `gorm:"column:shares_28d;not null;default:0" json:"shares_28d"`
	Comments28Days int64 `gorm:"column:comments_28d;not null;default:0" json:"comments_28d"`

	// 展示字符串与原始数值必须来自同一次抓取
	FollowerCountShow string `gorm:"type:varchar(32)" json:"follower_count_show"`
	HeartCountShow    string `gorm:"type:varchar(32)" json:"heart_count_show"`

	// 最近内容列表（仅 Instagram，最多 12 条，时间倒序）
	RecentItems datatypes.JSON `gorm:"type:json" json:"recent_items"`

	// FetchedAt 是上游抓取时间，区别于 UpdatedAt 的入库时间
	FetchedAt time.Time `gorm:"not null" json:"fetched_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformAnalytics) TableName() string {
	return "platform_analytics"
}

// RecentItem 单条内容摘要
type RecentItem struct {
	Shortcode    string `json:"shortcode"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	TakenAt      int64  `json:"taken_at"`
}
