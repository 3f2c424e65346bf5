package dto

import "time"

// SaveHandleDTO 首次绑定平台账号
type SaveHandleDTO struct {
	Handle string `json:"handle" validate:"required,min=1,max=64"`
}

// RecentItemDTO 最近内容摘要
type RecentItemDTO struct {
	Shortcode    string `json:"shortcode"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	TakenAt      int64  `json:"taken_at"`
}

// PlatformAnalyticsDTO 分析数据返回体
type PlatformAnalyticsDTO struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`

	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url"`
	Bio            string `json:"bio"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	PostCount      int64  `json:"post_count"`
	IsVerified     bool   `json:"is_verified"`
	IsPrivate      bool   `json:"is_private"`
	IsBusiness     bool   `json:"is_business"`
	Country        string `json:"country"`
	City           string `json:"city"`

	EngagementRate  float64 `json:"engagement_rate"`
	AvgLikes        int64   `json:"avg_likes"`
	AvgComments     int64   `json:"avg_comments"`
	TotalEngagement int64   `json:"total_engagement"`

	HeartCount     int64 `json:"heart_count"`
	RankIndex      int   `json:"rank_index"`
	FlowIndex      int   `json:"flow_index"`
	Posts28Days    int64 `json:"posts_28d"`
	Likes28Days    int64 `json:"likes_28d"`
	Shares28Days   int64 `json:"shares_28d"`
	Comments28Days int64 `json:"comments_28d"`

	FollowerCountShow string `json:"follower_count_show"`
	HeartCountShow    string `json:"heart_count_show"`

	RecentItems []*RecentItemDTO `json:"recent_items,omitempty"`

	// 私密账号能拿到的指标有限，前端据此展示"设为公开后可查看完整数据"
	AnalyticsLimited bool `json:"analytics_limited"`

	FetchedAt time.Time `json:"fetched_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuotaStatusDTO 配额用量展示，例如 "2/3"
type QuotaStatusDTO struct {
	Platform string `json:"platform"`
	Used     int    `json:"used"`
	Limit    int    `json:"limit"`
}
