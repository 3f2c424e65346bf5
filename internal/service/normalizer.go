package service

import (
	"Linkstone/internal/model"
	"Linkstone/internal/pkg/consts"
	"Linkstone/internal/pkg/provider"
	"Linkstone/internal/pkg/util"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// 归一化层：把各提供方的原始报文映射成统一的 PlatformAnalytics，
// 缺省值只在这里补，调用侧不再散落判空逻辑。
// 纯函数，相同输入产出相同结果。

// NormalizeInstagram 映射 Instagram 报告并计算派生指标
// 零条内容时所有派生值为 0，不是错误
func NormalizeInstagram(userID uint64, handle string, report *provider.InstagramReport, fetchedAt time.Time) *model.PlatformAnalytics {
	info := report.UserInfo

	record := &model.PlatformAnalytics{
		UserID:   userID,
		Platform: consts.PlatformInstagram,
		Handle:   handle,

		DisplayName:    orNoData(info.FullName),
		AvatarURL:      info.ProfilePicURL,
		Bio:            orNoData(info.Biography),
		FollowerCount:  info.FollowerCount,
		FollowingCount: info.FollowingCount,
		PostCount:      info.MediaCount,
		IsVerified:     info.IsVerified,
		IsPrivate:      info.IsPrivate,
		IsBusiness:     info.IsBusinessAccount,
		Country:        info.Country,
		City:           info.City,

		FollowerCountShow: util.FormatCount(info.FollowerCount),

		FetchedAt: fetchedAt,
	}

	items := recentItems(report.Posts)

	var sumLikes, sumComments int64
	for _, item := range items {
		sumLikes += item.LikeCount
		sumComments += item.CommentCount
	}

	if n := int64(len(items)); n > 0 {
		record.AvgLikes = sumLikes / n
		record.AvgComments = sumComments / n
		record.TotalEngagement = sumLikes + sumComments
		if info.FollowerCount > 0 {
			record.EngagementRate = float64(record.TotalEngagement) / float64(n) / float64(info.FollowerCount) * 100
		}
	}

	if data, err := json.Marshal(items); err == nil {
		record.RecentItems = datatypes.JSON(data)
	}

	return record
}

// recentItems 按时间倒序取前 N 条
func recentItems(posts []provider.InstagramPost) []model.RecentItem {
	sorted := make([]provider.InstagramPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TakenAtTimestamp > sorted[j].TakenAtTimestamp
	})

	if len(sorted) > consts.RecentItemLimit {
		sorted = sorted[:consts.RecentItemLimit]
	}

	items := make([]model.RecentItem, 0, len(sorted))
	for _, p := range sorted {
		items = append(items, model.RecentItem{
			Shortcode:    p.Shortcode,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			TakenAt:      p.TakenAtTimestamp,
		})
	}
	return items
}

// NormalizeTikTok 合并三步报文，info/metrics 为 nil 表示该步失败，
// 对应字段保持缺省。重叠字段以 metrics 为准，展示串必须和采用的
// 原始数值来自同一步，缺失时按原始数值重新生成。
func NormalizeTikTok(userID uint64, handle string, basic *provider.TikTokBasicInfo, info *provider.TikTokUserInfo, metrics *provider.TikTokUserMetrics, fetchedAt time.Time) *model.PlatformAnalytics {
	record := &model.PlatformAnalytics{
		UserID:   userID,
		Platform: consts.PlatformTikTok,
		Handle:   handle,

		DisplayName:    orNoData(basic.Nickname),
		AvatarURL:      basic.AvatarURL,
		Bio:            orNoData(basic.Signature),
		FollowerCount:  basic.FollowerCount,
		FollowingCount: basic.FollowingCount,
		PostCount:      basic.VideoCount,
		IsVerified:     basic.IsVerified,
		IsPrivate:      basic.IsPrivate,

		FollowerCountShow: basic.FollowerCountShow,

		FetchedAt: fetchedAt,
	}

	if info != nil {
		record.Country = info.Country
		record.City = info.City
		record.IsBusiness = info.IsBusiness
		record.HeartCount = info.HeartCount
		record.HeartCountShow = info.HeartCountShow
	}

	if metrics != nil {
		if metrics.FollowerCount > 0 {
			record.FollowerCount = metrics.FollowerCount
			record.FollowerCountShow = metrics.FollowerCountShow
		}
		if metrics.HeartCount > 0 {
			record.HeartCount = metrics.HeartCount
			record.HeartCountShow = metrics.HeartCountShow
		}
		record.RankIndex = metrics.RankIndex
		record.FlowIndex = metrics.FlowIndex
		record.Posts28Days = metrics.Posts28Days
		record.Likes28Days = metrics.Likes28Days
		record.Comments28Days = metrics.Comments28Days
		record.Shares28Days = metrics.Shares28Days
	}

	if record.FollowerCountShow == "" {
		record.FollowerCountShow = util.FormatCount(record.FollowerCount)
	}
	if record.HeartCountShow == "" {
		record.HeartCountShow = util.FormatCount(record.HeartCount)
	}

	return record
}

func orNoData(s string) string {
	if s == "" {
		return consts.NoData
	}
	return s
}
