package service

import (
	"fmt"
	"testing"
	"time"

	"Linkstone/internal/model"
	"Linkstone/internal/pkg/consts"
	"Linkstone/internal/pkg/provider"

	"github.com/goccy/go-json"
)

var testFetchedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeInstagramDerivedMetrics(t *testing.T) {
	report := &provider.InstagramReport{
		UserInfo: provider.InstagramUserInfo{
			Username:      "alice",
			FullName:      "Alice",
			FollowerCount: 1000,
			MediaCount:    2,
		},
		Posts: []provider.InstagramPost{
			{Shortcode: "a", LikeCount: 100, CommentCount: 8, TakenAtTimestamp: 200},
			{Shortcode: "b", LikeCount: 50, CommentCount: 7, TakenAtTimestamp: 100},
		},
	}

	record := NormalizeInstagram(7, "alice", report, testFetchedAt)

	// 平均值取整数除法：150/2=75，15/2=7
	if record.AvgLikes != 75 {
		t.Errorf("avg_likes = %d, want 75", record.AvgLikes)
	}
	if record.AvgComments != 7 {
		t.Errorf("avg_comments = %d, want 7", record.AvgComments)
	}
	if record.TotalEngagement != 165 {
		t.Errorf("total_engagement = %d, want 165", record.TotalEngagement)
	}

	// (165 / 2 条) / 1000 粉丝 * 100 = 8.25
	if got := record.EngagementRate; got < 8.249 || got > 8.251 {
		t.Errorf("engagement_rate = %f, want 8.25", got)
	}

	if record.UserID != 7 || record.Platform != consts.PlatformInstagram {
		t.Errorf("归属字段不正确: user_id=%d platform=%q", record.UserID, record.Platform)
	}
	if !record.FetchedAt.Equal(testFetchedAt) {
		t.Errorf("fetched_at = %v, want %v", record.FetchedAt, testFetchedAt)
	}
}

// 零条内容时派生指标全部为 0，不报错
func TestNormalizeInstagramNoPosts(t *testing.T) {
	report := &provider.InstagramReport{
		UserInfo: provider.InstagramUserInfo{Username: "alice", FollowerCount: 1000},
	}

	record := NormalizeInstagram(7, "alice", report, testFetchedAt)

	if record.AvgLikes != 0 || record.AvgComments != 0 || record.TotalEngagement != 0 {
		t.Errorf("零内容时派生指标应为 0: %+v", record)
	}
	if record.EngagementRate != 0 {
		t.Errorf("engagement_rate = %f, want 0", record.EngagementRate)
	}
}

func TestNormalizeInstagramTextDefaults(t *testing.T) {
	report := &provider.InstagramReport{
		UserInfo: provider.InstagramUserInfo{Username: "alice"},
	}

	record := NormalizeInstagram(7, "alice", report, testFetchedAt)

	if record.DisplayName != consts.NoData {
		t.Errorf("display_name = %q, want %q", record.DisplayName, consts.NoData)
	}
	if record.Bio != consts.NoData {
		t.Errorf("bio = %q, want %q", record.Bio, consts.NoData)
	}
}

// 最近内容按时间倒序，最多保留 12 条
func TestNormalizeInstagramRecentItemsSortedAndCapped(t *testing.T) {
	var posts []provider.InstagramPost
	for i := 0; i < 20; i++ {
		posts = append(posts, provider.InstagramPost{
			Shortcode:        fmt.Sprintf("p%d", i),
			TakenAtTimestamp: int64(1000 + i),
		})
	}

	report := &provider.InstagramReport{
		UserInfo: provider.InstagramUserInfo{Username: "alice"},
		Posts:    posts,
	}
	record := NormalizeInstagram(7, "alice", report, testFetchedAt)

	var items []model.RecentItem
	if err := json.Unmarshal(record.RecentItems, &items); err != nil {
		t.Fatalf("unmarshal recent items: %v", err)
	}

	if len(items) != consts.RecentItemLimit {
		t.Fatalf("len(items) = %d, want %d", len(items), consts.RecentItemLimit)
	}
	if items[0].Shortcode != "p19" {
		t.Errorf("首条应是最新内容 p19，实际 %q", items[0].Shortcode)
	}
	for i := 1; i < len(items); i++ {
		if items[i].TakenAt > items[i-1].TakenAt {
			t.Fatalf("第 %d 条乱序: %d > %d", i, items[i].TakenAt, items[i-1].TakenAt)
		}
	}
}

// 私密账号作为数据返回，不是错误
func TestNormalizeInstagramPrivateAccount(t *testing.T) {
	report := &provider.InstagramReport{
		UserInfo: provider.InstagramUserInfo{Username: "alice", IsPrivate: true},
	}

	record := NormalizeInstagram(7, "alice", report, testFetchedAt)
	if !record.IsPrivate {
		t.Error("is_private 应当透传")
	}
}

func TestNormalizeTikTokMetricsPrecedence(t *testing.T) {
	basic := &provider.TikTokBasicInfo{
		UID:               "u-100",
		Nickname:          "Bob",
		FollowerCount:     25000,
		FollowerCountShow: "25K",
		VideoCount:        80,
	}
	info := &provider.TikTokUserInfo{
		Country:        "JP",
		HeartCount:     900000,
		HeartCountShow: "900K",
	}
	metrics := &provider.TikTokUserMetrics{
		FollowerCount:     26000,
		FollowerCountShow: "26K",
		HeartCount:        910000,
		HeartCountShow:    "910K",
		RankIndex:         7,
		Posts28Days:       12,
	}

	record := NormalizeTikTok(7, "bob", basic, info, metrics, testFetchedAt)

	// 重叠字段以 metrics 为准，展示串必须来自同一步
	if record.FollowerCount != 26000 || record.FollowerCountShow != "26K" {
		t.Errorf("follower = %d/%q, want 26000/26K", record.FollowerCount, record.FollowerCountShow)
	}
	if record.HeartCount != 910000 || record.HeartCountShow != "910K" {
		t.Errorf("heart = %d/%q, want 910000/910K", record.HeartCount, record.HeartCountShow)
	}
	if record.RankIndex != 7 || record.Posts28Days != 12 {
		t.Errorf("metrics 字段未透传: %+v", record)
	}
	if record.Country != "JP" {
		t.Errorf("country = %q, want JP", record.Country)
	}
}

// 第 2、3 步失败时对应字段保持缺省，基础资料仍然可用
func TestNormalizeTikTokDegradedSteps(t *testing.T) {
	basic := &provider.TikTokBasicInfo{
		UID:               "u-100",
		Nickname:          "Bob",
		FollowerCount:     25000,
		FollowerCountShow: "25K",
	}

	record := NormalizeTikTok(7, "bob", basic, nil, nil, testFetchedAt)

	if record.FollowerCount != 25000 || record.FollowerCountShow != "25K" {
		t.Errorf("基础资料应保留: %d/%q", record.FollowerCount, record.FollowerCountShow)
	}
	if record.HeartCount != 0 || record.RankIndex != 0 || record.Posts28Days != 0 {
		t.Errorf("失败步骤的字段应保持缺省: %+v", record)
	}
	if record.Country != "" {
		t.Errorf("country = %q, want empty", record.Country)
	}
}

// 上游没给展示串时按原始数值重新生成
func TestNormalizeTikTokRegeneratesShowStrings(t *testing.T) {
	basic := &provider.TikTokBasicInfo{
		UID:           "u-100",
		Nickname:      "Bob",
		FollowerCount: 25000,
	}
	info := &provider.TikTokUserInfo{HeartCount: 1_200_000}

	record := NormalizeTikTok(7, "bob", basic, info, nil, testFetchedAt)

	if record.FollowerCountShow != "25K" {
		t.Errorf("follower_count_show = %q, want 25K", record.FollowerCountShow)
	}
	if record.HeartCountShow != "1.2M" {
		t.Errorf("heart_count_show = %q, want 1.2M", record.HeartCountShow)
	}
}
