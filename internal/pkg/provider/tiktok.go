package provider

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"

	"Linkstone/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// TikTokAPI TikTok 分析数据提供方，固定三步链路：
//  1. FindUser 按 handle 解析出 uid，失败则整个操作失败
//  2. FetchUserInfo 按 uid 拉扩展资料
//  3. FetchUserMetrics 按 uid 拉滚动指标
//
// 2、3 步是否容忍失败由编排层决定，客户端本身每步只做一次调用
type TikTokAPI interface {
	FindUser(ctx context.Context, handle string) (*TikTokBasicInfo, error)
	FetchUserInfo(ctx context.Context, uid string) (*TikTokUserInfo, error)
	FetchUserMetrics(ctx context.Context, uid string) (*TikTokUserMetrics, error)
}

// TikTokBasicInfo find 接口的原始报文，除 uid 外也带基础资料
type TikTokBasicInfo struct {
	UID               string `json:"uid"`
	UniqueID          string `json:"unique_id"`
	Nickname          string `json:"nickname"`
	AvatarURL         string `json:"avatar_url"`
	Signature         string `json:"signature"`
	FollowerCount     int64  `json:"follower_count"`
	FollowerCountShow string `json:"follower_count_show"`
	FollowingCount    int64  `json:"following_count"`
	VideoCount        int64  `json:"video_count"`
	IsVerified        bool   `json:"is_verified"`
	IsPrivate         bool   `json:"is_private"`
}

// TikTokUserInfo 扩展资料报文
type TikTokUserInfo struct {
	Country        string `json:"country"`
	City           string `json:"city"`
	IsBusiness     bool   `json:"is_business"`
	HeartCount     int64  `json:"heart_count"`
	HeartCountShow string `json:"heart_count_show"`
}

// TikTokUserMetrics 滚动指标报文，28 天聚合加榜单指数
// follower_count 在此重复出现，编排层以这里的数值为准
type TikTokUserMetrics struct {
	FollowerCount     int64  `json:"follower_count"`
	FollowerCountShow string `json:"follower_count_show"`
	HeartCount        int64  `json:"heart_count"`
	HeartCountShow    string `json:"heart_count_show"`
	RankIndex         int    `json:"rank_index"`
	FlowIndex         int    `json:"flow_index"`
	Posts28Days       int64  `json:"posts_28d"`
	Likes28Days       int64  `json:"likes_28d"`
	Comments28Days    int64  `json:"comments_28d"`
	Shares28Days      int64  `json:"shares_28d"`
}

type tiktokClient struct {
	http *resty.Client
}

func NewTikTokClient(cfg config.ProviderConfig) TikTokAPI {
	return &tiktokClient{http: newClient(cfg)}
}

func (s *tiktokClient) FindUser(ctx context.Context, handle string) (*TikTokBasicInfo, error) {
	var info TikTokBasicInfo

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("unique_id", handle).
		SetResult(&info).
		Get("/user/find")
	if err != nil {
		log.WarnContext(ctx, "tiktok find request failed", "handle", handle, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrHandleNotFound
	}
	if resp.IsError() {
		log.WarnContext(ctx, "tiktok find upstream error", "handle", handle, "status", resp.StatusCode())
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	// 没有 uid 等同于账号不存在，后续两步无从谈起
	if info.UID == "" {
		return nil, ErrHandleNotFound
	}

	return &info, nil
}

func (s *tiktokClient) FetchUserInfo(ctx context.Context, uid string) (*TikTokUserInfo, error) {
	var info TikTokUserInfo

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("uid", uid).
		SetResult(&info).
		Get("/user/info")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	return &info, nil
}

func (s *tiktokClient) FetchUserMetrics(ctx context.Context, uid string) (*TikTokUserMetrics, error) {
	var metrics TikTokUserMetrics

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("uid", uid).
		SetResult(&metrics).
		Get("/user/metrics")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	return &metrics, nil
}
