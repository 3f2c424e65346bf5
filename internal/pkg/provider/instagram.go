package provider

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"

	"Linkstone/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// InstagramAPI Instagram 分析数据提供方
// 单次调用即可拿到完整报告，没有多步链路
type InstagramAPI interface {
	FetchReport(ctx context.Context, handle string) (*InstagramReport, error)
}

// InstagramReport 上游原始报文，在此处一次性解析
// 私密账号不是错误：is_private 作为数据返回，是否限制展示由上层决定
type InstagramReport struct {
	UserInfo InstagramUserInfo `json:"user_info"`
	Posts    []InstagramPost   `json:"posts"`
}

type InstagramUserInfo struct {
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	ProfilePicURL     string `json:"profile_pic_url"`
	Biography         string `json:"biography"`
	FollowerCount     int64  `json:"follower_count"`
	FollowingCount    int64  `json:"following_count"`
	MediaCount        int64  `json:"media_count"`
	IsPrivate         bool   `json:"is_private"`
	IsVerified        bool   `json:"is_verified"`
	IsBusinessAccount bool   `json:"is_business_account"`
	Country           string `json:"country"`
	City              string `json:"city"`
}

type InstagramPost struct {
	Shortcode        string `json:"shortcode"`
	LikeCount        int64  `json:"like_count"`
	CommentCount     int64  `json:"comment_count"`
	TakenAtTimestamp int64  `json:"taken_at_timestamp"`
}

type instagramClient struct {
	http *resty.Client
}

func NewInstagramClient(cfg config.ProviderConfig) InstagramAPI {
	return &instagramClient{http: newClient(cfg)}
}

func (s *instagramClient) FetchReport(ctx context.Context, handle string) (*InstagramReport, error) {
	var report InstagramReport

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("username", handle).
		SetResult(&report).
		Get("/reports")
	if err != nil {
		log.WarnContext(ctx, "instagram report request failed", "handle", handle, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrHandleNotFound
	}
	if resp.IsError() {
		log.WarnContext(ctx, "instagram report upstream error", "handle", handle, "status", resp.StatusCode())
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	// 上游偶尔对不存在的账号返回 200 加空报文
	if report.UserInfo.Username == "" {
		return nil, ErrHandleNotFound
	}

	return &report, nil
}
