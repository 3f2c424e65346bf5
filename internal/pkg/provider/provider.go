package provider

import (
	"errors"
	"time"

	"Linkstone/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// 上游是公网第三方接口，没有 SLA，调用方只看到这两类失败
// 客户端内部不做重试，是否重试由编排层决定
var (
	// ErrHandleNotFound 上游明确表示账号不存在
	ErrHandleNotFound = errors.New("provider: handle not found")
	// ErrProviderUnavailable 网络错误、超时或上游 5xx
	ErrProviderUnavailable = errors.New("provider: upstream unavailable")
)

const defaultTimeout = 12 * time.Second

// newClient 按统一约定构造 resty 客户端
func newClient(cfg config.ProviderConfig) *resty.Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if cfg.ApiKey != "" {
		client.SetHeader("X-Api-Key", cfg.ApiKey)
	}

	return client
}
