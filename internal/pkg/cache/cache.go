package cache

import (
	"context"
	"time"

	"Linkstone/internal/model"
)

// DefaultTTL 同一 (platform, handle) 在此窗口内不重复请求上游
const DefaultTTL = 30 * time.Minute

// Clock 可注入的时间源，测试用来模拟过期
type Clock func() time.Time

// Store 新鲜度缓存抽象
// 缓存只是优化层：任何实现都不允许把存储故障上抛为阻断性错误，
// 故障时一律表现为未命中
type Store interface {
	// Get 命中时返回缓存的分析记录，过期条目就地淘汰并按未命中处理
	Get(ctx context.Context, platform string, handle string) (*model.PlatformAnalytics, bool)
	// Has 只读探测，不淘汰也不返回可变引用
	Has(ctx context.Context, platform string, handle string) bool
	// Set 写入并覆盖旧条目，过期时间为写入时刻加 TTL
	Set(ctx context.Context, platform string, handle string, record *model.PlatformAnalytics)
	// Delete 删除指定条目，删除绑定时由编排层显式调用
	Delete(ctx context.Context, platform string, handle string)
	Close() error
}

// envelope 落盘格式，CachedAt/ExpiresAt 跟数据一起持久化，
// 重启加载后仍能判断快照是否过期
type envelope struct {
	Record    *model.PlatformAnalytics `json:"record"`
	CachedAt  time.Time                `json:"cached_at"`
	ExpiresAt time.Time                `json:"expires_at"`
}

func cacheKey(platform string, handle string) string {
	return platform + ":" + handle
}
