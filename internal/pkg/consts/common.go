package consts

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
)

const (
	// NoData 上游缺失文本字段时的占位值
	NoData = "No Data"
)

const (
	// DailyRefreshLimit 每用户每平台每天允许的成功刷新次数
	DailyRefreshLimit = 3

	// RecentItemLimit 保留的最近内容条数上限
	RecentItemLimit = 12
)

// IsSupportedPlatform 校验平台取值
func IsSupportedPlatform(platform string) bool {
	return platform == PlatformInstagram || platform == PlatformTikTok
}
