package repository

import (
	"testing"
	"time"
)

// 配额日界按服务器本地时区切，跨天后自动从 0 开始
func TestTruncateToDate(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2025, 6, 1, 23, 59, 59, 123, loc)

	got := truncateToDate(in)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("truncateToDate = %v, want %v", got, want)
	}

	// 零点前后属于不同的日期行
	beforeMidnight := truncateToDate(time.Date(2025, 6, 1, 23, 59, 59, 0, loc))
	afterMidnight := truncateToDate(time.Date(2025, 6, 2, 0, 0, 1, 0, loc))
	if beforeMidnight.Equal(afterMidnight) {
		t.Error("跨天时间应落到不同的日期行")
	}
}
