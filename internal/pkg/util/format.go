package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount 把原始数值格式化为 1.2K / 3.4M 样式的展示串
// 仅在上游没给展示串时用来补位，原始数值始终是权威来源
func FormatCount(n int64) string {
	if n < 0 {
		return "0"
	}

	switch {
	case n < 1_000:
		return strconv.FormatInt(n, 10)
	case n < 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "K"
	case n < 1_000_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	default:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000)) + "B"
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
