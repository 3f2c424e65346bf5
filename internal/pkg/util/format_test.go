package util

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1K"},
		{1_234, "1.2K"},
		{15_300, "15.3K"},
		{999_999, "1000K"},
		{1_000_000, "1M"},
		{3_400_000, "3.4M"},
		{1_000_000_000, "1B"},
		{2_500_000_000, "2.5B"},
		{-5, "0"},
	}

	for _, c := range cases {
		if got := FormatCount(c.in); got != c.want {
			t.Errorf("FormatCount(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
