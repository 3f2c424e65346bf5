package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Linkstone/internal/api/config"
)

func TestTikTokFindUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/find" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("unique_id"); got != "bob" {
			t.Errorf("unique_id = %q, want bob", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"uid": "u-100",
			"unique_id": "bob",
			"nickname": "Bob",
			"follower_count": 25000,
			"follower_count_show": "25K",
			"video_count": 80
		}`))
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	info, err := client.FindUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FindUser: %v", err)
	}

	if info.UID != "u-100" {
		t.Errorf("uid = %q, want u-100", info.UID)
	}
	if info.FollowerCountShow != "25K" {
		t.Errorf("follower_count_show = %q, want 25K", info.FollowerCountShow)
	}
}

// 响应里没有 uid 等同于账号不存在
func TestTikTokFindUserMissingUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"nickname": "ghost"}`))
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FindUser(context.Background(), "ghost"); !errors.Is(err, ErrHandleNotFound) {
		t.Errorf("err = %v, want ErrHandleNotFound", err)
	}
}

func TestTikTokFindUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FindUser(context.Background(), "ghost"); !errors.Is(err, ErrHandleNotFound) {
		t.Errorf("err = %v, want ErrHandleNotFound", err)
	}
}

func TestTikTokFetchUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/info" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("uid"); got != "u-100" {
			t.Errorf("uid = %q, want u-100", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"country": "JP", "heart_count": 900000, "heart_count_show": "900K"}`))
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	info, err := client.FetchUserInfo(context.Background(), "u-100")
	if err != nil {
		t.Fatalf("FetchUserInfo: %v", err)
	}

	if info.Country != "JP" {
		t.Errorf("country = %q, want JP", info.Country)
	}
	if info.HeartCount != 900000 {
		t.Errorf("heart_count = %d, want 900000", info.HeartCount)
	}
}

func TestTikTokFetchUserMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/metrics" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"follower_count": 26000,
			"follower_count_show": "26K",
			"rank_index": 7,
			"flow_index": 55,
			"posts_28d": 12,
			"likes_28d": 34000,
			"comments_28d": 1200,
			"shares_28d": 800
		}`))
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	metrics, err := client.FetchUserMetrics(context.Background(), "u-100")
	if err != nil {
		t.Fatalf("FetchUserMetrics: %v", err)
	}

	if metrics.FollowerCount != 26000 {
		t.Errorf("follower_count = %d, want 26000", metrics.FollowerCount)
	}
	if metrics.Posts28Days != 12 || metrics.Shares28Days != 800 {
		t.Errorf("28d 指标解析不正确: %+v", metrics)
	}
}

func TestTikTokFetchUserMetricsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewTikTokClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FetchUserMetrics(context.Background(), "u-100"); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}
