package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Linkstone/internal/api/config"
)

func TestInstagramFetchReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("username"); got != "alice" {
			t.Errorf("username = %q, want alice", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("X-Api-Key = %q, want secret", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user_info": {
				"username": "alice",
				"full_name": "Alice",
				"follower_count": 1500,
				"media_count": 42,
				"is_private": false,
				"is_verified": true
			},
			"posts": [
				{"shortcode": "abc", "like_count": 100, "comment_count": 5, "taken_at_timestamp": 1700000000}
			]
		}`))
	}))
	defer srv.Close()

	client := NewInstagramClient(config.ProviderConfig{BaseURL: srv.URL, ApiKey: "secret"})
	report, err := client.FetchReport(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchReport: %v", err)
	}

	if report.UserInfo.Username != "alice" {
		t.Errorf("username = %q, want alice", report.UserInfo.Username)
	}
	if report.UserInfo.FollowerCount != 1500 {
		t.Errorf("follower_count = %d, want 1500", report.UserInfo.FollowerCount)
	}
	if len(report.Posts) != 1 || report.Posts[0].Shortcode != "abc" {
		t.Errorf("posts 解析不正确: %+v", report.Posts)
	}
}

func TestInstagramFetchReportNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewInstagramClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FetchReport(context.Background(), "ghost"); !errors.Is(err, ErrHandleNotFound) {
		t.Errorf("err = %v, want ErrHandleNotFound", err)
	}
}

// 上游偶尔对不存在的账号返回 200 加空报文
func TestInstagramFetchReportEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewInstagramClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FetchReport(context.Background(), "ghost"); !errors.Is(err, ErrHandleNotFound) {
		t.Errorf("err = %v, want ErrHandleNotFound", err)
	}
}

func TestInstagramFetchReportUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewInstagramClient(config.ProviderConfig{BaseURL: srv.URL})
	if _, err := client.FetchReport(context.Background(), "alice"); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}
