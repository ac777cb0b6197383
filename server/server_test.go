package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/metrics"
	"github.com/umputun/postguard/server/mocks"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Listen:          "127.0.0.1:0",
		Timeout:         5 * time.Second,
		AuthUser:        "alice",
		AuthPassword:    "secret",
		RequestsPerHour: 1000,
		LimiterSize:     10,
		FeedInterval:    10 * time.Millisecond,
	}
}

// testServer creates a server instance using the actual New function
func testServer(t *testing.T, q Queue, tasks Tasks) *Server {
	t.Helper()
	srv, err := New(Params{Config: testConfig(), Queue: q, Tasks: tasks, Version: "test"})
	require.NoError(t, err)
	return srv
}

// doRequest sends an authenticated request through the full middleware chain
func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.SetBasicAuth("alice", "secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_New(t *testing.T) {
	srv, err := New(Params{Queue: &mocks.QueueMock{}, Version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", srv.Version)
	assert.Equal(t, 1000, srv.Config.LimiterSize, "default limiter size")
	assert.Equal(t, 100, srv.Config.RequestsPerHour, "default request limit")
	assert.Equal(t, 5*time.Second, srv.Config.FeedInterval)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig()
	cfg.Listen = fmt.Sprintf("127.0.0.1:%d", port)
	srv, err := New(Params{Config: cfg, Queue: &mocks.QueueMock{}, Version: "1.0.0"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "api requires auth")
	assert.Equal(t, "postguard", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Auth(t *testing.T) {
	srv := testServer(t, &mocks.QueueMock{}, nil)

	tbl := []struct {
		name       string
		user, pass string
		setAuth    bool
		wantCode   int
	}{
		{"no auth", "", "", false, http.StatusUnauthorized},
		{"wrong password", "alice", "bad", true, http.StatusForbidden},
		{"wrong user", "bob", "secret", true, http.StatusForbidden},
		{"valid", "alice", "secret", true, http.StatusOK},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestServer_NoAuthWithoutPassword(t *testing.T) {
	cfg := testConfig()
	cfg.AuthPassword = ""
	q := &mocks.QueueMock{
		ToggleKillSwitchFunc: func(_ context.Context, actor string) (bool, error) {
			return true, nil
		},
	}
	srv, err := New(Params{Config: cfg, Queue: q})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kill-switch", http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, q.ToggleKillSwitchCalls(), 1)
	assert.Equal(t, "alice", q.ToggleKillSwitchCalls()[0].Actor, "falls back to configured user")
}

func TestServer_RateLimitPerIP(t *testing.T) {
	cfg := testConfig()
	cfg.RequestsPerHour = 2
	srv, err := New(Params{Config: cfg, Queue: &mocks.QueueMock{}})
	require.NoError(t, err)

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
		req.Header.Set("X-Real-Ip", ip)
		req.SetBasicAuth("alice", "secret")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("8.8.8.8"))
	assert.Equal(t, http.StatusOK, call("8.8.8.8"))
	assert.Equal(t, http.StatusTooManyRequests, call("8.8.8.8"), "third request in the hour is rejected")
	assert.Equal(t, http.StatusOK, call("1.1.1.1"), "other clients have their own window")
}

func TestServer_LimiterCacheBounded(t *testing.T) {
	cfg := testConfig()
	cfg.LimiterSize = 2
	srv, err := New(Params{Config: cfg, Queue: &mocks.QueueMock{}})
	require.NoError(t, err)

	for _, ip := range []string{"8.8.8.8", "8.8.4.4", "1.1.1.1"} {
		srv.limiter(ip)
	}
	assert.Equal(t, 2, srv.limiters.Len())
	assert.False(t, srv.limiters.Contains("8.8.8.8"), "least recently used client evicted")
	assert.Same(t, srv.limiter("1.1.1.1"), srv.limiter("1.1.1.1"))
}

func TestServer_MetricsOutsideAuth(t *testing.T) {
	m := metrics.New()
	m.KillSwitch(true)
	srv, err := New(Params{Config: testConfig(), Queue: &mocks.QueueMock{}, Metrics: m})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "postguard_kill_switch 1")
}

func TestServer_Events(t *testing.T) {
	q := &mocks.QueueMock{
		SnapshotFunc: func(_ context.Context, recent int) (domain.Snapshot, error) {
			return domain.Snapshot{Stats: domain.Stats{HourlyRemaining: 7, KillSwitch: true},
				RecentDrafts: []domain.ContentItem{{ID: 1, Title: "hello"}}}, nil
		},
	}
	ts := httptest.NewServer(testServer(t, q, nil))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", http.NoBody)
	require.NoError(t, err)
	req.SetBasicAuth("alice", "secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// read two events to make sure the stream keeps pushing
	scanner := bufio.NewScanner(resp.Body)
	var snapshots []domain.Snapshot
	for scanner.Scan() && len(snapshots) < 2 {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var snap domain.Snapshot
		require.NoError(t, json.Unmarshal([]byte(data), &snap))
		snapshots = append(snapshots, snap)
	}
	require.Len(t, snapshots, 2)
	assert.Equal(t, 7, snapshots[0].Stats.HourlyRemaining)
	assert.True(t, snapshots[1].Stats.KillSwitch)
	require.Len(t, snapshots[1].RecentDrafts, 1)
	assert.Equal(t, "hello", snapshots[1].RecentDrafts[0].Title)
	assert.Equal(t, 10, q.SnapshotCalls()[0].Recent)
}
