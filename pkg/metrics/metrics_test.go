package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/domain"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.Submitted(domain.PlatformReddit, true)
	m.Submitted(domain.PlatformReddit, false)
	m.Submitted(domain.PlatformReddit, false)
	m.Transition(domain.StatusDraft, domain.StatusApproved)
	m.Admission(domain.Allow())
	m.Admission(domain.Deny(domain.ReasonCooldownActive, time.Hour))
	m.Publish(domain.PlatformBluesky, nil, 200*time.Millisecond)
	m.Publish(domain.PlatformBluesky, errors.New("boom"), time.Second)
	m.Cycle("")
	m.Cycle(domain.ReasonGlobalRateLimit)
	m.TaskRun("posting", nil)
	m.TaskSkipped("posting")
	m.KillSwitch(true)
	m.HourlyRemaining(7)

	assert.InDelta(t, 2, testutil.ToFloat64(m.submitted.WithLabelValues("reddit", "false")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("draft", "approved")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.admission.WithLabelValues("allowed")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.admission.WithLabelValues("cooldown_active")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.published.WithLabelValues("bluesky", "error")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cycles.WithLabelValues("completed")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.taskSkips.WithLabelValues("posting")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.killSwitch), 0.001)
	assert.InDelta(t, 7, testutil.ToFloat64(m.hourlyRemaining), 0.001)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.TaskRun("cleanup", errors.New("fail"))

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `postguard_task_runs_total{result="error",task="cleanup"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Submitted(domain.PlatformReddit, true)
		m.Transition(domain.StatusDraft, domain.StatusRejected)
		m.Admission(domain.Allow())
		m.Publish(domain.PlatformReddit, nil, time.Second)
		m.Cycle("")
		m.TaskRun("x", nil)
		m.TaskSkipped("x")
		m.KillSwitch(false)
		m.HourlyRemaining(1)
	})
	assert.Nil(t, m.Registry())
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
