package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/queue"
	"github.com/umputun/postguard/pkg/scheduler"
	"github.com/umputun/postguard/server/mocks"
)

func TestServer_statusHandler(t *testing.T) {
	srv := testServer(t, &mocks.QueueMock{}, nil)
	w := doRequest(t, srv, http.MethodGet, "/api/v1/status", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
	assert.NotEmpty(t, status["time"])
}

func TestServer_submitHandler(t *testing.T) {
	q := &mocks.QueueMock{
		SubmitFunc: func(_ context.Context, d domain.Draft) (*domain.ContentItem, error) {
			if d.Body == "" {
				return nil, &domain.ValidationError{Field: "body", Message: "required"}
			}
			return &domain.ContentItem{ID: 42, Platform: d.Platform, AccountScope: d.AccountScope, Body: d.Body,
				Status: domain.StatusDraft}, nil
		},
	}
	srv := testServer(t, q, nil)

	t.Run("created", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items",
			`{"platform":"reddit","account_scope":"acme","channel":"golang","title":"t","body":"hello"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var item domain.ContentItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, int64(42), item.ID)
		assert.Equal(t, domain.StatusDraft, item.Status)
		assert.Equal(t, "golang", q.SubmitCalls()[0].D.Channel)
	})

	t.Run("validation error", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items", `{"platform":"reddit","account_scope":"acme"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation: body: required")
	})

	t.Run("bad json", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items", `{"platform":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items",
			`{"platform":"reddit","account_scope":"acme","body":"hello","chanel":"golang"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `unknown field \"chanel\"`)
		assert.Len(t, q.SubmitCalls(), 2, "only created and validation error reach the queue")
	})

	t.Run("no self-promotion flag", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items",
			`{"platform":"reddit","account_scope":"acme","body":"hello","no_self_promotion":true}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		calls := q.SubmitCalls()
		assert.True(t, calls[len(calls)-1].D.NoSelfPromotion)
	})
}

func TestServer_listItemsHandler(t *testing.T) {
	q := &mocks.QueueMock{
		ListFunc: func(_ context.Context, f domain.ItemFilter) ([]domain.ContentItem, error) {
			return []domain.ContentItem{{ID: 1}, {ID: 2}}, nil
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodGet,
		"/api/v1/items?status=draft,approved&platform=Reddit&q=golang&min_score=40&max_score=90"+
			"&from=2025-03-01T00:00:00Z&limit=1000&offset=5", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []domain.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	require.Len(t, q.ListCalls(), 1)
	f := q.ListCalls()[0].F
	assert.Equal(t, []domain.Status{domain.StatusDraft, domain.StatusApproved}, f.Statuses)
	assert.Equal(t, domain.PlatformReddit, f.Platform)
	assert.Equal(t, "golang", f.Text)
	require.NotNil(t, f.MinScore)
	require.NotNil(t, f.MaxScore)
	assert.Equal(t, 40, *f.MinScore)
	assert.Equal(t, 90, *f.MaxScore)
	require.NotNil(t, f.From)
	assert.Nil(t, f.To)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), f.From.UTC())
	assert.Equal(t, maxListLimit, f.Limit, "limit capped")
	assert.Equal(t, 5, f.Offset)

	for _, query := range []string{"status=archived", "platform=myspace", "min_score=high", "from=yesterday", "limit=-1"} {
		t.Run(query, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodGet, "/api/v1/items?"+query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Len(t, q.ListCalls(), 1, "invalid filters never reach the queue")
}

func TestServer_getItemHandler(t *testing.T) {
	q := &mocks.QueueMock{
		GetFunc: func(_ context.Context, id int64) (*domain.ContentItem, error) {
			if id == 404 {
				return nil, fmt.Errorf("get item %d: %w", id, domain.ErrNotFound)
			}
			return &domain.ContentItem{ID: id, Title: "found"}, nil
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/items/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"found"`)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/items/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/items/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid item ID")
}

func TestServer_editHandler(t *testing.T) {
	q := &mocks.QueueMock{
		EditFunc: func(_ context.Context, id int64, req queue.EditRequest) (*domain.ContentItem, error) {
			if id == 2 {
				return nil, &domain.TransitionError{ItemID: 2, From: domain.StatusPosted, To: domain.StatusDraft}
			}
			return &domain.ContentItem{ID: id, Body: *req.Body}, nil
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodPut, "/api/v1/items/1", `{"body":"new body"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, q.EditCalls()[0].Req.Title)
	assert.Equal(t, "new body", *q.EditCalls()[0].Req.Body)

	w = doRequest(t, srv, http.MethodPut, "/api/v1/items/2", `{"body":"x"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_transition")
}

func TestServer_reviewsHandler(t *testing.T) {
	q := &mocks.QueueMock{
		ReviewsFunc: func(_ context.Context, id int64) ([]domain.Review, error) {
			return []domain.Review{{ItemID: id, Reviewer: "alice", Action: domain.ReviewApprove}}, nil
		},
	}
	srv := testServer(t, q, nil)
	w := doRequest(t, srv, http.MethodGet, "/api/v1/items/3/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []domain.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Reviewer)
}

func TestServer_approveHandler(t *testing.T) {
	q := &mocks.QueueMock{
		ApproveFunc: func(_ context.Context, id int64, req queue.ApproveRequest) (*domain.ContentItem, error) {
			switch id {
			case 2:
				return nil, fmt.Errorf("approve item %d: %w", id, domain.ErrOverrideRequired)
			case 3:
				return nil, &domain.TransitionError{ItemID: 3, From: domain.StatusRejected, To: domain.StatusApproved}
			}
			return &domain.ContentItem{ID: id, Status: domain.StatusApproved, ScheduledAt: req.ScheduledAt}, nil
		},
	}
	srv := testServer(t, q, nil)

	t.Run("without body", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items/1/approve", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		req := q.ApproveCalls()[0].Req
		assert.Equal(t, "alice", req.Reviewer, "reviewer is the authenticated user")
		assert.False(t, req.Override)
		assert.Nil(t, req.ScheduledAt)
	})

	t.Run("override with schedule", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items/1/approve",
			`{"notes":"checked with legal","override":true,"scheduled_at":"2025-03-01T15:00:00Z"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		req := q.ApproveCalls()[1].Req
		assert.True(t, req.Override)
		assert.Equal(t, "checked with legal", req.Notes)
		require.NotNil(t, req.ScheduledAt)
		assert.Equal(t, 15, req.ScheduledAt.Hour())
	})

	t.Run("unknown field", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items/1/approve", `{"overide":true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown field")
		assert.Len(t, q.ApproveCalls(), 2)
	})

	t.Run("override required", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items/2/approve", "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "override")
	})

	t.Run("wrong state", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/items/3/approve", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestServer_rejectHandler(t *testing.T) {
	q := &mocks.QueueMock{
		RejectFunc: func(_ context.Context, id int64, reviewer, reason string) (*domain.ContentItem, error) {
			if reason == "" {
				return nil, &domain.ValidationError{Field: "reason", Message: "required"}
			}
			return &domain.ContentItem{ID: id, Status: domain.StatusRejected}, nil
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/items/5/reject", `{"reason":"off topic"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", q.RejectCalls()[0].Reviewer)
	assert.Equal(t, "off topic", q.RejectCalls()[0].Reason)

	w = doRequest(t, srv, http.MethodPost, "/api/v1/items/5/reject", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_resubmitHandler(t *testing.T) {
	q := &mocks.QueueMock{
		ResubmitFunc: func(_ context.Context, id int64, reviewer string) (*domain.ContentItem, error) {
			return &domain.ContentItem{ID: 100, ResubmittedFrom: id, Status: domain.StatusDraft}, nil
		},
	}
	srv := testServer(t, q, nil)
	w := doRequest(t, srv, http.MethodPost, "/api/v1/items/9/resubmit", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var item domain.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, int64(9), item.ResubmittedFrom)
	assert.Equal(t, "alice", q.ResubmitCalls()[0].Reviewer)
}

func TestServer_bulkHandlers(t *testing.T) {
	q := &mocks.QueueMock{
		BulkApproveFunc: func(_ context.Context, ids []int64, req queue.ApproveRequest) domain.BulkResult {
			return domain.BulkResult{Requested: len(ids), Succeeded: 1,
				Failed: []domain.BulkFailure{{ID: ids[1], Error: "invalid_transition"}}}
		},
		BulkRejectFunc: func(_ context.Context, ids []int64, reviewer, reason string) domain.BulkResult {
			return domain.BulkResult{Requested: len(ids), Succeeded: len(ids), Failed: []domain.BulkFailure{}}
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/bulk/approve", `{"ids":[1,2],"notes":"ok"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.BulkResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, []int64{2}, res.FailedIDs())
	assert.Equal(t, "alice", q.BulkApproveCalls()[0].Req.Reviewer)

	w = doRequest(t, srv, http.MethodPost, "/api/v1/bulk/reject", `{"ids":[1,2,3],"reason":"spam"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "spam", q.BulkRejectCalls()[0].Reason)

	w = doRequest(t, srv, http.MethodPost, "/api/v1/bulk/reject", `{"ids":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "reason required")
	w = doRequest(t, srv, http.MethodPost, "/api/v1/bulk/approve", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "ids required")
	assert.Len(t, q.BulkApproveCalls(), 1)
	assert.Len(t, q.BulkRejectCalls(), 1)
}

func TestServer_evaluateHandler(t *testing.T) {
	q := &mocks.QueueMock{
		PreviewFunc: func(_ context.Context, d domain.Draft) (domain.ComplianceVerdict, float64, error) {
			return domain.ComplianceVerdict{Score: 85, IsCompliant: true, RiskLevel: domain.RiskLow}, 0.25, nil
		},
	}
	srv := testServer(t, q, nil)
	w := doRequest(t, srv, http.MethodPost, "/api/v1/evaluate", `{"platform":"bluesky","account_scope":"a","body":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 85, res.Verdict.Score)
	assert.InDelta(t, 0.25, res.SimilarityScore, 0.0001)
}

func TestServer_settingsHandlers(t *testing.T) {
	current := domain.Settings{GlobalMaxPostsPerHour: 10, MaxPostsPerAccountPerDay: 5, Cooldown: 12 * time.Hour}
	q := &mocks.QueueMock{
		SettingsFunc: func(context.Context) (domain.Settings, error) { return current, nil },
		UpdateSettingsFunc: func(_ context.Context, actor string, upd domain.SettingsUpdate) (domain.Settings, error) {
			return upd.Apply(current)
		},
		ToggleKillSwitchFunc: func(context.Context, string) (bool, error) { return true, nil },
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"global_max_posts_per_hour":10`)

	w = doRequest(t, srv, http.MethodPut, "/api/v1/settings", `{"global_max_posts_per_hour":3,"quiet_hours":"22-7"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 3, updated.GlobalMaxPostsPerHour)
	assert.Equal(t, 22, updated.QuietHours.Start)
	assert.Equal(t, "alice", q.UpdateSettingsCalls()[0].Actor)

	w = doRequest(t, srv, http.MethodPut, "/api/v1/settings",
		`{"kill_switch":true,"quiet_hour":"1-5","global_max_per_hour":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "misspelled fields are rejected")
	assert.Contains(t, w.Body.String(), "unknown field")
	assert.Len(t, q.UpdateSettingsCalls(), 1, "nothing applied on rejected body")

	w = doRequest(t, srv, http.MethodPut, "/api/v1/settings", `{"quiet_hours":"25-3"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, srv, http.MethodPost, "/api/v1/kill-switch", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kill_switch":true}`, w.Body.String())
}

func TestServer_statsAndFeedHandlers(t *testing.T) {
	q := &mocks.QueueMock{
		StatsFunc: func(context.Context) (domain.Stats, error) {
			return domain.Stats{PostedLastHour: 4, HourlyRemaining: 6}, nil
		},
		SnapshotFunc: func(_ context.Context, recent int) (domain.Snapshot, error) {
			return domain.Snapshot{}, errors.New("db is locked")
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hourly_remaining":6`)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/feed", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db is locked")
}

func TestServer_logsHandler(t *testing.T) {
	q := &mocks.QueueMock{
		LogsFunc: func(_ context.Context, limit int) ([]domain.AuditEntry, error) {
			return []domain.AuditEntry{{ID: 1, Level: "WARN", Message: "kill switch enabled"}}, nil
		},
	}
	srv := testServer(t, q, nil)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/logs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kill switch enabled")
	assert.Equal(t, 100, q.LogsCalls()[0].Limit)

	doRequest(t, srv, http.MethodGet, "/api/v1/logs?limit=5000", "")
	assert.Equal(t, maxListLimit, q.LogsCalls()[1].Limit)
}

func TestServer_taskHandlers(t *testing.T) {
	tasks := &mocks.TasksMock{
		StatusFunc: func() []scheduler.TaskStatus {
			return []scheduler.TaskStatus{{Name: "cleanup", Schedule: "daily at 02:00 UTC"}, {Name: "posting", Schedule: "every 1m0s"}}
		},
		RunNowFunc: func(_ context.Context, name string) error {
			switch name {
			case "posting":
				return fmt.Errorf("%w: %s", scheduler.ErrTaskRunning, name)
			case "missing":
				return fmt.Errorf("%w: %s", scheduler.ErrUnknownTask, name)
			case "health":
				return errors.New("db ping failed")
			}
			return nil
		},
	}
	srv := testServer(t, &mocks.QueueMock{}, tasks)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status []scheduler.TaskStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Len(t, status, 2)
	assert.Equal(t, "cleanup", status[0].Name)

	tbl := []struct {
		name string
		code int
	}{
		{"cleanup", http.StatusOK},
		{"posting", http.StatusConflict},
		{"missing", http.StatusNotFound},
		{"health", http.StatusInternalServerError},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, "/api/v1/tasks/"+tt.name+"/run", "")
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
	assert.Len(t, tasks.RunNowCalls(), 4)
}

func TestServer_renderServiceError(t *testing.T) {
	srv := testServer(t, &mocks.QueueMock{}, nil)
	tbl := []struct {
		err  error
		code int
	}{
		{&domain.ValidationError{Field: "platform", Message: "unknown"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), http.StatusNotFound},
		{&domain.TransitionError{ItemID: 1, From: domain.StatusPosted, To: domain.StatusApproved}, http.StatusConflict},
		{domain.ErrOverrideRequired, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tbl {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := doRequest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				srv.renderServiceError(w, r, tt.err)
			}), http.MethodGet, "/", "")
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
