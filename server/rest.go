package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/queue"
	"github.com/umputun/postguard/pkg/scheduler"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	feedRecentDrafts = 10
)

type approveRequest struct {
	Notes       string     `json:"notes"`
	Override    bool       `json:"override"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type bulkRequest struct {
	IDs         []int64    `json:"ids"`
	Notes       string     `json:"notes"`
	Override    bool       `json:"override"`
	Reason      string     `json:"reason"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type evaluateResponse struct {
	Verdict         domain.ComplianceVerdict `json:"verdict"`
	SimilarityScore float64                  `json:"similarity_score"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.Version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listItemsHandler returns items filtered by query parameters
func (s *Server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	items, err := s.Queue.List(r.Context(), filter)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, items)
}

// submitHandler adds a new draft to the queue
func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if err := decodeJSON(r, &draft); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	item, err := s.Queue.Submit(r.Context(), draft)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, item)
}

// getItemHandler returns a single item
func (s *Server) getItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.Queue.Get(r.Context(), id)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// editHandler changes title and body of a draft
func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req queue.EditRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	item, err := s.Queue.Edit(r.Context(), id, req)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// reviewsHandler returns review history of an item
func (s *Server) reviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reviews, err := s.Queue.Reviews(r.Context(), id)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, reviews)
}

// approveHandler approves a draft on behalf of the authenticated reviewer
func (s *Server) approveHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req approveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	item, err := s.Queue.Approve(r.Context(), id, queue.ApproveRequest{
		Reviewer: s.reviewer(r), Notes: req.Notes, Override: req.Override, ScheduledAt: req.ScheduledAt})
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// rejectHandler rejects a draft, reason is required
func (s *Server) rejectHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	item, err := s.Queue.Reject(r.Context(), id, s.reviewer(r), req.Reason)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// resubmitHandler creates a new draft from a failed or rejected item
func (s *Server) resubmitHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.Queue.Resubmit(r.Context(), id, s.reviewer(r))
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, item)
}

// bulkApproveHandler approves a list of drafts, reporting per-item failures
func (s *Server) bulkApproveHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBulk(w, r)
	if !ok {
		return
	}
	res := s.Queue.BulkApprove(r.Context(), req.IDs, queue.ApproveRequest{
		Reviewer: s.reviewer(r), Notes: req.Notes, Override: req.Override, ScheduledAt: req.ScheduledAt})
	renderJSON(w, r, http.StatusOK, res)
}

// bulkRejectHandler rejects a list of drafts with a shared reason
func (s *Server) bulkRejectHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBulk(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		renderError(w, r, &domain.ValidationError{Field: "reason", Message: "required"}, http.StatusBadRequest)
		return
	}
	res := s.Queue.BulkReject(r.Context(), req.IDs, s.reviewer(r), req.Reason)
	renderJSON(w, r, http.StatusOK, res)
}

// evaluateHandler scores a draft without storing it
func (s *Server) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if err := decodeJSON(r, &draft); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	verdict, similarity, err := s.Queue.Preview(r.Context(), draft)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, evaluateResponse{Verdict: verdict, SimilarityScore: similarity})
}

// getSettingsHandler returns current admission settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Queue.Settings(r.Context())
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// updateSettingsHandler applies a partial settings update
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.SettingsUpdate
	if err := decodeJSON(r, &upd); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	settings, err := s.Queue.UpdateSettings(r.Context(), s.reviewer(r), upd)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// killSwitchHandler toggles the kill switch
func (s *Server) killSwitchHandler(w http.ResponseWriter, r *http.Request) {
	on, err := s.Queue.ToggleKillSwitch(r.Context(), s.reviewer(r))
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]bool{"kill_switch": on})
}

// statsHandler returns dashboard counters
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Queue.Stats(r.Context())
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// feedHandler returns the live snapshot for polling clients
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Queue.Snapshot(r.Context(), feedRecentDrafts)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, snap)
}

// eventsHandler pushes the live snapshot as server-sent events until the client goes away
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		lgr.Printf("[WARN] can't reset write deadline for events: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	ticker := time.NewTicker(s.Config.FeedInterval)
	defer ticker.Stop()
	for {
		if err := s.pushSnapshot(w, rc, r); err != nil {
			lgr.Printf("[DEBUG] events stream closed: %v", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) pushSnapshot(w http.ResponseWriter, rc *http.ResponseController, r *http.Request) error {
	snap, err := s.Queue.Snapshot(r.Context(), feedRecentDrafts)
	if err != nil {
		lgr.Printf("[WARN] can't make snapshot: %v", err)
		if _, werr := fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error()); werr != nil {
			return werr
		}
		return rc.Flush()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return err
	}
	return rc.Flush()
}

// logsHandler returns recent audit entries
func (s *Server) logsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	entries, err := s.Queue.Logs(r.Context(), min(limit, maxListLimit))
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, entries)
}

// tasksHandler returns state of scheduled tasks
func (s *Server) tasksHandler(w http.ResponseWriter, r *http.Request) {
	if s.Tasks == nil {
		renderJSON(w, r, http.StatusOK, []scheduler.TaskStatus{})
		return
	}
	renderJSON(w, r, http.StatusOK, s.Tasks.Status())
}

// runTaskHandler runs a scheduled task right away and waits for it
func (s *Server) runTaskHandler(w http.ResponseWriter, r *http.Request) {
	if s.Tasks == nil {
		renderError(w, r, errors.New("scheduler is not configured"), http.StatusNotFound)
		return
	}
	name := r.PathValue("name")
	if err := s.Tasks.RunNow(r.Context(), name); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrUnknownTask):
			renderError(w, r, err, http.StatusNotFound)
		case errors.Is(err, scheduler.ErrTaskRunning):
			renderError(w, r, err, http.StatusConflict)
		default:
			renderError(w, r, fmt.Errorf("task %s failed: %w", name, err), http.StatusInternalServerError)
		}
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"task": name, "result": "ok"})
}

// reviewer returns the authenticated user, it's the identity recorded in reviews
func (s *Server) reviewer(r *http.Request) string {
	if user, _, ok := r.BasicAuth(); ok && user != "" {
		return user
	}
	return s.Config.AuthUser
}

// renderServiceError maps domain errors to http status codes
func (s *Server) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		renderError(w, r, err, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrOverrideRequired):
		renderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// parseFilter makes item filter from query parameters
func parseFilter(r *http.Request) (domain.ItemFilter, error) {
	q := r.URL.Query()
	f := domain.ItemFilter{Text: strings.TrimSpace(q.Get("q"))}

	for _, v := range strings.Split(q.Get("status"), ",") {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		st, err := domain.ParseStatus(v)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, st)
	}
	if v := q.Get("platform"); v != "" {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return f, err
		}
		f.Platform = p
	}

	for name, dst := range map[string]**int{"min_score": &f.MinScore, "max_score": &f.MaxScore} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, &domain.ValidationError{Field: name, Message: "must be an integer"}
		}
		*dst = &n
	}
	for name, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, &domain.ValidationError{Field: name, Message: "must be RFC3339 time"}
		}
		*dst = &t
	}

	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		return f, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return f, err
	}
	f.Limit, f.Offset = min(limit, maxListLimit), offset
	return f, nil
}

// queryInt reads a non-negative integer query parameter
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &domain.ValidationError{Field: name, Message: "must be a non-negative integer"}
	}
	return n, nil
}

// pathID parses {id} path value, renders 400 on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, fmt.Errorf("invalid item ID"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBulk(w http.ResponseWriter, r *http.Request) (bulkRequest, bool) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return req, false
	}
	if len(req.IDs) == 0 {
		renderError(w, r, &domain.ValidationError{Field: "ids", Message: "required"}, http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// decodeJSON decodes request body into res, unknown fields are rejected
func decodeJSON[T any](r *http.Request, res *T) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(res); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodeOptionalJSON decodes the body if there is one
func decodeOptionalJSON[T any](r *http.Request, res *T) error {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return nil
	}
	return decodeJSON(r, res)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	if err := rest.EncodeJSON(w, code, data); err != nil {
		lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
