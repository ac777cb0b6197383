// Package queue owns the lifecycle of content items: intake with compliance scoring, reviewer
// decisions, worker outcomes and resubmission. Every status change is a compare-and-set in storage
// that appends exactly one review, so duplicate requests surface as transition errors.
package queue

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/postguard/pkg/admission"
	"github.com/umputun/postguard/pkg/compliance"
	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/metrics"
)

//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/settings_store.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/audit_store.go -pkg mocks -skip-ensure -fmt goimports . AuditStore
//go:generate moq -out mocks/budget.go -pkg mocks -skip-ensure -fmt goimports . BudgetProvider

const (
	nearDuplicateRecommendation = "near_duplicate: content is similar to a recent post on this platform"

	// dueBatchSize is the page size used to read due items
	dueBatchSize = 100
)

// ItemStore provides item and review persistence
type ItemStore interface {
	CreateItem(ctx context.Context, item *domain.ContentItem) error
	GetItem(ctx context.Context, id int64) (*domain.ContentItem, error)
	ListItems(ctx context.Context, f domain.ItemFilter) ([]domain.ContentItem, error)
	ListDue(ctx context.Context, now time.Time, limit, offset int) ([]domain.ContentItem, error)
	RecentPostedBodies(ctx context.Context, platform domain.Platform, limit int) ([]string, error)
	Transition(ctx context.Context, tr domain.Transition) (*domain.ContentItem, error)
	UpdateDraft(ctx context.Context, id int64, upd domain.DraftUpdate) (*domain.ContentItem, error)
	CreateResubmission(ctx context.Context, item *domain.ContentItem, review domain.Review) error
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	CountByPlatform(ctx context.Context) (map[domain.Platform]int, error)
	ListReviews(ctx context.Context, itemID int64) ([]domain.Review, error)
}

// SettingsStore provides admin settings access
type SettingsStore interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, upd domain.SettingsUpdate) (domain.Settings, error)
	ToggleKillSwitch(ctx context.Context) (bool, error)
}

// AuditStore writes and reads the audit log
type AuditStore interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// BudgetProvider reports global posting budget
type BudgetProvider interface {
	Budget(ctx context.Context, now time.Time) (admission.Budget, error)
}

// Evaluator scores content against compliance rules
type Evaluator interface {
	Evaluate(body string, platform domain.Platform, ectx compliance.EvalContext) domain.ComplianceVerdict
}

// Params defines queue service parameters
type Params struct {
	Items               ItemStore
	Settings            SettingsStore
	Audit               AuditStore
	Budget              BudgetProvider
	Evaluator           Evaluator
	Metrics             *metrics.Metrics
	Clock               func() time.Time
	SimilarityThreshold float64 // near-duplicate recommendation at or above this score, 0 disables
	SimilarityWindow    int     // number of recent posts compared
}

// Service is the content queue
type Service struct {
	Params
	policy *bluemonday.Policy
}

// ApproveRequest carries reviewer input for approval
type ApproveRequest struct {
	Reviewer    string     `json:"-"`
	Notes       string     `json:"notes,omitempty"`
	Override    bool       `json:"override,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// EditRequest changes title and/or body of a draft
type EditRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// New makes queue service
func New(params Params) *Service {
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.SimilarityWindow <= 0 {
		params.SimilarityWindow = 10
	}
	return &Service{Params: params, policy: bluemonday.StrictPolicy()}
}

// Submit validates, sanitizes and scores a draft and stores it with status draft
func (s *Service) Submit(ctx context.Context, d domain.Draft) (*domain.ContentItem, error) {
	platform, err := domain.ParsePlatform(string(d.Platform))
	if err != nil {
		return nil, err
	}
	d.Platform = platform
	d.AccountScope = strings.TrimSpace(d.AccountScope)
	if d.AccountScope == "" {
		return nil, &domain.ValidationError{Field: "account_scope", Message: "required"}
	}
	d.Title, d.Body = s.sanitize(d.Title), s.sanitize(d.Body)
	if d.Body == "" {
		return nil, &domain.ValidationError{Field: "body", Message: "required"}
	}

	verdict, similarity, err := s.assess(ctx, d)
	if err != nil {
		return nil, err
	}
	now := s.Clock()
	item := &domain.ContentItem{
		Platform:        d.Platform,
		AccountScope:    d.AccountScope,
		Channel:         strings.TrimSpace(d.Channel),
		Flair:           strings.TrimSpace(d.Flair),
		NoSelfPromotion: d.NoSelfPromotion,
		Title:           d.Title,
		Body:            d.Body,
		MediaRef:        strings.TrimSpace(d.MediaRef),
		Status:          domain.StatusDraft,
		Verdict:         verdict,
		SimilarityScore: similarity,
		ScheduledAt:     d.ScheduledAt,
		SourceRef:       d.SourceRef,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Items.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.Metrics.Submitted(item.Platform, verdict.IsCompliant)
	lgr.Printf("[INFO] draft %d submitted for %s/%s, score %d, compliant %v",
		item.ID, item.Platform, item.AccountScope, verdict.Score, verdict.IsCompliant)
	return item, nil
}

// Preview evaluates a draft without storing it
func (s *Service) Preview(ctx context.Context, d domain.Draft) (domain.ComplianceVerdict, float64, error) {
	platform, err := domain.ParsePlatform(string(d.Platform))
	if err != nil {
		return domain.ComplianceVerdict{}, 0, err
	}
	d.Platform = platform
	d.Body = s.sanitize(d.Body)
	return s.assess(ctx, d)
}

// Get returns a single item
func (s *Service) Get(ctx context.Context, id int64) (*domain.ContentItem, error) {
	return s.Items.GetItem(ctx, id)
}

// List returns items matching the filter
func (s *Service) List(ctx context.Context, f domain.ItemFilter) ([]domain.ContentItem, error) {
	if f.MinScore != nil && f.MaxScore != nil && *f.MinScore > *f.MaxScore {
		return nil, &domain.ValidationError{Field: "score", Message: "min is greater than max"}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, &domain.ValidationError{Field: "date", Message: "from is after to"}
	}
	return s.Items.ListItems(ctx, f)
}

// Reviews returns review history of an item, oldest first
func (s *Service) Reviews(ctx context.Context, id int64) ([]domain.Review, error) {
	if _, err := s.Items.GetItem(ctx, id); err != nil {
		return nil, err
	}
	return s.Items.ListReviews(ctx, id)
}

// Approve moves a draft to approved. Non-compliant drafts need an override with notes.
func (s *Service) Approve(ctx context.Context, id int64, req ApproveRequest) (*domain.ContentItem, error) {
	reviewer := strings.TrimSpace(req.Reviewer)
	if reviewer == "" {
		return nil, &domain.ValidationError{Field: "reviewer", Message: "required"}
	}
	item, err := s.Items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.StatusDraft {
		return nil, &domain.TransitionError{ItemID: id, From: item.Status, To: domain.StatusApproved}
	}
	notes := strings.TrimSpace(req.Notes)
	override := !item.Verdict.IsCompliant
	if override && (!req.Override || notes == "") {
		return nil, fmt.Errorf("approve item %d: %w", id, domain.ErrOverrideRequired)
	}

	// an edit between the read and the update may change the verdict, the store re-checks it
	return s.transition(ctx, domain.Transition{
		ItemID: id, From: domain.StatusDraft, To: domain.StatusApproved, ScheduledAt: req.ScheduledAt,
		Review:           domain.Review{Reviewer: reviewer, Action: domain.ReviewApprove, Notes: notes, Override: override},
		RequireCompliant: !override,
	})
}

// Reject moves a draft to rejected, reason is required
func (s *Service) Reject(ctx context.Context, id int64, reviewer, reason string) (*domain.ContentItem, error) {
	reviewer, reason = strings.TrimSpace(reviewer), strings.TrimSpace(reason)
	if reviewer == "" {
		return nil, &domain.ValidationError{Field: "reviewer", Message: "required"}
	}
	if reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Message: "required"}
	}
	return s.transition(ctx, domain.Transition{
		ItemID: id, From: domain.StatusDraft, To: domain.StatusRejected,
		Review: domain.Review{Reviewer: reviewer, Action: domain.ReviewReject, Notes: reason},
	})
}

// MarkPosted records a successful publish
func (s *Service) MarkPosted(ctx context.Context, id int64, externalRef string) (*domain.ContentItem, error) {
	return s.transition(ctx, domain.Transition{
		ItemID: id, From: domain.StatusApproved, To: domain.StatusPosted, ExternalRef: externalRef,
		Review: domain.Review{Reviewer: domain.WorkerReviewer, Action: domain.ReviewPost, Notes: externalRef},
	})
}

// MarkFailed records a failed publish or an item that could not be admitted
func (s *Service) MarkFailed(ctx context.Context, id int64, reason string) (*domain.ContentItem, error) {
	return s.transition(ctx, domain.Transition{
		ItemID: id, From: domain.StatusApproved, To: domain.StatusFailed, FailureReason: reason,
		Review: domain.Review{Reviewer: domain.WorkerReviewer, Action: domain.ReviewFail, Notes: reason},
	})
}

// Edit changes content of a draft and recomputes its verdict and similarity
func (s *Service) Edit(ctx context.Context, id int64, req EditRequest) (*domain.ContentItem, error) {
	if req.Title == nil && req.Body == nil {
		return nil, &domain.ValidationError{Message: "nothing to update"}
	}
	item, err := s.Items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.StatusDraft {
		return nil, &domain.TransitionError{ItemID: id, From: item.Status, To: domain.StatusDraft}
	}
	d := draftOf(item)
	if req.Title != nil {
		d.Title = s.sanitize(*req.Title)
	}
	if req.Body != nil {
		if d.Body = s.sanitize(*req.Body); d.Body == "" {
			return nil, &domain.ValidationError{Field: "body", Message: "required"}
		}
	}

	verdict, similarity, err := s.assess(ctx, d)
	if err != nil {
		return nil, err
	}
	return s.Items.UpdateDraft(ctx, id, domain.DraftUpdate{
		Title: d.Title, Body: d.Body, Verdict: verdict, SimilarityScore: similarity, At: s.Clock(),
	})
}

// Resubmit creates a new draft from a failed or rejected item. The original item is not changed.
func (s *Service) Resubmit(ctx context.Context, id int64, reviewer string) (*domain.ContentItem, error) {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, &domain.ValidationError{Field: "reviewer", Message: "required"}
	}
	orig, err := s.Items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if orig.Status != domain.StatusFailed && orig.Status != domain.StatusRejected {
		return nil, &domain.TransitionError{ItemID: id, From: orig.Status, To: domain.StatusDraft}
	}

	d := draftOf(orig)
	verdict, similarity, err := s.assess(ctx, d)
	if err != nil {
		return nil, err
	}
	item := &domain.ContentItem{
		Platform: d.Platform, AccountScope: d.AccountScope, Channel: d.Channel, Flair: d.Flair,
		NoSelfPromotion: d.NoSelfPromotion, Title: d.Title, Body: d.Body, MediaRef: d.MediaRef,
		Verdict: verdict, SimilarityScore: similarity,
		SourceRef: d.SourceRef, ResubmittedFrom: orig.ID, CreatedAt: s.Clock(),
	}
	review := domain.Review{Reviewer: reviewer, Action: domain.ReviewResubmit, Notes: fmt.Sprintf("resubmitted from #%d", orig.ID)}
	if err := s.Items.CreateResubmission(ctx, item, review); err != nil {
		return nil, fmt.Errorf("resubmit item %d: %w", id, err)
	}
	s.Metrics.Submitted(item.Platform, verdict.IsCompliant)
	lgr.Printf("[INFO] item %d resubmitted as draft %d by %s", orig.ID, item.ID, reviewer)
	return item, nil
}

// BulkApprove approves each id independently, one failure doesn't abort the rest
func (s *Service) BulkApprove(ctx context.Context, ids []int64, req ApproveRequest) domain.BulkResult {
	return s.bulk(ctx, ids, func(id int64) (*domain.ContentItem, error) { return s.Approve(ctx, id, req) })
}

// BulkReject rejects each id independently, one failure doesn't abort the rest
func (s *Service) BulkReject(ctx context.Context, ids []int64, reviewer, reason string) domain.BulkResult {
	return s.bulk(ctx, ids, func(id int64) (*domain.ContentItem, error) { return s.Reject(ctx, id, reviewer, reason) })
}

func (s *Service) bulk(ctx context.Context, ids []int64, fn func(id int64) (*domain.ContentItem, error)) domain.BulkResult {
	res := domain.BulkResult{Requested: len(ids), Failed: []domain.BulkFailure{}, Items: []domain.ContentItem{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			res.Failed = append(res.Failed, domain.BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		item, err := fn(id)
		if err != nil {
			res.Failed = append(res.Failed, domain.BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		res.Succeeded++
		res.Items = append(res.Items, *item)
	}
	if len(res.Failed) > 0 {
		lgr.Printf("[WARN] bulk operation: %d of %d failed, ids %v", len(res.Failed), res.Requested, res.FailedIDs())
	}
	return res
}

// Due returns all approved items ready to publish at now, oldest first, read in pages of dueBatchSize
func (s *Service) Due(ctx context.Context, now time.Time) ([]domain.ContentItem, error) {
	var res []domain.ContentItem
	for {
		page, err := s.Items.ListDue(ctx, now, dueBatchSize, len(res))
		if err != nil {
			return nil, fmt.Errorf("list due items at offset %d: %w", len(res), err)
		}
		res = append(res, page...)
		if len(page) < dueBatchSize {
			return res, nil
		}
	}
}

// Stats returns queue counters and the global budget
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	statuses, err := s.Items.CountByStatus(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	platforms, err := s.Items.CountByPlatform(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	budget, err := s.Budget.Budget(ctx, s.Clock())
	if err != nil {
		return domain.Stats{}, fmt.Errorf("get budget: %w", err)
	}
	s.Metrics.HourlyRemaining(budget.HourlyRemaining)
	s.Metrics.KillSwitch(budget.KillSwitch)
	return domain.Stats{
		StatusCounts:     statuses,
		PlatformCounts:   platforms,
		PostedLastHour:   budget.PostedLastHour,
		HourlyRemaining:  budget.HourlyRemaining,
		KillSwitch:       budget.KillSwitch,
		QuietHoursActive: budget.QuietHoursActive,
	}, nil
}

// Snapshot returns stats with the most recent drafts, used by the live feed
func (s *Service) Snapshot(ctx context.Context, recent int) (domain.Snapshot, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	drafts, err := s.Items.ListItems(ctx, domain.ItemFilter{Statuses: []domain.Status{domain.StatusDraft}, Limit: recent})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{Stats: stats, RecentDrafts: drafts, GeneratedAt: s.Clock()}, nil
}

// Settings returns current admin settings
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	return s.Params.Settings.LoadSettings(ctx)
}

// ToggleKillSwitch flips the kill switch and returns the new state
func (s *Service) ToggleKillSwitch(ctx context.Context, actor string) (bool, error) {
	on, err := s.Params.Settings.ToggleKillSwitch(ctx)
	if err != nil {
		return false, fmt.Errorf("toggle kill switch: %w", err)
	}
	state := "disabled"
	if on {
		state = "enabled"
	}
	lgr.Printf("[WARN] kill switch %s by %s", state, actor)
	s.Metrics.KillSwitch(on)
	s.audit(ctx, domain.AuditEntry{Level: "WARN", Message: "kill switch " + state,
		Meta: map[string]any{"actor": actor, "kill_switch": on}})
	return on, nil
}

// UpdateSettings applies a partial settings update
func (s *Service) UpdateSettings(ctx context.Context, actor string, upd domain.SettingsUpdate) (domain.Settings, error) {
	if upd.Empty() {
		return domain.Settings{}, &domain.ValidationError{Message: "nothing to update"}
	}
	settings, err := s.Params.Settings.UpdateSettings(ctx, upd)
	if err != nil {
		return domain.Settings{}, err
	}
	lgr.Printf("[INFO] settings updated by %s: %+v", actor, settings)
	s.Metrics.KillSwitch(settings.KillSwitch)
	s.audit(ctx, domain.AuditEntry{Level: "INFO", Message: "settings updated", Meta: map[string]any{
		"actor": actor, "kill_switch": settings.KillSwitch, "quiet_hours": settings.QuietHours.String(),
		"global_max_posts_per_hour": settings.GlobalMaxPostsPerHour,
		"max_posts_per_account_per_day": settings.MaxPostsPerAccountPerDay, "cooldown": settings.Cooldown.String(),
	}})
	return settings, nil
}

// Logs returns recent audit entries, newest first
func (s *Service) Logs(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.Audit.Recent(ctx, limit)
}

// audit writes an audit entry, failures are logged only
func (s *Service) audit(ctx context.Context, entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.Clock()
	}
	if err := s.Audit.Log(ctx, entry); err != nil {
		lgr.Printf("[WARN] failed to write audit entry %q: %v", entry.Message, err)
	}
}

func (s *Service) transition(ctx context.Context, tr domain.Transition) (*domain.ContentItem, error) {
	tr.At = s.Clock()
	item, err := s.Items.Transition(ctx, tr)
	if err != nil {
		return nil, err
	}
	s.Metrics.Transition(tr.From, tr.To)
	lgr.Printf("[INFO] item %d: %s -> %s by %s", tr.ItemID, tr.From, tr.To, tr.Review.Reviewer)
	return item, nil
}

// assess evaluates compliance and similarity of a sanitized draft
func (s *Service) assess(ctx context.Context, d domain.Draft) (domain.ComplianceVerdict, float64, error) {
	verdict := s.Evaluator.Evaluate(d.Body, d.Platform,
		compliance.EvalContext{Channel: d.Channel, Flair: d.Flair, NoSelfPromotion: d.NoSelfPromotion})
	if s.SimilarityThreshold <= 0 {
		return verdict, 0, nil
	}
	recent, err := s.Items.RecentPostedBodies(ctx, d.Platform, s.SimilarityWindow)
	if err != nil {
		return domain.ComplianceVerdict{}, 0, fmt.Errorf("get recent posts: %w", err)
	}
	similarity := MaxSimilarity(d.Body, recent)
	if similarity >= s.SimilarityThreshold {
		verdict.Recommendations = append(verdict.Recommendations, nearDuplicateRecommendation)
	}
	return verdict, similarity, nil
}

// sanitize strips all markup and trims the result
func (s *Service) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func draftOf(item *domain.ContentItem) domain.Draft {
	return domain.Draft{
		Platform: item.Platform, AccountScope: item.AccountScope, Channel: item.Channel, Flair: item.Flair,
		NoSelfPromotion: item.NoSelfPromotion, Title: item.Title, Body: item.Body, MediaRef: item.MediaRef,
		SourceRef: item.SourceRef,
	}
}
