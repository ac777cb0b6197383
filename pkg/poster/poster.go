// Package poster implements the posting worker. A cycle takes approved items that are due, asks the
// admission controller about each one in order and publishes the admitted ones. Denials that apply
// to everyone stop the cycle, denials scoped to one account skip only that item.
package poster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/metrics"
)

//go:generate moq -out mocks/queue.go -pkg mocks -skip-ensure -fmt goimports . Queue
//go:generate moq -out mocks/admission.go -pkg mocks -skip-ensure -fmt goimports . Admission
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/auditor.go -pkg mocks -skip-ensure -fmt goimports . Auditor

// ErrCycleRunning is returned when a cycle is requested while another one is in progress
var ErrCycleRunning = errors.New("posting cycle already running")

// Queue provides due items and accepts publish outcomes
type Queue interface {
	Due(ctx context.Context, now time.Time) ([]domain.ContentItem, error)
	MarkPosted(ctx context.Context, id int64, externalRef string) (*domain.ContentItem, error)
	MarkFailed(ctx context.Context, id int64, reason string) (*domain.ContentItem, error)
}

// Admission decides whether an item may be published now and records consumed budget
type Admission interface {
	Gate(ctx context.Context, now time.Time) (domain.Decision, error)
	MayAdmit(ctx context.Context, scope domain.PostScope, now time.Time) (domain.Decision, error)
	RecordAction(ctx context.Context, scope domain.PostScope, itemID int64, now time.Time) error
}

// Publisher sends content to its platform
type Publisher interface {
	Publish(ctx context.Context, req domain.PublishRequest) (string, error)
}

// Auditor writes audit log entries
type Auditor interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

// Params defines worker parameters
type Params struct {
	Queue               Queue
	Admission           Admission
	Publisher           Publisher
	Audit               Auditor
	Metrics             *metrics.Metrics
	Clock               func() time.Time
	PublishTimeout      time.Duration
	MaxAdmissionDenials int // consecutive scoped denials before an item is failed, 0 disables
}

// Worker is the posting worker
type Worker struct {
	Params

	mu      sync.Mutex // held for the whole cycle, single writer of rate windows
	denials map[int64]int
}

// Report summarizes a posting cycle
type Report struct {
	Due         int               `json:"due"`
	Posted      int               `json:"posted"`
	Failed      int               `json:"failed"`
	Skipped     int               `json:"skipped"`
	StoppedBy   domain.DenyReason `json:"stopped_by,omitempty"`
	Interrupted bool              `json:"interrupted,omitempty"`
}

// String returns a log-friendly representation
func (r Report) String() string {
	res := fmt.Sprintf("due %d, posted %d, failed %d, skipped %d", r.Due, r.Posted, r.Failed, r.Skipped)
	if r.StoppedBy != domain.ReasonNone {
		res += ", stopped by " + string(r.StoppedBy)
	}
	if r.Interrupted {
		res += ", interrupted"
	}
	return res
}

// New makes posting worker
func New(params Params) *Worker {
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.PublishTimeout <= 0 {
		params.PublishTimeout = 30 * time.Second
	}
	return &Worker{Params: params, denials: map[int64]int{}}
}

// RunCycle runs one posting cycle. Cancelling ctx stops the cycle between items; an item whose
// publishing has started is always resolved to posted or failed.
func (w *Worker) RunCycle(ctx context.Context) (Report, error) {
	if !w.mu.TryLock() {
		return Report{}, ErrCycleRunning
	}
	defer w.mu.Unlock()

	report := Report{}
	now := w.Clock()
	gate, err := w.Admission.Gate(ctx, now)
	if err != nil {
		return report, fmt.Errorf("check admission gate: %w", err)
	}
	if !gate.Allowed {
		report.StoppedBy = gate.Reason
		w.Metrics.Cycle(gate.Reason)
		lgr.Printf("[DEBUG] posting cycle skipped, %s", gate)
		return report, nil
	}

	items, err := w.Queue.Due(ctx, now)
	if err != nil {
		return report, fmt.Errorf("get due items: %w", err)
	}
	report.Due = len(items)
	w.pruneDenials(items)

	for _, item := range items {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}
		scope := domain.PostScope{Platform: item.Platform, Account: item.AccountScope}
		d, err := w.Admission.MayAdmit(ctx, scope, w.Clock())
		if err != nil {
			return report, fmt.Errorf("admission check for item %d: %w", item.ID, err)
		}
		w.Metrics.Admission(d)
		if !d.Allowed {
			if d.StopsCycle() {
				report.StoppedBy = d.Reason
				lgr.Printf("[INFO] posting cycle stopped at item %d, %s", item.ID, d)
				break
			}
			report.Skipped++
			lgr.Printf("[DEBUG] item %d skipped, %s", item.ID, d)
			if w.denied(ctx, item, d) {
				report.Failed++
			}
			continue
		}
		delete(w.denials, item.ID)

		if w.publish(ctx, item, scope) {
			report.Posted++
			continue
		}
		report.Failed++
	}

	w.Metrics.Cycle(report.StoppedBy)
	if report.Due > 0 {
		lgr.Printf("[INFO] posting cycle completed: %s", report)
	}
	return report, nil
}

// publish sends the item and resolves its status. It runs detached from ctx cancellation,
// bounded by the publish timeout, so a shutdown never leaves a published item approved.
func (w *Worker) publish(ctx context.Context, item domain.ContentItem, scope domain.PostScope) bool {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.PublishTimeout)
	defer cancel()

	req := domain.PublishRequest{ItemID: item.ID, Platform: item.Platform, AccountScope: item.AccountScope,
		Channel: item.Channel, Title: item.Title, Body: item.Body, MediaRef: item.MediaRef}
	start := time.Now()
	ref, err := w.Publisher.Publish(pctx, req)
	w.Metrics.Publish(item.Platform, err, time.Since(start))

	if err != nil {
		lgr.Printf("[WARN] failed to publish item %d to %s: %v", item.ID, item.Platform, err)
		if _, ferr := w.Queue.MarkFailed(pctx, item.ID, err.Error()); ferr != nil {
			lgr.Printf("[ERROR] failed to mark item %d as failed: %v", item.ID, ferr)
		}
		w.audit(pctx, domain.AuditEntry{Level: "ERROR", Message: "publish failed", Meta: map[string]any{
			"item_id": item.ID, "platform": string(item.Platform), "account": item.AccountScope, "error": err.Error()}})
		return false
	}

	if _, err := w.Queue.MarkPosted(pctx, item.ID, ref); err != nil {
		lgr.Printf("[ERROR] item %d published as %s but not marked posted: %v", item.ID, ref, err)
		w.audit(pctx, domain.AuditEntry{Level: "ERROR", Message: "published item not marked posted", Meta: map[string]any{
			"item_id": item.ID, "external_ref": ref, "error": err.Error()}})
	}
	// budget is consumed by the publish itself, even if the status update failed
	if err := w.Admission.RecordAction(pctx, scope, item.ID, w.Clock()); err != nil {
		lgr.Printf("[ERROR] failed to record action for item %d: %v", item.ID, err)
	}
	lgr.Printf("[INFO] item %d published to %s/%s: %s", item.ID, item.Platform, item.AccountScope, ref)
	return true
}

// denied counts a scoped denial and fails the item once the limit is reached, returns true if failed
func (w *Worker) denied(ctx context.Context, item domain.ContentItem, d domain.Decision) bool {
	if w.MaxAdmissionDenials <= 0 {
		return false
	}
	w.denials[item.ID]++
	if w.denials[item.ID] < w.MaxAdmissionDenials {
		return false
	}
	delete(w.denials, item.ID)
	reason := fmt.Sprintf("admission denied %d times, last: %s", w.MaxAdmissionDenials, d.Reason)
	if _, err := w.Queue.MarkFailed(ctx, item.ID, reason); err != nil {
		lgr.Printf("[WARN] failed to mark item %d as failed: %v", item.ID, err)
		return false
	}
	w.audit(ctx, domain.AuditEntry{Level: "WARN", Message: "item failed after repeated admission denials",
		Meta: map[string]any{"item_id": item.ID, "reason": string(d.Reason)}})
	return true
}

// pruneDenials forgets counters of items no longer due
func (w *Worker) pruneDenials(items []domain.ContentItem) {
	due := make(map[int64]bool, len(items))
	for _, item := range items {
		due[item.ID] = true
	}
	for id := range w.denials {
		if !due[id] {
			delete(w.denials, id)
		}
	}
}

func (w *Worker) audit(ctx context.Context, entry domain.AuditEntry) {
	if w.Audit == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = w.Clock()
	}
	if err := w.Audit.Log(ctx, entry); err != nil {
		lgr.Printf("[WARN] failed to write audit entry %q: %v", entry.Message, err)
	}
}
