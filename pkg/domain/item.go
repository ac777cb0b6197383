package domain

import (
	"fmt"
	"strings"
	"time"
)

// Platform is a social network a content item is published to
type Platform string

// supported platforms
const (
	PlatformReddit   Platform = "reddit"
	PlatformBluesky  Platform = "bluesky"
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
)

// Platforms lists all supported platforms in display order
var Platforms = []Platform{PlatformReddit, PlatformBluesky, PlatformTwitter, PlatformLinkedIn}

// ParsePlatform converts a string to a Platform, case-insensitive
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", &ValidationError{Field: "platform", Message: fmt.Sprintf("unknown platform %q", s)}
}

// Status is a lifecycle state of a content item
type Status string

// item statuses
const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPosted   Status = "posted"
	StatusFailed   Status = "failed"
)

// Statuses lists all statuses in lifecycle order
var Statuses = []Status{StatusDraft, StatusApproved, StatusRejected, StatusPosted, StatusFailed}

// ParseStatus converts a string to a Status
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
}

// transitions holds allowed from -> to moves. failed and posted are terminal.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusApproved, StatusRejected},
	StatusApproved: {StatusPosted, StatusFailed},
}

// CanTransition reports whether an item may move from one status to another
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from the status
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// ContentItem is a piece of content moving through the review and posting pipeline.
// ExternalRef is set if and only if Status is StatusPosted.
type ContentItem struct {
	ID              int64             `json:"id"`
	Platform        Platform          `json:"platform"`
	AccountScope    string            `json:"account_scope"`
	Channel         string            `json:"channel,omitempty"`
	Flair           string            `json:"flair,omitempty"`
	NoSelfPromotion bool              `json:"no_self_promotion,omitempty"`
	Title           string            `json:"title"`
	Body            string            `json:"body"`
	MediaRef        string            `json:"media_ref,omitempty"`
	Status          Status            `json:"status"`
	Verdict         ComplianceVerdict `json:"verdict"`
	SimilarityScore float64           `json:"similarity_score"`
	ScheduledAt     *time.Time        `json:"scheduled_at,omitempty"`
	ExternalRef     string            `json:"external_ref,omitempty"`
	FailureReason   string            `json:"failure_reason,omitempty"`
	SourceRef       string            `json:"source_ref,omitempty"`
	ResubmittedFrom int64             `json:"resubmitted_from,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Due reports whether an approved item may be published at the given time
func (c *ContentItem) Due(now time.Time) bool {
	if c.Status != StatusApproved {
		return false
	}
	return c.ScheduledAt == nil || !c.ScheduledAt.After(now)
}

// Draft is the input for creating a new queue item
type Draft struct {
	Platform        Platform   `json:"platform"`
	AccountScope    string     `json:"account_scope"`
	Channel         string     `json:"channel,omitempty"`
	Flair           string     `json:"flair,omitempty"`
	NoSelfPromotion bool       `json:"no_self_promotion,omitempty"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	MediaRef        string     `json:"media_ref,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	SourceRef       string     `json:"source_ref,omitempty"`
}

// DraftUpdate carries recomputed fields written back to a draft after an edit
type DraftUpdate struct {
	Title           string
	Body            string
	Verdict         ComplianceVerdict
	SimilarityScore float64
	At              time.Time
}

// Transition describes a single status change together with its audit review.
// ExternalRef is used for posted, FailureReason for failed, ScheduledAt for approved.
type Transition struct {
	ItemID        int64
	From          Status
	To            Status
	Review        Review
	ExternalRef   string
	FailureReason string
	ScheduledAt   *time.Time
	At            time.Time

	// RequireCompliant makes the update conditional on the stored verdict being compliant
	RequireCompliant bool
}

// ItemFilter selects content items for listing
type ItemFilter struct {
	Statuses []Status
	Platform Platform
	Text     string
	MinScore *int
	MaxScore *int
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
