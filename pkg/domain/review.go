package domain

import "time"

// WorkerReviewer is the reviewer name recorded for automated transitions
const WorkerReviewer = "worker"

// ReviewAction is the kind of transition a review records
type ReviewAction string

// review actions
const (
	ReviewApprove  ReviewAction = "approve"
	ReviewReject   ReviewAction = "reject"
	ReviewPost     ReviewAction = "post"
	ReviewFail     ReviewAction = "fail"
	ReviewResubmit ReviewAction = "resubmit"
)

// Review is an append-only audit record of one transition
type Review struct {
	ID        int64        `json:"id"`
	ItemID    int64        `json:"item_id"`
	Reviewer  string       `json:"reviewer"`
	Action    ReviewAction `json:"action"`
	Notes     string       `json:"notes,omitempty"`
	Override  bool         `json:"override,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
