package domain

// PublishRequest is what a platform adapter receives for one item
type PublishRequest struct {
	ItemID       int64
	Platform     Platform
	AccountScope string
	Channel      string
	Title        string
	Body         string
	MediaRef     string
}

// BulkFailure is one failed id in a bulk operation
type BulkFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// BulkResult reports partial success of a bulk operation
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
	Items     []ContentItem `json:"items,omitempty"`
}

// FailedIDs returns ids of failed entries in request order
func (r BulkResult) FailedIDs() []int64 {
	res := make([]int64, 0, len(r.Failed))
	for _, f := range r.Failed {
		res = append(res, f.ID)
	}
	return res
}
