package models

// PollOption is one answer of a poll together with its current tally.
type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// PollUpdate is the snapshot the origin system publishes after each
// committed vote. The hub relays it verbatim; it never validates or
// stores the contents.
type PollUpdate struct {
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	TotalVotes int          `json:"totalVotes"`
}

// Normalize replaces a nil options slice with an empty one so the
// serialized payload always carries "options":[] rather than null.
func (u *PollUpdate) Normalize() {
	if u.Options == nil {
		u.Options = []PollOption{}
	}
}

// NotifyResponse is returned to the publisher after a fan-out pass.
// DeliveredTo counts the subscribers the hub attempted to reach, not
// confirmed deliveries (SSE provides no acknowledgement).
type NotifyResponse struct {
	Success     bool `json:"success"`
	DeliveredTo int  `json:"deliveredTo"`
}

// ErrorResponse is the envelope for all 4xx/5xx JSON responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
