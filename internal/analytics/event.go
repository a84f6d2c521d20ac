package analytics

import "time"

const (
	TopicLetterCreated = "letter.created"
	TopicLetterOpened  = "letter.opened"
)

// LetterCreatedEvent is emitted when a share link is composed.
// Letter content never leaves the request.
type LetterCreatedEvent struct {
	ID        string    `json:"id,omitempty"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LetterOpenedEvent is emitted when a link is resolved.
type LetterOpenedEvent struct {
	ID        string    `json:"id,omitempty"`
	Kind      string    `json:"kind"`
	Outcome   string    `json:"outcome"`
	OpenedAt  time.Time `json:"openedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
}
