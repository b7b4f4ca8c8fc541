package journal

import "time"

// Kind names the AI gateway operation an event belongs to.
type Kind string

const (
	KindImage    Kind = "image"
	KindText     Kind = "text"
	KindFollowup Kind = "followup"
)

// Event is one AI gateway round trip. Prompt holds the user-supplied part of
// the request (ingredients, question); image bytes are never recorded.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    int64     `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Model     string    `json:"model,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Response  string    `json:"response,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
}

// Recorder abstracts persistence of gateway events.
// LoadEvents returns events in the order they were appended.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(event Event) error
	LoadEvents() ([]Event, error)
}
