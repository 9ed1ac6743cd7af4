// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns them into an activity log.
package queue

// Actions recorded on the note activity stream.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// NoteActivityEvent is published after a note mutation commits. It
// carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database.
type NoteActivityEvent struct {
	Action     string  `json:"action"`
	NoteID     uint64  `json:"note_id"`
	OwnerID    uint64  `json:"owner_id"`
	Title      *string `json:"title,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
