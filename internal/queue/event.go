// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// NotificationRecordedEvent is published after a notification row has
// been committed. It carries enough for downstream consumers to log or
// fan out without querying the primary database. The referenced ids are
// zero when the notification has no such reference.
type NotificationRecordedEvent struct {
	NotificationID uint64 `json:"notification_id"`
	Message        string `json:"message"`
	UserID         uint64 `json:"user_id,omitempty"`
	TicketID       uint64 `json:"ticket_id,omitempty"`
	ProjectID      uint64 `json:"project_id,omitempty"`
	RecordedAt     string `json:"recorded_at"`
}
