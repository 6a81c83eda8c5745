package model

import "time"

// Notification is an append-only log record in the `notifications`
// table, written as a side effect of project and ticket mutations. The
// read flag is the only field ever mutated after insertion.
//
// Fields:
//  ID        – primary key identifier.
//  Message   – human-readable event text.
//  UserID    – related user, if any (nullable).
//  TicketID  – related ticket, if any (nullable).
//  ProjectID – related project, if any (nullable).
//  IsRead    – whether the notification has been acknowledged.
//  CreatedAt – timestamp of the event.
type Notification struct {
	ID        uint64    // notifications.id
	Message   string    // notifications.message
	UserID    *uint64   // notifications.user_id (nullable)
	TicketID  *uint64   // notifications.ticket_id (nullable)
	ProjectID *uint64   // notifications.project_id (nullable)
	IsRead    bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
