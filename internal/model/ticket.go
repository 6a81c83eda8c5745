package model

import "time"

// Ticket represents a kanban item in the `tickets` table. Status is a
// free-form lane name ("todo" by default). Order is scoped to the
// (project, status) lane: a new ticket takes order = current lane size,
// which appends it to the end of the lane. Order values are a placement
// hint assigned at creation; deletes and lane moves may leave gaps and
// no renumbering ever happens.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – ticket title.
//  Description – optional free-form description (nullable).
//  Status      – lane name, e.g. "todo", "doing", "done".
//  Order       – position within the (project, status) lane.
//  ProjectID   – owning project.
//  CreatedBy   – users.id of the creator.
//  UpdatedBy   – users.id of the last updater (nullable).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Ticket struct {
	ID          uint64    // tickets.id
	Title       string    // tickets.title
	Description *string   // tickets.description (nullable)
	Status      string    // tickets.status
	Order       int       // tickets.`order`
	ProjectID   uint64    // tickets.project_id
	CreatedBy   uint64    // tickets.created_by
	UpdatedBy   *uint64   // tickets.updated_by (nullable)
	CreatedAt   time.Time // tickets.created_at
	UpdatedAt   time.Time // tickets.updated_at
}

// DefaultTicketStatus is the lane a ticket lands in when the caller does
// not specify one.
const DefaultTicketStatus = "todo"
