package model

import "time"

// Project represents a row in the `projects` table. A project owns its
// tickets exclusively: deleting a project cascades to its tickets at the
// database level (see migrations/schema.sql).
//
// Fields:
//  ID          – primary key identifier.
//  Title       – human-friendly project title.
//  Description – optional free-form description (nullable).
//  CreatedBy   – users.id of the creator.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Project struct {
	ID          uint64    // projects.id
	Title       string    // projects.title
	Description *string   // projects.description (nullable)
	CreatedBy   uint64    // projects.created_by
	CreatedAt   time.Time // projects.created_at
	UpdatedAt   time.Time // projects.updated_at
}

// ProjectSummary is the aggregate shape returned by the public project
// listing: the project row joined with its creator's email and the
// number of tickets it contains.
type ProjectSummary struct {
	ID           uint64  // projects.id
	Title        string  // projects.title
	Description  *string // projects.description (nullable)
	CreatedBy    uint64  // projects.created_by
	CreatorEmail *string // users.email of the creator (nullable join)
	TicketCount  int     // COUNT of tickets in the project
}
