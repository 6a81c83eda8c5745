package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticketflow/internal/model"
)

// TicketRepo encapsulates all database queries related to tickets. The
// `order` column is quoted everywhere because ORDER is a reserved word
// in MySQL.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// CountLane returns the number of tickets currently in the
// (project, status) lane. A new ticket adopts this value as its order,
// which appends it to the end of the lane. No lock is taken: concurrent
// creations in the same lane may produce duplicate order values, which
// is accepted because order is an advisory placement hint.
func (r *TicketRepo) CountLane(ctx context.Context, projectID uint64, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE project_id=? AND status=?",
		projectID, status).Scan(&n)
	return n, err
}

// Create inserts a new ticket and reads the row back to populate the
// generated id and timestamps.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (title, description, status, `order`, project_id, created_by, updated_by) VALUES (?,?,?,?,?,?,?)",
		t.Title, t.Description, t.Status, t.Order, t.ProjectID, t.CreatedBy, t.UpdatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM tickets WHERE id=?",
		t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID fetches a ticket by id. Returns ErrTicketNotFound when no row
// matches.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	var t model.Ticket
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, description, status, `order`, project_id, created_by, updated_by, created_at, updated_at FROM tickets WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Order,
		&t.ProjectID, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// Update persists the mutable ticket fields. It never rewrites the
// creator or the project reference. Returns ErrTicketNotFound when the
// id matches no row.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET title=?, description=?, status=?, `order`=?, updated_by=? WHERE id=?",
		t.Title, t.Description, t.Status, t.Order, t.UpdatedBy, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL also reports zero rows for a no-op update; read the row
		// back to tell "unchanged" apart from "missing".
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
		return nil
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM tickets WHERE id=?", t.ID).Scan(&t.UpdatedAt)
}

// ListByProject returns all tickets of a project grouped by lane and
// ordered by their lane position. Ties on order (possible after
// concurrent creations) fall back to insertion order.
func (r *TicketRepo) ListByProject(ctx context.Context, projectID uint64) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, description, status, `order`, project_id, created_by, updated_by, created_at, updated_at FROM tickets WHERE project_id=? ORDER BY status, `order`, id",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Order,
			&t.ProjectID, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
