package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticketflow/internal/model"
)

// NotificationRepo appends to and reads from the 'notifications' table.
// Rows are append-only; the read flag is the only column ever updated.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Insert appends a notification row and populates the generated id.
func (r *NotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (message, user_id, ticket_id, project_id) VALUES (?,?,?,?)",
		n.Message, n.UserID, n.TicketID, n.ProjectID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// List returns the most recent notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, message, user_id, ticket_id, project_id, is_read, created_at FROM notifications ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.UserID, &n.TicketID, &n.ProjectID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead sets the read flag on a notification. Returns
// ErrNotificationNotFound when the id matches no unread row and the
// notification does not exist at all.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM notifications WHERE id=?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotificationNotFound
		}
	}
	return nil
}
