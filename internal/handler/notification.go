package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/repository"
)

// NotificationHandler exposes the notification log: a list of recent
// records and the single permitted mutation, flipping the read flag.
type NotificationHandler struct {
	Notifications NotificationStore
}

func NewNotificationHandler(notifications NotificationStore) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

type notificationResp struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	UserID    *uint64   `json:"user_id"`
	TicketID  *uint64   `json:"ticket_id"`
	ProjectID *uint64   `json:"project_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/notifications, newest first. The optional
// ?limit query parameter caps the page size (default 50).
func (h *NotificationHandler) List(c echo.Context) error {
	limit := 50
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Notifications.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notifications failed"})
	}
	out := make([]notificationResp, 0, len(items))
	for _, n := range items {
		out = append(out, notificationResp{
			ID:        n.ID,
			Message:   n.Message,
			UserID:    n.UserID,
			TicketID:  n.TicketID,
			ProjectID: n.ProjectID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
