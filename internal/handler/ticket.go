package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/model"
	"github.com/iliyamo/ticketflow/internal/repository"
)

// TicketHandler serves ticket creation, update and listing inside a
// project. Order assignment is the one piece of real logic here: a new
// ticket takes order = current size of its (project, status) lane,
// appending it to the end. Deletes and lane moves leave gaps; nothing
// ever renumbers a lane.
type TicketHandler struct {
	Projects ProjectStore
	Tickets  TicketStore
	Notify   Recorder
}

func NewTicketHandler(projects ProjectStore, tickets TicketStore, notify Recorder) *TicketHandler {
	return &TicketHandler{Projects: projects, Tickets: tickets, Notify: notify}
}

type createTicketReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// updateTicketReq uses pointers throughout so an absent field and an
// explicit value can be told apart.
type updateTicketReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
}

type ticketResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Order       int       `json:"order"`
	ProjectID   uint64    `json:"project_id"`
	CreatedBy   uint64    `json:"created_by"`
	UpdatedBy   *uint64   `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTicketResp(t model.Ticket) ticketResp {
	return ticketResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Order:       t.Order,
		ProjectID:   t.ProjectID,
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create handles POST /api/projects/:project_id/tickets. The project
// must exist regardless of how valid the caller's token is; the new
// ticket lands at the end of its lane.
func (h *TicketHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}
	var req createTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.DefaultTicketStatus
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load project failed"})
	}

	// Append to the end of the (project, status) lane. Concurrent
	// creations may race and share an order value; order is advisory.
	order, err := h.Tickets.CountLane(ctx, projectID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count lane failed"})
	}

	t := model.Ticket{
		Title:       title,
		Description: req.Description,
		Status:      status,
		Order:       order,
		ProjectID:   projectID,
		CreatedBy:   uid,
		UpdatedBy:   &uid,
	}
	if err := h.Tickets.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}

	n := model.Notification{
		Message:   fmt.Sprintf("Ticket '%s' created in %s", t.Title, project.Title),
		TicketID:  &t.ID,
		ProjectID: &projectID,
	}
	if err := h.Notify.Record(ctx, n); err != nil {
		c.Logger().Warnf("record notification failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":     t.ID,
		"title":  t.Title,
		"status": t.Status,
	})
}

// Update handles PATCH /api/tickets/:id. Any subset of title,
// description, status and order may change. When the status moves the
// ticket to another lane and the caller supplies no explicit order, the
// ticket is appended to the end of the new lane; an explicit order
// always wins. The old lane keeps its gap.
func (h *TicketHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req updateTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	laneChanged := false
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		if status == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status cannot be empty"})
		}
		laneChanged = status != t.Status
		t.Status = status
	}
	switch {
	case req.Order != nil:
		t.Order = *req.Order
	case laneChanged:
		order, err := h.Tickets.CountLane(ctx, t.ProjectID, t.Status)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count lane failed"})
		}
		t.Order = order
	}
	t.UpdatedBy = &uid

	if err := h.Tickets.Update(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update ticket failed"})
	}
	return c.JSON(http.StatusOK, toTicketResp(t))
}

// List handles GET /api/projects/:project_id/tickets and returns the
// project's tickets grouped by lane in lane order.
func (h *TicketHandler) List(c echo.Context) error {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load project failed"})
	}

	tickets, err := h.Tickets.ListByProject(ctx, projectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tickets failed"})
	}
	out := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResp(t))
	}
	return c.JSON(http.StatusOK, out)
}
