package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/model"
)

// ProjectHandler serves the public project listing and authenticated
// project creation. Any authenticated user may create projects; there
// is no per-project permission model.
type ProjectHandler struct {
	Projects ProjectStore
	Notify   Recorder
}

func NewProjectHandler(projects ProjectStore, notify Recorder) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Notify: notify}
}

type createProjectReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type projectSummaryResp struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	CreatedBy    uint64  `json:"created_by"`
	CreatorEmail *string `json:"creator_email"`
	TicketCount  int     `json:"ticket_count"`
}

// List handles GET /api/projects. It is public and returns each project
// with its creator's email and ticket count.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	items, err := h.Projects.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list projects failed"})
	}
	out := make([]projectSummaryResp, 0, len(items))
	for _, s := range items {
		out = append(out, projectSummaryResp{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			CreatedBy:    s.CreatedBy,
			CreatorEmail: s.CreatorEmail,
			TicketCount:  s.TicketCount,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/projects. It requires a bearer token, stamps
// the creator and records a notification.
func (h *ProjectHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	p := model.Project{Title: title, Description: req.Description, CreatedBy: uid}
	if err := h.Projects.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create project failed"})
	}

	n := model.Notification{
		Message:   fmt.Sprintf("Project '%s' created", p.Title),
		ProjectID: &p.ID,
	}
	if err := h.Notify.Record(ctx, n); err != nil {
		// The project row is already committed; a lost notification is
		// accepted rather than failing the request.
		c.Logger().Warnf("record notification failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
	})
}
