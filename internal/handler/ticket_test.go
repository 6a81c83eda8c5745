package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/iliyamo/ticketflow/internal/model"
)

func newTestTicketHandler() (*TicketHandler, *fakeProjects, *fakeTickets, *fakeRecorder) {
	projects := newFakeProjects()
	tickets := newFakeTickets()
	rec := &fakeRecorder{}
	return NewTicketHandler(projects, tickets, rec), projects, tickets, rec
}

func seedProject(t *testing.T, projects *fakeProjects, title string) uint64 {
	t.Helper()
	p := model.Project{Title: title, CreatedBy: 1}
	if err := projects.Create(context.Background(), &p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p.ID
}

// createTicket drives the handler as an authenticated user and returns
// the response status plus decoded body.
func createTicket(t *testing.T, h *TicketHandler, projectID uint64, body string) (int, map[string]any) {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPost, "/api/projects/1/tickets", body)
	c.SetParamNames("project_id")
	c.SetParamValues(fmt.Sprint(projectID))
	c.Set("user_id", uint64(7))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rec.Code, decodeBody(t, rec)
}

func TestCreateTicketLaneOrdering(t *testing.T) {
	h, projects, tickets, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	for i := 0; i < 3; i++ {
		status, _ := createTicket(t, h, pid, fmt.Sprintf(`{"title":"t%d","status":"todo"}`, i))
		if status != http.StatusCreated {
			t.Fatalf("create ticket %d: got %d, want %d", i, status, http.StatusCreated)
		}
	}

	orders := map[int]bool{}
	for _, tk := range tickets.byID {
		if tk.Status == "todo" {
			orders[tk.Order] = true
		}
	}
	for want := 0; want < 3; want++ {
		if !orders[want] {
			t.Errorf("todo lane missing order %d (got %v)", want, orders)
		}
	}

	// A different lane starts over at zero: order is lane-scoped, not
	// project-scoped.
	status, _ := createTicket(t, h, pid, `{"title":"t4","status":"doing"}`)
	if status != http.StatusCreated {
		t.Fatalf("create doing ticket: got %d", status)
	}
	for _, tk := range tickets.byID {
		if tk.Status == "doing" && tk.Order != 0 {
			t.Errorf("doing lane first ticket order: got %d, want 0", tk.Order)
		}
	}
}

func TestCreateTicketDefaultsToTodo(t *testing.T) {
	h, projects, _, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	status, body := createTicket(t, h, pid, `{"title":"no status"}`)
	if status != http.StatusCreated {
		t.Fatalf("create: got %d, want %d", status, http.StatusCreated)
	}
	if body["status"] != "todo" {
		t.Errorf("default status: got %v, want todo", body["status"])
	}
}

func TestCreateTicketProjectNotFound(t *testing.T) {
	h, _, _, rec := newTestTicketHandler()

	// Authentication is perfectly valid; the project id is not.
	status, body := createTicket(t, h, 999, `{"title":"orphan"}`)
	if status != http.StatusNotFound {
		t.Errorf("missing project: got %d, want %d", status, http.StatusNotFound)
	}
	if body["error"] != "project not found" {
		t.Errorf("error message: got %v", body["error"])
	}
	if len(rec.recorded) != 0 {
		t.Errorf("no notification expected, got %d", len(rec.recorded))
	}
}

func TestCreateTicketStampsPrincipalAndNotifies(t *testing.T) {
	h, projects, tickets, rec := newTestTicketHandler()
	pid := seedProject(t, projects, "Apollo")

	status, _ := createTicket(t, h, pid, `{"title":"Fix login"}`)
	if status != http.StatusCreated {
		t.Fatalf("create: got %d", status)
	}

	var created model.Ticket
	for _, tk := range tickets.byID {
		created = tk
	}
	if created.CreatedBy != 7 {
		t.Errorf("created_by: got %d, want 7", created.CreatedBy)
	}
	if created.UpdatedBy == nil || *created.UpdatedBy != 7 {
		t.Errorf("updated_by: got %v, want 7", created.UpdatedBy)
	}

	if len(rec.recorded) != 1 {
		t.Fatalf("notifications recorded: got %d, want 1", len(rec.recorded))
	}
	n := rec.recorded[0]
	if n.Message != "Ticket 'Fix login' created in Apollo" {
		t.Errorf("notification message: got %q", n.Message)
	}
	if n.TicketID == nil || *n.TicketID != created.ID || n.ProjectID == nil || *n.ProjectID != pid {
		t.Errorf("notification refs: got ticket=%v project=%v", n.TicketID, n.ProjectID)
	}
}

func TestCreateTicketRequiresPrincipal(t *testing.T) {
	h, projects, _, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	c, rec := newJSONContext(t, http.MethodPost, "/api/projects/1/tickets", `{"title":"x"}`)
	c.SetParamNames("project_id")
	c.SetParamValues(fmt.Sprint(pid))
	// No user_id in context.
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func updateTicket(t *testing.T, h *TicketHandler, id uint64, body string) (int, map[string]any) {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPatch, "/api/tickets/1", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(id))
	c.Set("user_id", uint64(9))
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	return rec.Code, decodeBody(t, rec)
}

func TestUpdateTicketLaneMoveAppendsToNewLane(t *testing.T) {
	h, projects, tickets, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	// Two tickets already in "doing", one in "todo".
	createTicket(t, h, pid, `{"title":"d0","status":"doing"}`)
	createTicket(t, h, pid, `{"title":"d1","status":"doing"}`)
	status, body := createTicket(t, h, pid, `{"title":"mover","status":"todo"}`)
	if status != http.StatusCreated {
		t.Fatalf("create mover: got %d", status)
	}
	moverID := uint64(body["id"].(float64))

	// Moving lanes without an explicit order appends to the new lane.
	status, updated := updateTicket(t, h, moverID, `{"status":"doing"}`)
	if status != http.StatusOK {
		t.Fatalf("update: got %d (body %v)", status, updated)
	}
	if updated["order"].(float64) != 2 {
		t.Errorf("order after lane move: got %v, want 2", updated["order"])
	}
	if got := tickets.byID[moverID]; got.UpdatedBy == nil || *got.UpdatedBy != 9 {
		t.Errorf("updated_by after move: got %v, want 9", got.UpdatedBy)
	}
}

func TestUpdateTicketExplicitOrderWins(t *testing.T) {
	h, projects, _, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	createTicket(t, h, pid, `{"title":"d0","status":"doing"}`)
	_, body := createTicket(t, h, pid, `{"title":"mover","status":"todo"}`)
	moverID := uint64(body["id"].(float64))

	status, updated := updateTicket(t, h, moverID, `{"status":"doing","order":0}`)
	if status != http.StatusOK {
		t.Fatalf("update: got %d", status)
	}
	if updated["order"].(float64) != 0 {
		t.Errorf("explicit order: got %v, want 0", updated["order"])
	}
}

func TestUpdateTicketSameLaneKeepsOrder(t *testing.T) {
	h, projects, _, _ := newTestTicketHandler()
	pid := seedProject(t, projects, "Board")

	createTicket(t, h, pid, `{"title":"a","status":"todo"}`)
	_, body := createTicket(t, h, pid, `{"title":"b","status":"todo"}`)
	id := uint64(body["id"].(float64))

	// Retitling inside the same lane must not touch the order value.
	status, updated := updateTicket(t, h, id, `{"title":"b renamed","status":"todo"}`)
	if status != http.StatusOK {
		t.Fatalf("update: got %d", status)
	}
	if updated["order"].(float64) != 1 {
		t.Errorf("order after same-lane update: got %v, want 1", updated["order"])
	}
	if updated["title"] != "b renamed" {
		t.Errorf("title: got %v", updated["title"])
	}
}

func TestUpdateTicketNotFound(t *testing.T) {
	h, _, _, _ := newTestTicketHandler()

	status, _ := updateTicket(t, h, 42, `{"title":"ghost"}`)
	if status != http.StatusNotFound {
		t.Errorf("missing ticket: got %d, want %d", status, http.StatusNotFound)
	}
}

func TestListTicketsProjectNotFound(t *testing.T) {
	h, _, _, _ := newTestTicketHandler()

	c, rec := newJSONContext(t, http.MethodGet, "/api/projects/5/tickets", "")
	c.SetParamNames("project_id")
	c.SetParamValues("5")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("list missing project: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
