package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/model"
	"github.com/iliyamo/ticketflow/internal/repository"
)

// In-memory store fakes. They implement the store interfaces in
// common.go with the same sentinel errors the real repositories use.

type fakeUsers struct {
	byEmail map[string]model.User
	nextID  uint64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]model.User{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, email string) (model.User, error) {
	f.nextID++
	u := model.User{ID: f.nextID, Email: email, CreatedAt: time.Now().UTC()}
	f.byEmail[email] = u
	return u, nil
}

type fakeCodes struct {
	codes []model.OTPCode
}

func (f *fakeCodes) Insert(_ context.Context, c model.OTPCode) error {
	f.codes = append(f.codes, c)
	return nil
}

func (f *fakeCodes) Consume(_ context.Context, email, code string, now time.Time) error {
	for i := range f.codes {
		c := &f.codes[i]
		if c.Email == email && c.Code == code && !c.Used && c.ExpiresAt.After(now) {
			c.Used = true
			return nil
		}
	}
	return repository.ErrCodeInvalid
}

type fakeProjects struct {
	byID   map[uint64]model.Project
	nextID uint64
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{byID: map[uint64]model.Project{}}
}

func (f *fakeProjects) Create(_ context.Context, p *model.Project) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id uint64) (model.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return model.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjects) List(_ context.Context) ([]model.ProjectSummary, error) {
	out := []model.ProjectSummary{}
	for _, p := range f.byID {
		out = append(out, model.ProjectSummary{
			ID: p.ID, Title: p.Title, Description: p.Description, CreatedBy: p.CreatedBy,
		})
	}
	return out, nil
}

type fakeTickets struct {
	byID   map[uint64]model.Ticket
	nextID uint64
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{byID: map[uint64]model.Ticket{}}
}

func (f *fakeTickets) CountLane(_ context.Context, projectID uint64, status string) (int, error) {
	n := 0
	for _, t := range f.byID {
		if t.ProjectID == projectID && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeTickets) Create(_ context.Context, t *model.Ticket) error {
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTickets) GetByID(_ context.Context, id uint64) (model.Ticket, error) {
	t, ok := f.byID[id]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTickets) Update(_ context.Context, t *model.Ticket) error {
	if _, ok := f.byID[t.ID]; !ok {
		return repository.ErrTicketNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTickets) ListByProject(_ context.Context, projectID uint64) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range f.byID {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRecorder struct {
	recorded []model.Notification
}

func (f *fakeRecorder) Record(_ context.Context, n model.Notification) error {
	f.recorded = append(f.recorded, n)
	return nil
}

type fakeNotifications struct {
	items []model.Notification
}

func (f *fakeNotifications) List(_ context.Context, limit int) ([]model.Notification, error) {
	if limit > len(f.items) {
		limit = len(f.items)
	}
	return f.items[:limit], nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id uint64) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

// newJSONContext builds an echo context carrying a JSON body, plus the
// recorder to inspect the response.
func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}
