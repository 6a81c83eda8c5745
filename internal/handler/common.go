package handler // handler contains the HTTP handlers and the store contracts they consume

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/model"
)

// The handlers depend on small store interfaces rather than concrete
// repositories so the auth and ordering logic can be exercised against
// in-memory fakes. The types in internal/repository satisfy these.

// UserStore resolves and creates user accounts by email.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, email string) (model.User, error)
}

// CodeStore persists one-time codes and consumes them atomically.
// Consume must return repository.ErrCodeInvalid when no unconsumed,
// unexpired code matches.
type CodeStore interface {
	Insert(ctx context.Context, c model.OTPCode) error
	Consume(ctx context.Context, email, code string, now time.Time) error
}

// ProjectStore provides project persistence.
type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uint64) (model.Project, error)
	List(ctx context.Context) ([]model.ProjectSummary, error)
}

// TicketStore provides ticket persistence plus the lane count used for
// order assignment.
type TicketStore interface {
	CountLane(ctx context.Context, projectID uint64, status string) (int, error)
	Create(ctx context.Context, t *model.Ticket) error
	GetByID(ctx context.Context, id uint64) (model.Ticket, error)
	Update(ctx context.Context, t *model.Ticket) error
	ListByProject(ctx context.Context, projectID uint64) ([]model.Ticket, error)
}

// NotificationStore reads the notification log and flips read flags.
type NotificationStore interface {
	List(ctx context.Context, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint64) error
}

// Recorder appends a notification record as a side effect of a
// mutation. Recording failures are logged by callers and never fail the
// request that triggered them: the entity write and its notification
// are separate commits.
type Recorder interface {
	Record(ctx context.Context, n model.Notification) error
}

// getUserID extracts the authenticated user id that JWTAuth stored in
// the echo context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// reqTimeout bounds every database call made from a handler.
const reqTimeout = 5 * time.Second
