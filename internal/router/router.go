package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ticketflow/internal/config"
	"github.com/iliyamo/ticketflow/internal/handler"
	"github.com/iliyamo/ticketflow/internal/middleware"
)

// Handlers bundles everything the router needs to wire the API.
type Handlers struct {
	Auth          *handler.AuthHandler
	Projects      *handler.ProjectHandler
	Tickets       *handler.TicketHandler
	Notifications *handler.NotificationHandler
}

// Register wires all routes on the provided Echo instance.
//
// The auth endpoints sit behind the Redis token bucket so OTP issuance
// cannot be hammered from one client; the public project listing sits
// behind the response cache. Both middlewares are pass-throughs when
// rdb is nil. Protected routes get the JWT middleware individually
// because public and protected paths share the /api prefix.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	// Health check at the root, used by load balancers.
	e.GET("/", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)

	// OTP login flow: no session required.
	g := e.Group("/api/auth", limiter)
	g.POST("/send-otp", h.Auth.SendOTP)
	g.POST("/verify-otp", h.Auth.VerifyOTP)

	// Projects: the listing is public, creation needs a session.
	e.GET("/api/projects", h.Projects.List, cache)
	e.POST("/api/projects", h.Projects.Create, auth)

	// Tickets inside a project.
	e.GET("/api/projects/:project_id/tickets", h.Tickets.List)
	e.POST("/api/projects/:project_id/tickets", h.Tickets.Create, auth)
	e.PATCH("/api/tickets/:id", h.Tickets.Update, auth)

	// Notification log.
	e.GET("/api/notifications", h.Notifications.List, auth)
	e.POST("/api/notifications/:id/read", h.Notifications.MarkRead, auth)
}
