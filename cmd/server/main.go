package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticketflow/internal/config"
	"github.com/iliyamo/ticketflow/internal/database"
	"github.com/iliyamo/ticketflow/internal/handler"
	"github.com/iliyamo/ticketflow/internal/queue"
	"github.com/iliyamo/ticketflow/internal/repository"
	"github.com/iliyamo/ticketflow/internal/router"
	"github.com/iliyamo/ticketflow/internal/service"
)

func main() {
	_ = godotenv.Load() // best-effort; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	codes := repository.NewOTPRepo(db)
	projects := repository.NewProjectRepo(db)
	tickets := repository.NewTicketRepo(db)
	notifications := repository.NewNotificationRepo(db)

	notifier := service.NewNotifier(notifications)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, codes),
		Projects:      handler.NewProjectHandler(projects, notifier),
		Tickets:       handler.NewTicketHandler(projects, tickets, notifier),
		Notifications: handler.NewNotificationHandler(notifications),
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	router.Register(e, h, cfg, rdb)

	// Drain notification events into logs/notifications.log in the
	// background; the consumer reconnects on its own.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
