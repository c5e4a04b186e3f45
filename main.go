package main

import (
	"log"

	"github.com/catarena-s/explore-with-me/config"
	"github.com/catarena-s/explore-with-me/internal/consumer"
	"github.com/catarena-s/explore-with-me/internal/handler"
	"github.com/catarena-s/explore-with-me/internal/middleware"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/catarena-s/explore-with-me/pkg/database"
	"github.com/catarena-s/explore-with-me/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: endpoint hits travel through the stats exchange so view
	// recording never blocks a public request.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	hitRepo := repository.NewHitRepository(db)

	consumer.NewHitConsumer(hitRepo).Start(msgs)

	// Services
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo, eventRepo)
	eventSvc := service.NewEventService(eventRepo, userRepo, categoryRepo, locationRepo)
	requestSvc := service.NewRequestService(requestRepo, eventRepo, userRepo)
	friendshipSvc := service.NewFriendshipService(friendshipRepo, userRepo)
	friendSvc := service.NewFriendService(friendshipRepo, userRepo)
	statsSvc := service.NewStatsService(cfg.AppName, publisher, hitRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": cfg.AppName})
	})

	handler.NewUserHandler(userSvc).RegisterRoutes(e)
	handler.NewCategoryHandler(categorySvc).RegisterRoutes(e)
	handler.NewEventHandler(eventSvc, statsSvc).RegisterRoutes(e)
	handler.NewRequestHandler(requestSvc).RegisterRoutes(e)
	handler.NewFriendshipHandler(friendshipSvc, friendSvc).RegisterRoutes(e)
	handler.NewStatsHandler(statsSvc).RegisterRoutes(e)

	log.Printf("Main Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
