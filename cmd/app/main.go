package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amberlee2706/scribe/internal/blogservice"
	"github.com/amberlee2706/scribe/internal/commentservice"
	"github.com/amberlee2706/scribe/internal/common"
	"github.com/amberlee2706/scribe/internal/eventservice"
	"github.com/amberlee2706/scribe/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	userService    *userservice.UserService
	blogService    *blogservice.BlogService
	commentService *commentservice.CommentService
	eventService   *eventservice.EventService
	broker         *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Tables are created on startup if they do not exist yet.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = common.InitSchema(ctx, db)
	cancel()
	if err != nil {
		logger.Error("failed to initialize the database schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupEventExchange(broker)
	if err != nil {
		logger.Error("failed to setup the event exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	blogCache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:         cfg,
		logger:         logger,
		userService:    userservice.NewUserService(db, broker, cfg.tokenConfig()),
		blogService:    blogservice.NewBlogService(db, broker, blogCache),
		commentService: commentservice.NewCommentService(db, broker),
		eventService:   eventservice.NewEventService(broker, logger),
		broker:         broker,
	}

	app.eventService.Run()
	defer app.eventService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
