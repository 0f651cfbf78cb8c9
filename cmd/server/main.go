package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/httpserver"
	"projecthub/internal/repository"
	"projecthub/internal/service"
	"projecthub/internal/store"
	"projecthub/pkg/logger"
	"projecthub/pkg/mq"
	"projecthub/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	// Init document store
	client, err := store.NewConnection(cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("Document store initialization failed", zap.Error(err))
	}
	defer store.Disconnect(client, logger)
	db := client.Database(cfg.Mongo.Database)

	// Init Redis (pending invite sessions)
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init MQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db, logger)
	taskRepo := repository.NewTaskRepository(db, logger)
	milestoneRepo := repository.NewMilestoneRepository(db, logger)
	meetingRepo := repository.NewMeetingRepository(db, logger)
	activityRepo := repository.NewActivityRepository(db, logger)
	pendingRepo := repository.NewPendingInviteRepository(rdb, time.Duration(cfg.Invite.PendingTTLMinutes)*time.Minute)

	// Init Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(projectRepo, userRepo, publisher, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, publisher, logger)
	milestoneService := service.NewMilestoneService(milestoneRepo, publisher, logger)
	meetingService := service.NewMeetingService(meetingRepo, publisher, logger)
	inviteService := service.NewInviteService(projectService, pendingRepo, publisher, logger)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService, inviteService)
	projectHandler := handler.NewProjectHandler(projectService, taskService, activityRepo, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	inviteHandler := handler.NewInviteHandler(inviteService, cfg, logger)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		projectHandler,
		taskHandler,
		milestoneHandler,
		meetingHandler,
		inviteHandler,
		cfg.JWT.Secret,
		logger,
		client,
		publisher,
	)

	// Start API server
	logger.Info("Starting projecthub server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
