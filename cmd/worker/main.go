package main

import (
	"time"

	"go.uber.org/zap"

	"projecthub/internal/config"
	"projecthub/internal/mqhandler"
	"projecthub/internal/repository"
	"projecthub/internal/store"
	"projecthub/pkg/logger"
	"projecthub/pkg/mq"
	"projecthub/pkg/redis"
	"projecthub/pkg/util"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting activity worker...",
		zap.String("mongo_db", cfg.Mongo.Database),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// Document store
	client, err := store.NewConnection(cfg.Mongo, log)
	if err != nil {
		log.Fatal("Document store initialization failed", zap.Error(err))
	}
	defer store.Disconnect(client, log)
	db := client.Database(cfg.Mongo.Database)

	// Redis (消息去重)
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	deduper := util.NewDeduper(rdb, 1*time.Hour)

	// Repositories
	activityRepo := repository.NewActivityRepository(db, log)

	// MQ Handlers
	activityHandler := mqhandler.NewActivityHandler(activityRepo, deduper, log)

	// One queue bound to every domain event family. A single worker keeps
	// the per-project activity feed ordered enough for display.
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "activity", log,
		"project.*", "task.*", "milestone.*", "meeting.*")
	if err != nil {
		log.Fatal("Failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(activityHandler.HandleDomainEvent)

	log.Info("Starting activity consumer...")
	if err := consumer.StartConsuming(); err != nil {
		log.Fatal("Activity consumer failed", zap.Error(err))
	}
}
