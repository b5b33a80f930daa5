package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Evently-Event-Management/ms-event-seating/config"
	"github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka/consumer"
	"github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka/producer"
	infraMongo "github.com/Evently-Event-Management/ms-event-seating/internal/infra/mongo"
	infraPostgres "github.com/Evently-Event-Management/ms-event-seating/internal/infra/postgres"
	infraRedis "github.com/Evently-Event-Management/ms-event-seating/internal/infra/redis"
	mongoRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/mongo"
	pgRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	redisRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/redis"
	"github.com/Evently-Event-Management/ms-event-seating/internal/service"
	pkgKafka "github.com/Evently-Event-Management/ms-event-seating/pkg/kafka"
	pkgLog "github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})

	mongoCli, err := infraMongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to MongoDB: %v", err)
	}
	defer infraMongo.Disconnect(ctx, mongoCli)
	mongoDB := mongoCli.Database(cfg.Mongo.Database)

	pgDB, err := infraPostgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Postgres: %v", err)
	}
	defer infraPostgres.Disconnect(pgDB)

	redisCli, err := infraRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
	}
	defer infraRedis.Disconnect(redisCli)

	// Repositories
	mapRepo := mongoRepo.NewMongoSeatingMapRepository(mongoDB, l)
	discountRepo := pgRepo.NewPostgresDiscountRepository(pgDB, l)
	sessionRepo := redisRepo.NewCachedSessionRepository(
		pgRepo.NewPostgresSessionRepository(pgDB, l),
		redisCli,
		cfg.Redis.SessionTTL,
		l,
	)

	// Initialize Kafka producer
	kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		RetryMax:     cfg.Kafka.ProducerRetryMax,
		RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
	})
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
	}

	// Initialize Kafka consumer group
	kafkaConsGr, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.ConsumerGroupID,
	})
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
	}

	prod := producer.NewProducer(kafkaSyncProd, l)
	defer prod.Close()

	// Services
	seatSvc := service.NewSeatService(sessionRepo, mapRepo, l)
	discountSvc := service.NewDiscountService(discountRepo, l)

	// Order completion consumer
	cons := consumer.NewConsumer(kafkaConsGr, seatSvc, discountSvc, prod, cfg.Kafka.AckOnError, l)
	if err := cons.Start(ctx); err != nil {
		l.Fatalf(ctx, "Failed to start consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info(ctx, "Service shutting down...")

	cancel()
	time.Sleep(1 * time.Second)

	if err := cons.Close(); err != nil {
		l.Errorf(ctx, "Failed to close consumer: %v", err)
	}

	l.Info(ctx, "Service exited")
}
