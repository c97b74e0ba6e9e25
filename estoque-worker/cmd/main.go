package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fichaspro/estoque-worker/internal/app/estoque/config"
	"fichaspro/estoque-worker/internal/app/estoque/handler"
	"fichaspro/estoque-worker/internal/app/estoque/processor"
	"fichaspro/estoque-worker/internal/app/estoque/repository"
	"fichaspro/estoque-worker/internal/app/estoque/service"
	"fichaspro/estoque-worker/internal/app/estoque/util"
	"fichaspro/pkg/logger"
)

const serviceName = "estoque-worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Init(serviceName, cfg.Log.Level)
			logger.Warn().Err(err).Msg("Logstash unavailable, logging to stdout")
		}
	} else {
		logger.Init(serviceName, cfg.Log.Level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === POSTGRESQL: только чтение insumos для скана ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	// === REDIS: дедупликация алертов ===
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	logger.Info().Msg("Successfully connected to Redis")

	// === MONGODB: история ревизий ===
	mongoClient, err := connectMongoDB(cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	logger.Info().Str("database", cfg.Mongo.Database).Msg("Successfully connected to MongoDB")

	insumoRepo := repository.NewInsumoRepository(db)
	alertaRepo := repository.NewAlertaRepository(redisClient)
	revisaoRepo := repository.NewRevisaoRepository(mongoDB)

	if err := revisaoRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
	}

	alertProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic)

	revisaoSvc := service.NewRevisaoService(revisaoRepo)
	estoqueSvc := service.NewEstoqueService(insumoRepo, alertaRepo, alertProducer, cfg.Alert.DedupTTL)

	// === KAFKA CONSUMER ===
	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		revisaoSvc,
		estoqueSvc,
	)
	kafkaConsumer.Start(ctx)

	// === CRON ===
	cronScheduler := processor.NewCronScheduler(estoqueSvc)
	if err := cronScheduler.Start(ctx, cfg.Scheduler.LowStockScan); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Scheduler.LowStockScan).Msg("Failed to start cron scheduler")
	}

	// === HEALTHCHECK И МЕТРИКИ ===
	checks := map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
		"mongo": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}
	router := handler.SetupRoutes(handler.NewHealthCheckHandler(checks, kafkaConsumer))

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", srv.Addr).Msg("Health and metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Str("alerts_topic", cfg.Kafka.AlertsTopic).
		Str("schedule", cfg.Scheduler.LowStockScan).
		Msg("Estoque worker is running")

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down estoque worker...")

	// сначала перестаем брать новые сообщения, затем ждем текущий скан
	kafkaConsumer.Stop()
	cronScheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := alertProducer.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka producer")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to disconnect MongoDB")
	}
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Redis")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info().Msg("Estoque worker stopped")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.Ping(); err == nil {
				sqlDB.SetMaxOpenConns(5)
				sqlDB.SetMaxIdleConns(2)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	var err error
	for i := 0; i < 10; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to redis after 10 attempts: %w", err)
}

func connectMongoDB(cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var err error
	for i := 0; i < 10; i++ {
		var client *mongo.Client
		client, err = connectMongoOnce(clientOptions)
		if err == nil {
			return client, nil
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to mongodb after 10 attempts: %w", err)
}

func connectMongoOnce(opts *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}
