package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fichaspro/fichas-service/internal/app/fichas/config"
	"fichaspro/fichas-service/internal/app/fichas/entity"
	"fichaspro/fichas-service/internal/app/fichas/handler"
	"fichaspro/fichas-service/internal/app/fichas/infrastructure/pdf"
	"fichaspro/fichas-service/internal/app/fichas/repository"
	"fichaspro/fichas-service/internal/app/fichas/service"
	"fichaspro/fichas-service/internal/app/fichas/util"
	"fichaspro/pkg/logger"
)

const serviceName = "fichas-service"

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

	// === POSTGRESQL ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(entity.Models()...); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate schema")
		}
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	// === REDIS: кеш единиц и отозванные сессии ===
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === KAFKA: события FICHA_* и INSUMO_* для estoque-worker ===
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka producer initialized")

	// === MONGODB: история ревизий, пишет estoque-worker ===
	mongoClient, err := connectMongoDB(cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	logger.Info().Msg("Successfully connected to MongoDB")

	referenciaRepo := repository.NewReferenciaRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	fichaRepo := repository.NewFichaRepository(db)
	revisaoRepo := repository.NewRevisaoRepository(mongoClient.Database(cfg.Mongo.Database))

	referenciaService := service.NewReferenciaService(referenciaRepo, redisClient, cfg.Cache.UnidadesTTL)
	fornecedorService := service.NewFornecedorService(fornecedorRepo)
	insumoService := service.NewInsumoService(insumoRepo, referenciaRepo, fornecedorRepo, kafkaProducer)
	fichaService := service.NewFichaService(fichaRepo, referenciaRepo, insumoRepo, revisaoRepo, pdf.NewFichaRenderer(), kafkaProducer)
	dashboardService := service.NewDashboardService(fichaRepo, insumoRepo, fornecedorRepo)

	handlers := handler.Handlers{
		Referencias:  handler.NewReferenciaHandler(referenciaService),
		Fornecedores: handler.NewFornecedorHandler(fornecedorService),
		Insumos:      handler.NewInsumoHandler(insumoService),
		Fichas:       handler.NewFichaHandler(fichaService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}
	session := handler.NewSessionMiddleware(cfg.JWT.Secret, cfg.Session.CookieName, redisClient)

	checks := map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": redisClient.Ping,
		"mongo": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}

	router := handler.SetupRoutes(handlers, session, cfg.CORS.AllowedOrigins, checks)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Fichas Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Fichas Service...")

	// 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Fichas Service stopped gracefully")
}

// connectDB открывает GORM поверх pgx, 10 попыток: в Docker PostgreSQL стартует позже
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
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
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
