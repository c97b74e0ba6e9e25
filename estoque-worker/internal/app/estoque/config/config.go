package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config - настройки estoque-worker: PostgreSQL (скан остатков), Redis (дедупликация алертов),
// Kafka (события и алерты), MongoDB (история ревизий)
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Alert     AlertConfig     `mapstructure:"alert"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig - та же БД, что у fichas-service, воркер только читает
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig - Topic слушаем, в AlertsTopic публикуем ESTOQUE_BAIXO
type KafkaConfig struct {
	Brokers     []string `mapstructure:"brokers"`
	Topic       string   `mapstructure:"topic"`
	GroupID     string   `mapstructure:"group_id"`
	AlertsTopic string   `mapstructure:"alerts_topic"`
	MinBytes    int      `mapstructure:"min_bytes"`
	MaxBytes    int      `mapstructure:"max_bytes"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// SchedulerConfig - расписание в формате robfig/cron (поддерживается @every)
type SchedulerConfig struct {
	LowStockScan string `mapstructure:"low_stock_scan"`
}

type AlertConfig struct {
	DedupTTL time.Duration `mapstructure:"dedup_ttl"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`
	LogstashAddr string `mapstructure:"logstash_addr"`
}

// Load читает конфигурацию из окружения (KAFKA_GROUP_ID, SCHEDULER_LOW_STOCK_SCAN, ...)
// и необязательного config.yaml
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Kafka.Brokers = splitList(v.GetString("kafka.brokers"))

	if len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if cfg.Alert.DedupTTL <= 0 {
		return nil, fmt.Errorf("ALERT_DEDUP_TTL must be positive")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8082")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "fichas_pro")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "fichas_pro_events")
	v.SetDefault("kafka.group_id", "estoque-worker")
	v.SetDefault("kafka.alerts_topic", "estoque_alertas")
	v.SetDefault("kafka.min_bytes", 1)
	v.SetDefault("kafka.max_bytes", 10_000_000)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "fichas_pro")

	v.SetDefault("scheduler.low_stock_scan", "@every 30m")
	v.SetDefault("alert.dedup_ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.logstash_addr", "")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}
