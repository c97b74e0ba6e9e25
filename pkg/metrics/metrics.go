package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal - счётчик HTTP-запросов
// Labels: service, method, route, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "route", "status"},
)

// HttpRequestDuration - гистограмма времени ответа, от 1ms до 10s
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "route"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// PostgreSQL
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// DbTransactions - транзакции по исходу (commit, rollback)
var DbTransactions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_transactions_total",
		Help: "Total number of database transactions by outcome",
	},
	[]string{"service", "operation", "outcome"},
)

// =============================================================================
// Redis
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - operation: produce, fetch, process, commit
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// MongoDB
// =============================================================================

var MongoOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "mongo_operation_duration_seconds",
		Help:    "Duration of MongoDB operations in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "operation", "collection"},
)

var MongoErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mongo_errors_total",
		Help: "Total number of MongoDB errors",
	},
	[]string{"service", "operation", "collection"},
)

// =============================================================================
// Бизнес-метрики Fichas Pro
// =============================================================================

// --- auth-service ---

var AuthRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of user registrations",
	},
)

// AuthLogins - status: success, failed
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"},
)

var AuthSessionsRevoked = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_sessions_revoked_total",
		Help: "Total number of sessions revoked by logout",
	},
)

// --- fichas-service ---

// FichasWritten - action: created, updated, deleted
var FichasWritten = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fichas_written_total",
		Help: "Total number of recipe sheet writes",
	},
	[]string{"action"},
)

var FichaVersionConflicts = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "fichas_version_conflicts_total",
		Help: "Total number of updates rejected because of a stale versao",
	},
)

var FichaIngredientLines = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "fichas_ingredient_lines",
		Help:    "Number of ingredient lines per written recipe sheet",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	},
)

var FichaPDFsRendered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fichas_pdf_rendered_total",
		Help: "Total number of printable exports",
	},
	[]string{"status"},
)

// InsumosWritten - action: created, updated, deleted
var InsumosWritten = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "insumos_written_total",
		Help: "Total number of ingredient writes",
	},
	[]string{"action"},
)

// --- estoque-worker ---

// LowStockAlerts - outcome: emitted, suppressed, failed
var LowStockAlerts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "estoque_low_stock_alerts_total",
		Help: "Total number of low-stock alerts by outcome",
	},
	[]string{"source", "outcome"},
)

var LowStockItems = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "estoque_low_stock_items",
		Help: "Number of low-stock ingredients found by the last scan",
	},
)

// RevisionsStored - event: FICHA_CREATED, FICHA_UPDATED, FICHA_DELETED
var RevisionsStored = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fichas_revisions_stored_total",
		Help: "Total number of recipe sheet revisions stored",
	},
	[]string{"event"},
)

var ScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "estoque_scan_duration_seconds",
		Help:    "Duration of the scheduled low-stock scan",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	},
)
