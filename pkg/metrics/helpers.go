package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet   RedisOperation = "get"
	RedisOpSet   RedisOperation = "set"
	RedisOpSetNX RedisOperation = "setnx"
	RedisOpDel   RedisOperation = "del"
	RedisOpExist RedisOperation = "exists"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{service: service, operation: op, start: time.Now()}
}

func (t *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(t.service, string(t.operation)).Observe(time.Since(t.start).Seconds())
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordKafkaMessageConsumed(service, topic, group string, processing time.Duration) {
	KafkaMessagesConsumed.WithLabelValues(service, topic, group).Inc()
	KafkaConsumeDuration.WithLabelValues(service, topic).Observe(processing.Seconds())
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{service: service, topic: topic, start: time.Now()}
}

func (t *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(t.service, t.topic).Inc()
	KafkaProduceDuration.WithLabelValues(t.service, t.topic).Observe(time.Since(t.start).Seconds())
}

func (t *KafkaProduceTimer) Error() {
	RecordKafkaError(t.service, t.topic, "produce")
}

type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpInsert DbOperation = "insert"
	DbOpUpdate DbOperation = "update"
	DbOpDelete DbOperation = "delete"
	DbOpTx     DbOperation = "tx"
)

type DbTimer struct {
	service   string
	operation DbOperation
	table     string
	start     time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{service: service, operation: op, table: table, start: time.Now()}
}

func (t *DbTimer) ObserveDuration() {
	DbQueryDuration.WithLabelValues(t.service, string(t.operation), t.table).Observe(time.Since(t.start).Seconds())
}

// Done фиксирует длительность и, при ошибке, счётчик ошибок.
// Удобно вызывать через defer с именованным err.
func (t *DbTimer) Done(err error) {
	t.ObserveDuration()
	if err != nil {
		RecordDbError(t.service, t.operation)
	}
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

// RecordTransaction учитывает исход транзакции
func RecordTransaction(service, operation string, err error) {
	outcome := "commit"
	if err != nil {
		outcome = "rollback"
	}
	DbTransactions.WithLabelValues(service, operation, outcome).Inc()
}

type MongoTimer struct {
	service    string
	operation  string
	collection string
	start      time.Time
}

func NewMongoTimer(service, operation, collection string) *MongoTimer {
	return &MongoTimer{service: service, operation: operation, collection: collection, start: time.Now()}
}

func (t *MongoTimer) Done(err error) {
	MongoOperationDuration.WithLabelValues(t.service, t.operation, t.collection).Observe(time.Since(t.start).Seconds())
	if err != nil {
		MongoErrors.WithLabelValues(t.service, t.operation, t.collection).Inc()
	}
}
