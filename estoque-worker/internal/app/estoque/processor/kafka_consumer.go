package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fichaspro/estoque-worker/internal/app/estoque/entity"
	"fichaspro/estoque-worker/internal/app/estoque/service"
	"fichaspro/pkg/logger"
	"fichaspro/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "estoque-worker"

var (
	// errMalformed - сообщение не разбирается, повтор не поможет
	errMalformed = errors.New("malformed message")
	// errStopped - consumer остановлен до успешной обработки, offset не коммитится
	errStopped = errors.New("consumer stopped")
)

// KafkaConsumer читает fichas_pro_events и раздает события по типу
type KafkaConsumer struct {
	reader     *kafka.Reader
	topic      string
	groupID    string
	revisaoSvc service.RevisaoServiceInterface
	estoqueSvc service.EstoqueServiceInterface
	stopChan   chan struct{}
	doneChan   chan struct{}

	retryBackoffMin time.Duration
	retryBackoffMax time.Duration
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	revisaoSvc service.RevisaoServiceInterface,
	estoqueSvc service.EstoqueServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		StartOffset: kafka.FirstOffset, // новая группа должна увидеть всю историю ревизий
		// offset фиксируется явно через CommitMessages, здесь только период отправки
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:     reader,
		topic:      topic,
		groupID:    groupID,
		revisaoSvc: revisaoSvc,
		estoqueSvc: estoqueSvc,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),

		retryBackoffMin: 500 * time.Millisecond,
		retryBackoffMax: 30 * time.Second,
	}
}

func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().
		Str("topic", c.topic).
		Str("group", c.groupID).
		Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
		}

		readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		message, err := c.reader.FetchMessage(readCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			metrics.RecordKafkaError(serviceName, c.topic, "fetch")
			logger.Error().Err(err).Msg("Error fetching message")
			time.Sleep(time.Second)
			continue
		}

		if err := c.handleWithRetry(ctx, message); err != nil {
			logger.Warn().
				Err(err).
				Int64("offset", message.Offset).
				Msg("Message left uncommitted, it will be redelivered")
			return
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			metrics.RecordKafkaError(serviceName, c.topic, "commit")
			logger.Error().Err(err).Msg("Error committing message")
		}
	}
}

// handleWithRetry обрабатывает одно сообщение до успеха, до признания его битым
// или до остановки consumer. Следующее сообщение не читается, пока это не
// обработано, поэтому коммит не может перескочить через неудачный offset.
func (c *KafkaConsumer) handleWithRetry(ctx context.Context, message kafka.Message) error {
	log := logger.WithFields(map[string]interface{}{
		"topic":     message.Topic,
		"partition": message.Partition,
		"offset":    message.Offset,
	})

	backoff := c.retryBackoffMin
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := c.processMessage(ctx, message)
		switch {
		case err == nil:
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))
			return nil
		case errors.Is(err, errMalformed) || errors.Is(err, service.ErrInvalidEvent):
			// коммитим, иначе сообщение заблокирует партицию
			metrics.RecordKafkaError(serviceName, c.topic, "malformed")
			log.Warn().Err(err).Msg("Skipping malformed message")
			return nil
		}

		metrics.RecordKafkaError(serviceName, c.topic, "process")
		log.Error().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Error processing message, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopChan:
			return errStopped
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > c.retryBackoffMax {
			backoff = c.retryBackoffMax
		}
	}
}

// processMessage разбирает событие и передает его сервису по event_type.
// Незнакомые типы пропускаются: топик общий для всех событий fichas-service.
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var envelope entity.EventEnvelope
	if err := json.Unmarshal(message.Value, &envelope); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	logger.Debug().
		Str("event_type", envelope.EventType).
		Str("key", string(message.Key)).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received event")

	switch envelope.EventType {
	case entity.EventFichaCreated, entity.EventFichaUpdated, entity.EventFichaDeleted:
		var event entity.FichaEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if err := c.revisaoSvc.HandleFichaEvent(ctx, &event); err != nil {
			return fmt.Errorf("failed to process ficha event: %w", err)
		}

	case entity.EventInsumoCreated, entity.EventInsumoUpdated, entity.EventInsumoDeleted:
		var event entity.InsumoEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if err := c.estoqueSvc.HandleInsumoEvent(ctx, &event); err != nil {
			return fmt.Errorf("failed to process insumo event: %w", err)
		}

	default:
		logger.Debug().Str("event_type", envelope.EventType).Msg("Ignoring event type")
	}

	return nil
}

func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
