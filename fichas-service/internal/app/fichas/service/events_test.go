package service

import (
	"context"
	"testing"
	"time"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledPublisher ждет, пока не истечет контекст, как writer при недоступном брокере
type stalledPublisher struct {
	deadline time.Time
	hadLimit bool
}

func (p *stalledPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	p.deadline, p.hadLimit = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (p *stalledPublisher) Close() error { return nil }

func TestEventPublisher_DoesNotHoldRequestOnStalledBroker(t *testing.T) {
	stalled := &stalledPublisher{}
	events := eventPublisher{publisher: stalled, timeout: 50 * time.Millisecond}

	start := time.Now()
	events.insumo(context.Background(), entity.EventInsumoUpdated, &entity.Insumo{ID: uuid.New(), UserID: uuid.New()})

	require.True(t, stalled.hadLimit)
	assert.Less(t, time.Since(start), time.Second)
}

func TestEventPublisher_DefaultTimeout(t *testing.T) {
	stalled := &stalledPublisher{}
	events := eventPublisher{publisher: stalled}

	// отмененный контекст, чтобы тест не ждал publishTimeout
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	events.ficha(ctx, entity.EventFichaDeleted, &entity.FichaTecnica{ID: uuid.New()})

	require.True(t, stalled.hadLimit)
	assert.WithinDuration(t, time.Now().Add(publishTimeout), stalled.deadline, 500*time.Millisecond)
}
