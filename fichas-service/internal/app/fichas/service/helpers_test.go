package service

import (
	"context"
	"sync"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/stretchr/testify/mock"
)

// recordingPublisher запоминает отправленные сообщения
type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	messages [][]byte
	err      error
}

func (p *recordingPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, value)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ficha *entity.FichaTecnica) ([]byte, error) {
	args := m.Called(ficha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func strPtr(s string) *string { return &s }
