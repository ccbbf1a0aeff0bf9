package service

import (
	"context"
	"sync"

	"manero/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t testingT) *MockQRCodeService {
	m := &MockQRCodeService{}
	register(t, m)

	return m
}

func (m *MockQRCodeService) GenerateProductQR(articleNumber int64) ([]byte, error) {
	ret := m.MethodCalled("GenerateProductQR", articleNumber)

	return value[[]byte](ret, 0), ret.Error(1)
}

func (m *MockQRCodeService) ParseProductQR(qrData string) (int64, error) {
	ret := m.MethodCalled("ParseProductQR", qrData)

	return value[int64](ret, 0), ret.Error(1)
}

// MockImageStore mocks service.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func NewMockImageStore(t testingT) *MockImageStore {
	m := &MockImageStore{}
	register(t, m)

	return m
}

func (m *MockImageStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	ret := m.MethodCalled("Put", ctx, key, contentType, data)

	return ret.String(0), ret.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	return m.MethodCalled("Delete", ctx, key).Error(0)
}

// RecordingPublisher is an EventPublisher that keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []*entity.Event
	Err    error // returned from Publish when set
}

func (p *RecordingPublisher) Publish(_ context.Context, event *entity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *RecordingPublisher) Close() error {
	return nil
}

// Types returns the types of the published events in order.
func (p *RecordingPublisher) Types() []entity.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]entity.EventType, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}

	return types
}
