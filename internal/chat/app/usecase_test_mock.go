package app

import (
	"context"
	"io"
	"sync"
	"time"

	"social_network_service/internal/chat/domain"
	"social_network_service/pkg/notify"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert mock insert
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindConversation mock find conversation
func (m *MockMessageRepository) FindConversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

// FindByID mock find by id
func (m *MockMessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

// UpdateContent mock update content
func (m *MockMessageRepository) UpdateContent(ctx context.Context, id, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

// Delete mock delete
func (m *MockMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SetReaction mock set reaction
func (m *MockMessageRepository) SetReaction(ctx context.Context, id string, reaction domain.Reaction) error {
	args := m.Called(ctx, id, reaction)
	return args.Error(0)
}

// pushed 一次 Push 呼叫
type pushed struct {
	UserID string
	Env    notify.Envelope
	Except *Session
}

// recordPusher 記錄 Push 呼叫
type recordPusher struct {
	mu    sync.Mutex
	calls []pushed
}

func (p *recordPusher) Push(userID string, env notify.Envelope) {
	p.PushExcept(userID, env, nil)
}

func (p *recordPusher) PushExcept(userID string, env notify.Envelope, except *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushed{UserID: userID, Env: env, Except: except})
}

func (p *recordPusher) Calls() []pushed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushed(nil), p.calls...)
}

// MockObjectStore Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// Upload mock upload
func (m *MockObjectStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, r, size, contentType)
	return args.Error(0)
}

// PresignGetURL mock presign
func (m *MockObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}
