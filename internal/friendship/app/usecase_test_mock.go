package app

import (
	"context"
	"sync"

	"social_network_service/internal/friendship/domain"
	"social_network_service/pkg/notify"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockFriendshipRepository Mock FriendshipRepository
type MockFriendshipRepository struct {
	mock.Mock
}

// Create mock create
func (m *MockFriendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

// FindPair mock find pair
func (m *MockFriendshipRepository) FindPair(ctx context.Context, requesterID, recipientID string) (*domain.Friendship, error) {
	args := m.Called(ctx, requesterID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Friendship), args.Error(1)
}

// Transition mock transition
func (m *MockFriendshipRepository) Transition(ctx context.Context, requesterID, recipientID string, from, to domain.Status) (*domain.Friendship, error) {
	args := m.Called(ctx, requesterID, recipientID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Friendship), args.Error(1)
}

// DeleteAccepted mock delete
func (m *MockFriendshipRepository) DeleteAccepted(ctx context.Context, userA, userB string) error {
	args := m.Called(ctx, userA, userB)
	return args.Error(0)
}

// FindAccepted mock find accepted
func (m *MockFriendshipRepository) FindAccepted(ctx context.Context, userID string) ([]domain.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friendship), args.Error(1)
}

// FindPending mock find pending
func (m *MockFriendshipRepository) FindPending(ctx context.Context, recipientID string) ([]domain.Friendship, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friendship), args.Error(1)
}

// MockUserClient Mock UserClient
type MockUserClient struct {
	mock.Mock
}

// GetProfile mock get profile
func (m *MockUserClient) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

// MockPostNotifier Mock PostNotifier
type MockPostNotifier struct {
	mock.Mock
}

// NotifyFriendPost mock notify
func (m *MockPostNotifier) NotifyFriendPost(ctx context.Context, ev domain.PostEvent) (int, error) {
	args := m.Called(ctx, ev)
	return args.Int(0), args.Error(1)
}

// published 一筆送出的通知
type published struct {
	userID string
	env    notify.Envelope
}

// recordPublisher 記錄 Publish 呼叫, err 不為 nil 時回傳錯誤
type recordPublisher struct {
	mu   sync.Mutex
	err  error
	sent []published
}

func (p *recordPublisher) Publish(_ context.Context, userID string, env notify.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{userID: userID, env: env})
	return nil
}

func (p *recordPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.sent...)
}

// fakeReader 依序回傳 msgs, 用完後等 ctx 結束
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}
