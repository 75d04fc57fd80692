package app

import (
	"context"
	"time"

	"social_network_service/internal/user/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo Mock UserRepository
type MockUserRepo struct {
	mock.Mock
}

// EnsureSchema mock
func (m *MockUserRepo) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CreateUser mock
func (m *MockUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindByUser mock
func (m *MockUserRepo) FindByUser(ctx context.Context, q *domain.UserQuery) (*domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateProfile mock
func (m *MockUserRepo) UpdateProfile(ctx context.Context, id string, bio, avatar *string) (*domain.User, error) {
	args := m.Called(ctx, id, bio, avatar)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchByUsername mock
func (m *MockUserRepo) SearchByUsername(ctx context.Context, keyword string, limit int) ([]domain.User, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderRepo Mock OrderRepository
type MockOrderRepo struct {
	mock.Mock
}

// AutoMigrate mock
func (m *MockOrderRepo) AutoMigrate() error {
	return m.Called().Error(0)
}

// Create mock
func (m *MockOrderRepo) Create(ctx context.Context, order *domain.RegistrationOrder) error {
	return m.Called(ctx, order).Error(0)
}

// GetByID mock
func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.RegistrationOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

// List mock
func (m *MockOrderRepo) List(ctx context.Context) ([]domain.RegistrationOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.RegistrationOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByEmail mock
func (m *MockOrderRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Delete mock
func (m *MockOrderRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockRedisRepo 針對 UserSession 的 Mock
type MockRedisRepo struct {
	mock.Mock
}

// Set 模擬 Redis Set 操作
func (m *MockRedisRepo) Set(ctx context.Context, key string, value domain.UserSession, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get 模擬 Redis Get 操作
func (m *MockRedisRepo) Get(ctx context.Context, key string) (domain.UserSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(domain.UserSession), args.Error(1)
	}
	return domain.UserSession{}, args.Error(1)
}

// Del 模擬 Redis Del 操作
func (m *MockRedisRepo) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ExtendTTL 模擬 Redis ExtendTTL 操作
func (m *MockRedisRepo) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

// GetTTL 模擬 Redis GetTTL 操作
func (m *MockRedisRepo) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}
