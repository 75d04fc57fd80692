package app

import (
	"context"
	"sync"

	"social_network_service/internal/friendship/domain"
	"social_network_service/internal/friendship/repository"
	"social_network_service/pkg/logger"

	"go.uber.org/zap"
)

// DefaultMemoSize 單一 request 最多暫存的 profile 數
const DefaultMemoSize = 128

type memoKey struct{}

// profileMemo request 範圍的暫存, 不跨 request 共用
type profileMemo struct {
	mu    sync.Mutex
	limit int
	items map[string]domain.UserProfile
}

// WithProfileMemo 在 ctx 上掛一個新的暫存
func WithProfileMemo(ctx context.Context, limit int) context.Context {
	if limit <= 0 {
		limit = DefaultMemoSize
	}
	return context.WithValue(ctx, memoKey{}, &profileMemo{limit: limit, items: make(map[string]domain.UserProfile)})
}

func memoFrom(ctx context.Context) *profileMemo {
	m, _ := ctx.Value(memoKey{}).(*profileMemo)
	return m
}

func (m *profileMemo) get(id string) (domain.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	return p, ok
}

func (m *profileMemo) put(id string, p domain.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) < m.limit {
		m.items[id] = p
	}
}

// ProfileResolver 將 Ref 解析成 profile
type ProfileResolver struct {
	users repository.UserClient
}

// NewProfileResolver create resolver
func NewProfileResolver(users repository.UserClient) *ProfileResolver {
	return &ProfileResolver{users: users}
}

// Resolve ctx 上有暫存時先查暫存
func (r *ProfileResolver) Resolve(ctx context.Context, ref domain.Ref[domain.UserProfile]) domain.Ref[domain.UserProfile] {
	if ref.IsResolved() || ref.ID() == "" {
		return ref
	}

	memo := memoFrom(ctx)
	if memo != nil {
		if p, ok := memo.get(ref.ID()); ok {
			return domain.Resolved(ref.ID(), p)
		}
	}

	p, err := r.users.GetProfile(ctx, ref.ID())
	if err != nil {
		// 查不到就保留 id
		logger.Log.Debug("resolve profile", zap.String("userID", ref.ID()), zap.Error(err))
		return ref
	}
	if memo != nil {
		memo.put(ref.ID(), p)
	}
	return domain.Resolved(ref.ID(), p)
}

// HydratePending 解析每筆邀請的 requester
func (r *ProfileResolver) HydratePending(ctx context.Context, list []domain.PendingRequest) []domain.PendingRequest {
	if memoFrom(ctx) == nil {
		ctx = WithProfileMemo(ctx, DefaultMemoSize)
	}
	for i := range list {
		list[i].Requester = r.Resolve(ctx, list[i].Requester)
	}
	return list
}
