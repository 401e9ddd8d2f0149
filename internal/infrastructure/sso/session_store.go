// Package sso 提供基于 OIDC 的单点登录实现
package sso

import (
	"context"
	"sync"
	"time"

	"foligo-api/pkg/logger"
)

// LoginSession 一次登录流程的瞬态状态
// state 是键；PKCE verifier 和 nonce 在回调时取回校验。
type LoginSession struct {
	Provider     string
	CodeVerifier string
	Nonce        string
	RedirectTo   string
	CreatedAt    time.Time
}

// LoginSessionStore 登录会话存储接口
type LoginSessionStore interface {
	// Put 存入登录会话
	Put(state string, session LoginSession)

	// Get 取出并消费登录会话（单次有效）
	Get(state string) (LoginSession, bool)

	// Sweep 清理过期会话，返回清理数量
	Sweep() int
}

// MemorySessionStore 内存 TTL 登录会话存储
type MemorySessionStore struct {
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[string]LoginSession
}

// NewMemorySessionStore 创建内存会话存储
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]LoginSession),
	}
}

// Put 存入登录会话
func (s *MemorySessionStore) Put(state string, session LoginSession) {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state] = session
}

// Get 取出并消费登录会话；过期视为不存在
func (s *MemorySessionStore) Get(state string) (LoginSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[state]
	if !ok {
		return LoginSession{}, false
	}
	delete(s.sessions, state)

	if time.Since(session.CreatedAt) > s.ttl {
		return LoginSession{}, false
	}
	return session, true
}

// Sweep 清理过期会话
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for state, session := range s.sessions {
		if time.Since(session.CreatedAt) > s.ttl {
			delete(s.sessions, state)
			removed++
		}
	}
	return removed
}

// StartSweeper 启动后台清理协程，ctx 取消时退出
func StartSweeper(ctx context.Context, store LoginSessionStore, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					logger.Debug(ctx, "swept expired login sessions", "count", n)
				}
			}
		}
	}()
}
