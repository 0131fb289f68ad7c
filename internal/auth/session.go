package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound 表示会话不存在或已过期
var ErrSessionNotFound = errors.New("会话不存在或已过期")

// SessionStore 保存 会话ID -> 用户ID 的映射
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore 是进程内的会话存储，服务重启会丢失。多实例部署时应使用 RedisStore
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemoryStore 创建一个空的内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Create 新建会话，并顺带清理已过期的会话
func (s *MemoryStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[id] = memorySession{userID: userID, expiresAt: now.Add(ttl)}
	for sid, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, sid)
		}
	}
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, found := s.sessions[sessionID]
	if !found || s.now().After(sess.expiresAt) {
		return 0, ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

