package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session history does not exist")

// Persister stores the full conversation log of a session. The log is
// serialized wholesale after every mutation and read once at store startup;
// last-write-wins is acceptable (single client per session).
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]Message, error)
	Save(ctx context.Context, sessionID string, messages []Message) error
	Delete(ctx context.Context, sessionID string) error
}

func encodeHistory(messages []Message) ([]byte, error) {
	if messages == nil {
		messages = []Message{}
	}
	return json.Marshal(messages)
}

func decodeHistory(raw []byte) ([]Message, error) {
	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return messages, nil
}

// RedisPersister keeps session histories in Redis so a conversation survives
// page reloads. Keys expire with the session TTL.
type RedisPersister struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPersister(rdb *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{rdb: rdb, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := p.rdb.Get(ctx, historyKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get history %s: %w", sessionID, err)
	}
	return decodeHistory([]byte(raw))
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, messages []Message) error {
	raw, err := encodeHistory(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := p.rdb.Set(ctx, historyKey(sessionID), raw, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save history %s: %w", sessionID, err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := p.rdb.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete history %s: %w", sessionID, err)
	}
	return nil
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat_history_%s", sessionID)
}

// MemoryPersister is the in-process fallback used in tests and when no Redis
// address is configured. It serializes through the same JSON format as the
// Redis implementation so reload behavior matches.
type MemoryPersister struct {
	mu        sync.Mutex
	histories map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{histories: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(ctx context.Context, sessionID string) ([]Message, error) {
	p.mu.Lock()
	raw, ok := p.histories[sessionID]
	p.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeHistory(raw)
}

func (p *MemoryPersister) Save(ctx context.Context, sessionID string, messages []Message) error {
	raw, err := encodeHistory(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	p.mu.Lock()
	p.histories[sessionID] = raw
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersister) Delete(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	delete(p.histories, sessionID)
	p.mu.Unlock()
	return nil
}
