package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/journeycircle/api/internal/model"
	ws "github.com/journeycircle/api/internal/websocket"
)

const sessionTTL = 7 * 24 * time.Hour

// Store holds the canonical wizard state per session. Every update rewrites
// the whole serialized blob (last write wins, no incremental diffing) and
// pushes a state_changed event so step UIs can react without polling.
//
// Redis is the snapshot backend; without Redis an in-process map is used
// (tests, development).
type Store struct {
	redis *redis.Client
	hub   *ws.Hub

	mu       sync.Mutex
	sessions map[string][]byte // memory fallback
}

// NewStore creates a session store. redisClient and hub may be nil.
func NewStore(redisClient *redis.Client, hub *ws.Hub) *Store {
	return &Store{
		redis:    redisClient,
		hub:      hub,
		sessions: make(map[string][]byte),
	}
}

// Get loads a session snapshot, creating an empty one positioned at step 1 if
// none exists. The returned value is a private copy; mutate via Update.
func (s *Store) Get(ctx context.Context, sessionID string) (*model.WorkflowSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, sessionID)
}

// Update loads the session, applies mutate, and rewrites the whole blob.
// The mutation runs entirely under the store lock so a partially applied
// update is never observable. field names the logical field that changed
// and is pushed to subscribers; pass "" to skip notification.
func (s *Store) Update(ctx context.Context, sessionID, field string, mutate func(*model.WorkflowSession) error) (*model.WorkflowSession, error) {
	s.mu.Lock()
	session, err := s.load(ctx, sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if err := mutate(session); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	session.UpdatedAt = time.Now()
	if err := s.save(ctx, session); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	if s.hub != nil && field != "" {
		s.hub.BroadcastStateChanged(sessionID, field)
	}
	return session, nil
}

// Reset drops a session entirely (wizard restart)
func (s *Store) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.redis == nil {
		delete(s.sessions, sessionID)
		return nil
	}
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *Store) load(ctx context.Context, sessionID string) (*model.WorkflowSession, error) {
	var data []byte
	if s.redis == nil {
		data = s.sessions[sessionID]
	} else {
		b, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		data = b
	}

	if len(data) == 0 {
		return model.NewWorkflowSession(sessionID), nil
	}

	var session model.WorkflowSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *Store) save(ctx context.Context, session *model.WorkflowSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if s.redis == nil {
		s.sessions[session.ID] = data
		return nil
	}
	return s.redis.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
