package router

import (
	"context"
	"sync"
	"time"

	"github.com/gabrielmiguelok/healthpredictor/pkg/core"
	"github.com/gabrielmiguelok/healthpredictor/pkg/transport"
)

// LiveViewSession binds one WebSocket connection to its component.
type LiveViewSession struct {
	// SocketID identifies the connection; it is also the session key.
	SocketID string

	// VisitorID is the hp_session cookie value shared with the HTTP fallback.
	VisitorID string

	Component core.Component
	Socket    *core.Socket
	Transport *transport.WebSocket
	Params    core.Params
	Session   core.Session

	CreatedAt time.Time

	lastActivity time.Time
	mounted      bool
	cancel       context.CancelFunc
	terminated   sync.Once

	mu sync.RWMutex
}

// Touch records activity now.
func (s *LiveViewSession) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// LastActivity returns the time of the last received message.
func (s *LiveViewSession) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// Mounted reports whether the component has been mounted.
func (s *LiveViewSession) Mounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

func (s *LiveViewSession) setMounted() {
	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()
}

// terminate stops the message loop, runs the component's Terminate hook
// and closes the socket. Only the first call has an effect.
func (s *LiveViewSession) terminate(ctx context.Context, reason core.TerminateReason) error {
	var err error
	s.terminated.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.Mounted() {
			err = s.Component.Terminate(ctx, reason)
		}
		if s.Socket != nil {
			s.Socket.Close()
		}
	})
	return err
}

// SessionManagerConfig bounds the live sessions a manager keeps.
type SessionManagerConfig struct {
	// MaxSessions caps concurrent sessions; 0 means unlimited.
	MaxSessions int

	// TTL is how long a session may stay idle before Cleanup drops it.
	TTL time.Duration
}

// DefaultSessionManagerConfig mirrors core.DefaultSessionConfig.
func DefaultSessionManagerConfig() SessionManagerConfig {
	sc := core.DefaultSessionConfig()
	return SessionManagerConfig{
		MaxSessions: sc.MaxSessions,
		TTL:         sc.TTL,
	}
}

// LiveViewSessionManager tracks active live sessions by socket ID.
type LiveViewSessionManager struct {
	sessions map[string]*LiveViewSession
	cfg      SessionManagerConfig
	mu       sync.RWMutex
}

// NewLiveViewSessionManager creates a manager. Zero config fields take
// their defaults.
func NewLiveViewSessionManager(cfg SessionManagerConfig) *LiveViewSessionManager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionManagerConfig().TTL
	}
	return &LiveViewSessionManager{
		sessions: make(map[string]*LiveViewSession),
		cfg:      cfg,
	}
}

// Add registers s. When the manager is full the idlest session is evicted
// and returned so the caller can terminate it.
func (m *LiveViewSessionManager) Add(s *LiveViewSession) (evicted *LiveViewSession) {
	now := time.Now()
	s.mu.Lock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.lastActivity = now
	s.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		evicted = m.evictIdlestLocked()
	}
	m.sessions[s.SocketID] = s
	return evicted
}

// Get returns the session for socketID.
func (m *LiveViewSessionManager) Get(socketID string) (*LiveViewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[socketID]
	return s, ok
}

// Remove forgets the session for socketID.
func (m *LiveViewSessionManager) Remove(socketID string) {
	m.mu.Lock()
	delete(m.sessions, socketID)
	m.mu.Unlock()
}

// Count returns the number of tracked sessions.
func (m *LiveViewSessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// All returns a snapshot of the tracked sessions.
func (m *LiveViewSessionManager) All() []*LiveViewSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LiveViewSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Expired removes and returns sessions idle longer than the TTL.
func (m *LiveViewSessionManager) Expired(now time.Time) []*LiveViewSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*LiveViewSession
	for id, s := range m.sessions {
		if now.Sub(s.LastActivity()) > m.cfg.TTL {
			delete(m.sessions, id)
			out = append(out, s)
		}
	}
	return out
}

func (m *LiveViewSessionManager) evictIdlestLocked() *LiveViewSession {
	var idlest *LiveViewSession
	for _, s := range m.sessions {
		if idlest == nil || s.LastActivity().Before(idlest.LastActivity()) {
			idlest = s
		}
	}
	if idlest != nil {
		delete(m.sessions, idlest.SocketID)
	}
	return idlest
}

// StartCleanup terminates expired sessions every interval until ctx is done.
func (m *LiveViewSessionManager) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				for _, s := range m.Expired(now) {
					s.terminate(context.Background(), core.TerminateTimeout)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
