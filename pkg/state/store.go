// Package state keeps per-session component state between requests.
// Values live in memory for the session lifetime only.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Store errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreClosed = errors.New("store is closed")
	ErrInvalidData = errors.New("invalid data format")
)

// Store is a byte-oriented key/value store with per-key TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Keys lists live keys matching a path.Match style pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	Close() error
}

// Serializer converts T to and from bytes.
type Serializer[T any] interface {
	Serialize(value T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// TypedStore layers a Serializer over a Store.
type TypedStore[T any] struct {
	store      Store
	serializer Serializer[T]
}

// NewTypedStore wraps store with serializer.
func NewTypedStore[T any](store Store, serializer Serializer[T]) *TypedStore[T] {
	return &TypedStore[T]{store: store, serializer: serializer}
}

// Get loads and decodes the value under key.
func (ts *TypedStore[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	data, err := ts.store.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	return ts.serializer.Deserialize(data)
}

// Set encodes value and stores it under key.
func (ts *TypedStore[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := ts.serializer.Serialize(value)
	if err != nil {
		return err
	}
	return ts.store.Set(ctx, key, data, ttl)
}

// Delete removes key.
func (ts *TypedStore[T]) Delete(ctx context.Context, key string) error {
	return ts.store.Delete(ctx, key)
}

// Snapshotter is implemented by components whose state should survive
// between plain HTTP requests of the same session.
type Snapshotter interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// ComponentState is the stored envelope around a component snapshot.
type ComponentState struct {
	SessionID string    `msgpack:"sid"`
	Component string    `msgpack:"c"`
	Data      []byte    `msgpack:"d"`
	Version   uint64    `msgpack:"v"`
	UpdatedAt time.Time `msgpack:"u"`
}

// StateManager saves and restores Snapshotter components per session.
type StateManager struct {
	states    *TypedStore[ComponentState]
	keyPrefix string
	ttl       time.Duration
}

// StateManagerOption configures a StateManager.
type StateManagerOption func(*StateManager)

// WithKeyPrefix sets the key namespace.
func WithKeyPrefix(prefix string) StateManagerOption {
	return func(sm *StateManager) {
		sm.keyPrefix = prefix
	}
}

// WithTTL sets how long saved state lives after the last save.
func WithTTL(ttl time.Duration) StateManagerOption {
	return func(sm *StateManager) {
		sm.ttl = ttl
	}
}

// NewStateManager stores component state in store.
func NewStateManager(store Store, opts ...StateManagerOption) *StateManager {
	sm := &StateManager{
		states:    NewTypedStore[ComponentState](store, NewGenericSerializer[ComponentState]()),
		keyPrefix: "healthpredictor:state:",
		ttl:       30 * time.Minute,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func (sm *StateManager) key(sessionID, component string) string {
	return sm.keyPrefix + component + ":" + sessionID
}

// Save snapshots c and stores it for sessionID.
func (sm *StateManager) Save(ctx context.Context, sessionID, component string, c Snapshotter) error {
	data, err := c.SaveState()
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", component, err)
	}

	key := sm.key(sessionID, component)
	var version uint64
	if prev, err := sm.states.Get(ctx, key); err == nil {
		version = prev.Version
	}

	return sm.states.Set(ctx, key, ComponentState{
		SessionID: sessionID,
		Component: component,
		Data:      data,
		Version:   version + 1,
		UpdatedAt: time.Now(),
	}, sm.ttl)
}

// Restore loads saved state into c. It reports false when nothing was saved.
func (sm *StateManager) Restore(ctx context.Context, sessionID, component string, c Snapshotter) (bool, error) {
	st, err := sm.states.Get(ctx, sm.key(sessionID, component))
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := c.LoadState(st.Data); err != nil {
		return false, fmt.Errorf("restore %s: %w", component, err)
	}
	return true, nil
}

// Version returns the save counter for a session's component, 0 if none.
func (sm *StateManager) Version(ctx context.Context, sessionID, component string) uint64 {
	st, err := sm.states.Get(ctx, sm.key(sessionID, component))
	if err != nil {
		return 0
	}
	return st.Version
}

// Delete drops saved state.
func (sm *StateManager) Delete(ctx context.Context, sessionID, component string) error {
	return sm.states.Delete(ctx, sm.key(sessionID, component))
}
