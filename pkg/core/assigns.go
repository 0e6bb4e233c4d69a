package core

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
)

// Assigns is a concurrency-safe value bag that remembers which keys changed
// since the last render push.
type Assigns struct {
	data    map[string]any
	tracker *ChangeTracker
	mu      sync.RWMutex
}

// NewAssigns returns an empty Assigns.
func NewAssigns() *Assigns {
	return &Assigns{
		data:    make(map[string]any),
		tracker: NewChangeTracker(),
	}
}

// Get returns the value stored under key.
func (a *Assigns) Get(key string) any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data[key]
}

// Set stores value and marks key changed when its content differs.
func (a *Assigns) Set(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = value
	a.tracker.Track(key, value)
}

// Data returns a shallow copy of the stored values.
func (a *Assigns) Data() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]any, len(a.data))
	for k, v := range a.data {
		out[k] = v
	}
	return out
}

// Tracker exposes the change tracker.
func (a *Assigns) Tracker() *ChangeTracker {
	return a.tracker
}

// ChangeTracker records content hashes per key and reports keys whose
// content changed since the last Drain.
type ChangeTracker struct {
	hashes  map[string]uint64
	changed map[string]struct{}
	version uint64
	mu      sync.Mutex
}

// NewChangeTracker returns an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		hashes:  make(map[string]uint64),
		changed: make(map[string]struct{}),
	}
}

// Track records value for key.
func (ct *ChangeTracker) Track(key string, value any) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	h := hashValue(value)
	if prev, ok := ct.hashes[key]; ok && prev == h {
		return
	}
	ct.hashes[key] = h
	ct.changed[key] = struct{}{}
}

// HasChanges reports whether any key changed since the last Drain.
func (ct *ChangeTracker) HasChanges() bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.changed) > 0
}

// Drain returns the changed keys sorted and starts a new version.
func (ct *ChangeTracker) Drain() []string {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	keys := make([]string, 0, len(ct.changed))
	for k := range ct.changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ct.changed = make(map[string]struct{})
	ct.version++
	return keys
}

// Version counts completed Drains.
func (ct *ChangeTracker) Version() uint64 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.version
}

func hashValue(v any) uint64 {
	h := fnv.New64a()
	switch val := v.(type) {
	case nil:
		h.Write([]byte{0})
	case string:
		h.Write([]byte(val))
	case bool, int, int64, float64:
		fmt.Fprint(h, val)
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte(k))
			h.Write([]byte{0})
			h.Write([]byte(val[k]))
			h.Write([]byte{0})
		}
	default:
		// encoding/json sorts map keys, so equal content hashes equally.
		data, _ := json.Marshal(val)
		h.Write(data)
	}
	return h.Sum64()
}
