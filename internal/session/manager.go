package session

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/angelmondragon/superstore-backend/internal/snapshot"
)

// DefaultCacheSize bounds how many idle sessions stay in memory.
const DefaultCacheSize = 10000

// Manager hands out one State per session id. Sessions in use are pinned until
// every holder calls Release; idle sessions sit in an LRU and are reloaded from
// the snapshot store once evicted.
type Manager struct {
	mu       sync.Mutex
	store    *snapshot.Store
	defaults Defaults
	active   map[string]*lease
	idle     *lru.Cache[string, *State]
}

type lease struct {
	state  *State
	refs   int
	forget bool
}

// NewManager builds a manager keeping at most cacheSize idle sessions. A
// non-positive size selects DefaultCacheSize.
func NewManager(store *snapshot.Store, defaults Defaults, cacheSize int) (*Manager, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	idle, err := lru.New[string, *State](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &Manager{
		store:    store,
		defaults: defaults,
		active:   make(map[string]*lease),
		idle:     idle,
	}, nil
}

// Get pins the session, opening it from the snapshot store when it is not cached.
// Each successful Get must be paired with Release.
func (m *Manager) Get(ctx context.Context, sessionID string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.active[sessionID]; ok {
		l.refs++
		return l.state, nil
	}
	s, ok := m.idle.Peek(sessionID)
	if ok {
		m.idle.Remove(sessionID)
	} else {
		var err error
		if s, err = Open(ctx, m.store, sessionID, m.defaults); err != nil {
			return nil, err
		}
	}
	m.active[sessionID] = &lease{state: s, refs: 1}
	return s, nil
}

// Release unpins a session obtained from Get. The last release moves it to the
// idle cache, which may evict the least recently used idle session.
func (m *Manager) Release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.active[sessionID]
	if !ok {
		return
	}
	l.refs--
	if l.refs > 0 {
		return
	}
	delete(m.active, sessionID)
	if !l.forget {
		m.idle.Add(sessionID, l.state)
	}
}

// Forget drops a cached session; its persisted keys remain. A pinned session
// is dropped once its last holder releases it.
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.active[sessionID]; ok {
		l.forget = true
		return
	}
	m.idle.Remove(sessionID)
}

// Len reports how many sessions are held, pinned or idle.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active) + m.idle.Len()
}
