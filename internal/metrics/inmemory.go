package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	MemosCreated    uint64 `json:"memos_created"`
	MemosUpdated    uint64 `json:"memos_updated"`
	MemosDeleted    uint64 `json:"memos_deleted"`
	UsersRegistered uint64 `json:"users_registered"`
	UsersUpdated    uint64 `json:"users_updated"`
	UsersDeleted    uint64 `json:"users_deleted"`
	AuthCacheHits   uint64 `json:"auth_cache_hits"`
	AuthCacheMisses uint64 `json:"auth_cache_misses"`
}

// InMemoryRecorder stores counters in memory, exported via Snapshot.
type InMemoryRecorder struct {
	memosCreated    uint64
	memosUpdated    uint64
	memosDeleted    uint64
	usersRegistered uint64
	usersUpdated    uint64
	usersDeleted    uint64
	authCacheHits   uint64
	authCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		MemosCreated:    atomic.LoadUint64(&m.memosCreated),
		MemosUpdated:    atomic.LoadUint64(&m.memosUpdated),
		MemosDeleted:    atomic.LoadUint64(&m.memosDeleted),
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		UsersUpdated:    atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:    atomic.LoadUint64(&m.usersDeleted),
		AuthCacheHits:   atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses: atomic.LoadUint64(&m.authCacheMisses),
	}
}

// IncMemoCreated increments the memo creation counter.
func (m *InMemoryRecorder) IncMemoCreated() {
	atomic.AddUint64(&m.memosCreated, 1)
}

// IncMemoUpdated increments the memo update counter.
func (m *InMemoryRecorder) IncMemoUpdated() {
	atomic.AddUint64(&m.memosUpdated, 1)
}

// IncMemoDeleted increments the memo delete counter.
func (m *InMemoryRecorder) IncMemoDeleted() {
	atomic.AddUint64(&m.memosDeleted, 1)
}

// IncUserRegistered increments the user registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncUserUpdated increments the user update counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the user delete counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}
