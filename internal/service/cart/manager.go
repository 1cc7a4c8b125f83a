package cart

import (
	"context"
	"sync"

	"restaurant-ordering/internal/logging"
	cartrepo "restaurant-ordering/internal/repository/cart"

	"go.uber.org/zap"
)

// Manager opens carts by session and runs one operation per session at a
// time within the process.
type Manager struct {
	snapshots cartrepo.SnapshotStore
	logger    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(snapshots cartrepo.SnapshotStore, logger *zap.Logger) *Manager {
	return &Manager{
		snapshots: snapshots,
		logger:    logging.OrNop(logger),
		locks:     make(map[string]*sessionLock),
	}
}

// With loads the cart for session and calls fn with it while holding the
// session lock.
func (m *Manager) With(ctx context.Context, session string, fn func(*Store) error) error {
	key := Key(session)
	unlock := m.lock(key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(Load(ctx, m.snapshots, key, m.logger))
}

func (m *Manager) lock(key string) func() {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sessionLock{}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
