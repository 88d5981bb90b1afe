package cache

import (
	"sync"
	"time"
)

// Cleaner is the sweep hook a cache exposes to the manager.
type Cleaner interface {
	CleanExpired() int
}

// Manager runs one sweep loop for every registered cache, so each cache
// does not need a goroutine of its own. Register before StartCleanup.
type Manager struct {
	caches   []Cleaner
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup begins sweeping every registered cache on the interval.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go m.sweep(interval)
}

func (m *Manager) sweep(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-m.stop:
			return
		}
	}
}

// Stop ends the sweep loop and waits for it to exit. Safe to call more
// than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		if m.started {
			<-m.done
		}
	})
}
