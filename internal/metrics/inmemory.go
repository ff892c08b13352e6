package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated            uint64
	UsersUpdated            uint64
	UsersDeleted            uint64
	LoginsSucceeded         uint64
	LoginsFailed            uint64
	URLsShortened           uint64
	Redirects               uint64
	RedirectMisses          uint64
	RedirectDurationCount   uint64
	RedirectDurationTotalNs int64
}

// InMemoryRecorder keeps counters in process memory.
type InMemoryRecorder struct {
	usersCreated            atomic.Uint64
	usersUpdated            atomic.Uint64
	usersDeleted            atomic.Uint64
	loginsSucceeded         atomic.Uint64
	loginsFailed            atomic.Uint64
	urlsShortened           atomic.Uint64
	redirects               atomic.Uint64
	redirectMisses          atomic.Uint64
	redirectDurationCount   atomic.Uint64
	redirectDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:            m.usersCreated.Load(),
		UsersUpdated:            m.usersUpdated.Load(),
		UsersDeleted:            m.usersDeleted.Load(),
		LoginsSucceeded:         m.loginsSucceeded.Load(),
		LoginsFailed:            m.loginsFailed.Load(),
		URLsShortened:           m.urlsShortened.Load(),
		Redirects:               m.redirects.Load(),
		RedirectMisses:          m.redirectMisses.Load(),
		RedirectDurationCount:   m.redirectDurationCount.Load(),
		RedirectDurationTotalNs: m.redirectDurationTotalNs.Load(),
	}
}

func (m *InMemoryRecorder) IncUserCreated() { m.usersCreated.Add(1) }
func (m *InMemoryRecorder) IncUserUpdated() { m.usersUpdated.Add(1) }
func (m *InMemoryRecorder) IncUserDeleted() { m.usersDeleted.Add(1) }

// IncLogin counts a login attempt by outcome.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		m.loginsSucceeded.Add(1)
		return
	}
	m.loginsFailed.Add(1)
}

func (m *InMemoryRecorder) IncURLShortened() { m.urlsShortened.Add(1) }
func (m *InMemoryRecorder) IncRedirect()     { m.redirects.Add(1) }
func (m *InMemoryRecorder) IncRedirectMiss() { m.redirectMisses.Add(1) }

// ObserveRedirectDuration records redirect duration.
func (m *InMemoryRecorder) ObserveRedirectDuration(duration time.Duration) {
	m.redirectDurationCount.Add(1)
	m.redirectDurationTotalNs.Add(duration.Nanoseconds())
}

var (
	_ Recorder    = (*InMemoryRecorder)(nil)
	_ Snapshotter = (*InMemoryRecorder)(nil)
	_ Recorder    = (*NoopRecorder)(nil)
)
