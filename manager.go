package pgdesk

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/pgdesk/pgdesk/shared/secret"
)

// ConnState is the advisory per-profile runtime status. Busy/idle exists so
// a UI can show progress and avoid double-submitting edits; it is not a
// concurrency primitive and nothing enforces it.
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateIdle         ConnState = "idle"
	StateBusy         ConnState = "busy"
)

// OpenFunc opens a live client for a DSN. Replaceable for tests.
type OpenFunc func(dsn string) (*gorm.DB, error)

// TestResult is the outcome of a connectivity probe.
type TestResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type managedConn struct {
	db    *gorm.DB
	state ConnState
}

// Manager resolves named profiles to live database clients. It caches one
// client per profile, tracks advisory busy/idle state, and offers a
// connectivity probe that never retains a client.
type Manager struct {
	profiles ProfileStore
	secrets  secret.Store
	open     OpenFunc

	mu    sync.Mutex
	conns map[string]*managedConn
}

// NewManager creates a Manager over the given profile and secret stores.
func NewManager(profiles ProfileStore, secrets secret.Store) *Manager {
	return &Manager{
		profiles: profiles,
		secrets:  secrets,
		open:     OpenPostgres,
		conns:    map[string]*managedConn{},
	}
}

func secretKey(profileID string) string { return "conn:" + profileID }

// TestConnection opens a client for the descriptor, pings it, and closes it
// regardless of outcome. No state is retained on either path; a failure to
// close is swallowed (best-effort cleanup).
func (m *Manager) TestConnection(desc ConnectionDescriptor, password string) TestResult {
	db, err := m.open(desc.DSN(password))
	if err != nil {
		// gorm can hand back a live pool together with the open error.
		if db != nil {
			closeClient(db)
		}
		return TestResult{Error: err.Error()}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return TestResult{Error: err.Error()}
	}
	pingErr := sqlDB.Ping()
	_ = sqlDB.Close()
	if pingErr != nil {
		return TestResult{Error: pingErr.Error()}
	}
	return TestResult{Success: true}
}

// GetClient resolves the profile by id or name and returns its cached live
// client, opening and caching a new one when absent. Failed connects are
// reported without poisoning the cache.
func (m *Manager) GetClient(profile string) (*gorm.DB, error) {
	p, ok := m.resolve(profile)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profile)
	}

	m.mu.Lock()
	if c, ok := m.conns[p.ID]; ok {
		m.mu.Unlock()
		return c.db, nil
	}
	m.mu.Unlock()

	password, err := m.secrets.Get(secretKey(p.ID))
	if err != nil {
		return nil, fmt.Errorf("secret for %s: %w", p.Name, err)
	}

	db, err := m.open(p.Descriptor().DSN(string(password)))
	if err != nil {
		if db != nil {
			closeClient(db)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conns[p.ID]; ok {
		// Another caller connected first; keep theirs, drop ours.
		_ = sqlDB.Close()
		return c.db, nil
	}
	m.conns[p.ID] = &managedConn{db: db, state: StateIdle}
	return db, nil
}

// State returns the advisory state for the profile. Profiles without a
// cached client are disconnected.
func (m *Manager) State(profile string) ConnState {
	p, ok := m.resolve(profile)
	if !ok {
		return StateDisconnected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conns[p.ID]; ok {
		return c.state
	}
	return StateDisconnected
}

// MarkBusy flags the profile's connection as busy. Idempotent; no I/O.
func (m *Manager) MarkBusy(profile string) {
	m.setState(profile, StateBusy)
}

// MarkIdle flags the profile's connection as idle. Idempotent; no I/O.
func (m *Manager) MarkIdle(profile string) {
	m.setState(profile, StateIdle)
}

func (m *Manager) setState(profile string, state ConnState) {
	p, ok := m.resolve(profile)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conns[p.ID]; ok {
		c.state = state
	}
}

// Disconnect closes and evicts the cached client for a profile if present.
// Safe to call when no client is cached.
func (m *Manager) Disconnect(profile string) {
	p, ok := m.resolve(profile)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conns[p.ID]; ok {
		closeClient(c.db)
		delete(m.conns, p.ID)
	}
}

// CloseAll closes every cached client. Intended for shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.conns {
		closeClient(c.db)
		delete(m.conns, id)
	}
}

func (m *Manager) resolve(profile string) (ConnectionProfile, bool) {
	if p, ok := m.profiles.Get(profile); ok {
		return p, true
	}
	return m.profiles.FindByName(profile)
}

func closeClient(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
