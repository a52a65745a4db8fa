package pgdesk

import (
	"fmt"
	"sync"
)

// ConnectionProfile is a named, persisted description of how to reach one
// database instance. The password is never part of the profile; it lives in
// the secret store under the profile id.
type ConnectionProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// ConnString, when set, is used verbatim and the discrete fields are ignored.
	ConnString string `json:"conn_string,omitempty"`

	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Username string `json:"username,omitempty"`
	SSLMode  string `json:"sslmode,omitempty"`
}

// Descriptor returns the connection descriptor for this profile.
func (p ConnectionProfile) Descriptor() ConnectionDescriptor {
	return ConnectionDescriptor{
		ConnString: p.ConnString,
		Host:       p.Host,
		Port:       p.Port,
		Database:   p.Database,
		Username:   p.Username,
		SSLMode:    p.SSLMode,
	}
}

// ProfileStore defines the interface for profile storage operations.
type ProfileStore interface {
	List() []ConnectionProfile
	Save(p ConnectionProfile) error
	Get(id string) (ConnectionProfile, bool)
	FindByName(name string) (ConnectionProfile, bool)
	Delete(id string) error
}

// MemoryProfileStore is an in-memory implementation of ProfileStore.
type MemoryProfileStore struct {
	mu   sync.RWMutex
	list []ConnectionProfile
}

// NewMemoryProfileStore creates a new in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{}
}

// List returns all stored connection profiles.
func (s *MemoryProfileStore) List() []ConnectionProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConnectionProfile, len(s.list))
	copy(out, s.list)
	return out
}

// Save stores a connection profile. Names are unique; saving a duplicate
// name under a different id is rejected.
func (s *MemoryProfileStore) Save(p ConnectionProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, existing := range s.list {
		if existing.Name == p.Name && existing.ID != p.ID {
			return fmt.Errorf("profile name already in use: %s", p.Name)
		}
		if existing.ID == p.ID {
			idx = i
		}
	}
	if idx >= 0 {
		s.list[idx] = p
		return nil
	}
	s.list = append(s.list, p)
	return nil
}

// Get retrieves a connection profile by ID.
func (s *MemoryProfileStore) Get(id string) (ConnectionProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.list {
		if p.ID == id {
			return p, true
		}
	}
	return ConnectionProfile{}, false
}

// FindByName retrieves a connection profile by its user-chosen name.
func (s *MemoryProfileStore) FindByName(name string) (ConnectionProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.list {
		if p.Name == name {
			return p, true
		}
	}
	return ConnectionProfile{}, false
}

// Delete removes a profile by ID. Deleting an unknown id is a no-op.
func (s *MemoryProfileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.list {
		if p.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return nil
		}
	}
	return nil
}
