package pgdesk

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// profileRecord is the persistence model for GormProfileStore.
type profileRecord struct {
	ID         string `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null"`
	ConnString string
	Host       string
	Port       int
	Database   string
	Username   string
	SSLMode    string
}

func (profileRecord) TableName() string { return "connection_profiles" }

// GormProfileStore persists profiles in a local SQLite database so they
// survive restarts. It implements ProfileStore.
type GormProfileStore struct {
	db *gorm.DB
}

// NewGormProfileStore opens (or creates) the profile database at path and
// migrates the schema.
func NewGormProfileStore(path string) (*GormProfileStore, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	if err := db.AutoMigrate(&profileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate profile store: %w", err)
	}
	return &GormProfileStore{db: db}, nil
}

// List returns all stored connection profiles ordered by name.
func (s *GormProfileStore) List() []ConnectionProfile {
	var recs []profileRecord
	if err := s.db.Order("name").Find(&recs).Error; err != nil {
		return nil
	}
	out := make([]ConnectionProfile, len(recs))
	for i, r := range recs {
		out[i] = r.toProfile()
	}
	return out
}

// Save stores or updates a connection profile. The unique index on name
// rejects duplicates under a different id.
func (s *GormProfileStore) Save(p ConnectionProfile) error {
	rec := profileRecord{
		ID:         p.ID,
		Name:       p.Name,
		ConnString: p.ConnString,
		Host:       p.Host,
		Port:       p.Port,
		Database:   p.Database,
		Username:   p.Username,
		SSLMode:    p.SSLMode,
	}
	return s.db.Save(&rec).Error
}

// Get retrieves a connection profile by ID.
func (s *GormProfileStore) Get(id string) (ConnectionProfile, bool) {
	var rec profileRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return ConnectionProfile{}, false
	}
	return rec.toProfile(), true
}

// FindByName retrieves a connection profile by its user-chosen name.
func (s *GormProfileStore) FindByName(name string) (ConnectionProfile, bool) {
	var rec profileRecord
	if err := s.db.First(&rec, "name = ?", name).Error; err != nil {
		return ConnectionProfile{}, false
	}
	return rec.toProfile(), true
}

// Delete removes a profile by ID. Deleting an unknown id is a no-op.
func (s *GormProfileStore) Delete(id string) error {
	return s.db.Delete(&profileRecord{}, "id = ?", id).Error
}

func (r profileRecord) toProfile() ConnectionProfile {
	return ConnectionProfile{
		ID:         r.ID,
		Name:       r.Name,
		ConnString: r.ConnString,
		Host:       r.Host,
		Port:       r.Port,
		Database:   r.Database,
		Username:   r.Username,
		SSLMode:    r.SSLMode,
	}
}
