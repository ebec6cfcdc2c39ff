// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"synergysphere/internal/database"
	"synergysphere/internal/domain"
	"synergysphere/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Clock returns a time source that advances one second per call.
func Clock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func Identity(p *models.Profile) domain.Identity {
	return domain.Identity{UserID: p.ID, Email: p.Email}
}

func Profile(t *testing.T, db *gorm.DB, email, displayName string) *models.Profile {
	t.Helper()
	p := &models.Profile{Email: email, DisplayName: displayName}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Project creates a project owned by owner and adds members with the given role.
func Project(t *testing.T, db *gorm.DB, name string, owner *models.Profile) *models.Project {
	t.Helper()
	p := &models.Project{Name: name, OwnerID: owner.ID}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Create(&models.ProjectMember{ProjectID: p.ID, UserID: owner.ID, Role: domain.RoleOwner}).Error)
	return p
}

func Member(t *testing.T, db *gorm.DB, project *models.Project, user *models.Profile, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: role}).Error)
}

// Signals records refresh signals per user.
type Signals struct {
	mu    sync.Mutex
	count map[uint]int
}

func NewSignals() *Signals {
	return &Signals{count: make(map[uint]int)}
}

func (s *Signals) NotifyUser(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count[userID]++
}

func (s *Signals) Count(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count[userID]
}
