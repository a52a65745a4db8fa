package pgdesk

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pgdesk/pgdesk/shared/secret"
)

// newPingableMock returns a gorm DB over sqlmock with ping monitoring on, so
// tests can assert ping and close calls explicitly.
func newPingableMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func newTestManager(t *testing.T, profiles ...ConnectionProfile) *Manager {
	t.Helper()
	store := NewMemoryProfileStore()
	for _, p := range profiles {
		require.NoError(t, store.Save(p))
	}
	return NewManager(store, secret.NewMemoryStore())
}

var localProfile = ConnectionProfile{
	ID:       "p1",
	Name:     "local",
	Host:     "localhost",
	Port:     5432,
	Database: "app",
	Username: "app",
}

func TestTestConnection_ClosesOnSuccess(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t)
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, nil }

	mock.ExpectPing()
	mock.ExpectClose()

	res := m.TestConnection(localProfile.Descriptor(), "secret")
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	// ExpectClose is satisfied exactly once: the probe may not leak a handle.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestConnection_ClosesAfterFailedPing(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t)
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, nil }

	mock.ExpectPing().WillReturnError(errors.New("network error"))
	mock.ExpectClose()

	res := m.TestConnection(localProfile.Descriptor(), "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "network error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestConnection_OpenError(t *testing.T) {
	m := newTestManager(t)
	m.open = func(dsn string) (*gorm.DB, error) { return nil, errors.New("dial refused") }

	res := m.TestConnection(localProfile.Descriptor(), "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "dial refused")
}

func TestTestConnection_ClosesPoolReturnedWithOpenError(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t)
	// gorm returns a non-nil DB alongside the error when the dial fails.
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, errors.New("connection refused") }

	mock.ExpectClose()

	res := m.TestConnection(localProfile.Descriptor(), "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_ClosesPoolReturnedWithOpenError(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t, localProfile)
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, errors.New("connection refused") }

	mock.ExpectClose()

	_, err := m.GetClient("local")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, StateDisconnected, m.State("local"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_UnknownProfile(t *testing.T) {
	m := newTestManager(t)
	_, err := m.GetClient("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetClient_CachesClient(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t, localProfile)
	opens := 0
	m.open = func(dsn string) (*gorm.DB, error) {
		opens++
		return gdb, nil
	}

	mock.ExpectPing()

	db1, err := m.GetClient("local")
	require.NoError(t, err)
	db2, err := m.GetClient("p1")
	require.NoError(t, err)

	assert.Same(t, db1, db2)
	assert.Equal(t, 1, opens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_FailedConnectDoesNotPoisonCache(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t, localProfile)
	calls := 0
	m.open = func(dsn string) (*gorm.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("network error")
		}
		return gdb, nil
	}

	_, err := m.GetClient("local")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, StateDisconnected, m.State("local"))

	mock.ExpectPing()
	_, err = m.GetClient("local")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, m.State("local"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_StateTransitions(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t, localProfile)
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, nil }

	assert.Equal(t, StateDisconnected, m.State("local"))

	mock.ExpectPing()
	_, err := m.GetClient("local")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, m.State("local"))

	m.MarkBusy("local")
	assert.Equal(t, StateBusy, m.State("local"))
	// idempotent: marking busy twice stays busy
	m.MarkBusy("local")
	assert.Equal(t, StateBusy, m.State("local"))

	m.MarkIdle("local")
	assert.Equal(t, StateIdle, m.State("local"))

	mock.ExpectClose()
	m.Disconnect("local")
	assert.Equal(t, StateDisconnected, m.State("local"))
	assert.NoError(t, mock.ExpectationsWereMet())

	// disconnecting again is a no-op
	m.Disconnect("local")
}

func TestManager_MarkBusyUnknownProfileIsNoop(t *testing.T) {
	m := newTestManager(t)
	m.MarkBusy("ghost")
	assert.Equal(t, StateDisconnected, m.State("ghost"))
}

func TestManager_CloseAll(t *testing.T) {
	gdb, mock := newPingableMock(t)
	m := newTestManager(t, localProfile)
	m.open = func(dsn string) (*gorm.DB, error) { return gdb, nil }

	mock.ExpectPing()
	_, err := m.GetClient("local")
	require.NoError(t, err)

	mock.ExpectClose()
	m.CloseAll()
	assert.Equal(t, StateDisconnected, m.State("local"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
