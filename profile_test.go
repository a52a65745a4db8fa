package pgdesk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgdesk "github.com/pgdesk/pgdesk"
)

func TestMemoryProfileStore(t *testing.T) {
	s := pgdesk.NewMemoryProfileStore()

	p := pgdesk.ConnectionProfile{ID: "a", Name: "dev", Host: "localhost", Database: "app"}
	require.NoError(t, s.Save(p))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "dev", got.Name)

	byName, ok := s.FindByName("dev")
	require.True(t, ok)
	assert.Equal(t, "a", byName.ID)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Len(t, s.List(), 1)
}

func TestMemoryProfileStore_UniqueNames(t *testing.T) {
	s := pgdesk.NewMemoryProfileStore()
	require.NoError(t, s.Save(pgdesk.ConnectionProfile{ID: "a", Name: "dev"}))

	err := s.Save(pgdesk.ConnectionProfile{ID: "b", Name: "dev"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")

	// same id updates in place
	require.NoError(t, s.Save(pgdesk.ConnectionProfile{ID: "a", Name: "dev", Host: "h2"}))
	got, _ := s.Get("a")
	assert.Equal(t, "h2", got.Host)
}

func TestMemoryProfileStore_RenameOntoLaterProfileRejected(t *testing.T) {
	s := pgdesk.NewMemoryProfileStore()
	require.NoError(t, s.Save(pgdesk.ConnectionProfile{ID: "a", Name: "alpha"}))
	require.NoError(t, s.Save(pgdesk.ConnectionProfile{ID: "b", Name: "beta"}))

	// renaming a onto b's name must fail even though b is stored after a
	err := s.Save(pgdesk.ConnectionProfile{ID: "a", Name: "beta"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")

	got, ok := s.FindByName("beta")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
	got, ok = s.FindByName("alpha")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestMemoryProfileStore_Delete(t *testing.T) {
	s := pgdesk.NewMemoryProfileStore()
	require.NoError(t, s.Save(pgdesk.ConnectionProfile{ID: "a", Name: "dev"}))

	require.NoError(t, s.Delete("a"))
	_, ok := s.Get("a")
	assert.False(t, ok)

	// deleting an unknown id is a no-op
	require.NoError(t, s.Delete("a"))
}
