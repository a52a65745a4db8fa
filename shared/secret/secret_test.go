package secret_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgdesk/pgdesk/shared/secret"
)

func TestMemoryStore(t *testing.T) {
	s := secret.NewMemoryStore()

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("conn:a", []byte("hunter2")))
	v, err = s.Get("conn:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), v)

	require.NoError(t, s.Delete("conn:a"))
	v, err = s.Get("conn:a")
	require.NoError(t, err)
	assert.Nil(t, v)

	// deleting an unknown key is a no-op
	require.NoError(t, s.Delete("conn:a"))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")

	s, err := secret.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("conn:a", []byte("hunter2")))

	// reopen and verify the value survived
	s2, err := secret.NewFileStore(path)
	require.NoError(t, err)
	v, err := s2.Get("conn:a")
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), v)

	require.NoError(t, s2.Delete("conn:a"))
	v, err = s2.Get("conn:a")
	require.NoError(t, err)
	assert.Nil(t, v)
}
