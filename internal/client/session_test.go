package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)

	session, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, session.Server)
	assert.False(t, session.SignedIn())

	session.Token = "abc"
	session.Email = "ana@example.com"
	require.NoError(t, session.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
	assert.Equal(t, "abc", loaded.Client().Token)
}

func TestSession_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := LoadSession(path)

	assert.Error(t, err)
}
