package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "storage.yaml")
	storage := NewStorageFileAdapter(path)

	_, ok, err := storage.GetItem("_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem("_token", "mock-jwt-token"))
	require.NoError(t, storage.SetItem("_ga_cid", "client"))

	value, ok, err := storage.GetItem("_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "mock-jwt-token", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, storage.RemoveItem("_token"))
	_, ok, err = storage.GetItem("_token")
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err = storage.GetItem("_ga_cid")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "client", value)

	require.NoError(t, storage.Clear())
	_, ok, err = storage.GetItem("_ga_cid")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, storage.Clear())
}

func TestStorageFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0600))

	_, _, err := NewStorageFileAdapter(path).GetItem("_token")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTokenCredential(t *testing.T) {
	storage := NewStorageFileAdapter(filepath.Join(t.TempDir(), "storage.yaml"))
	credentials := NewTokenCredentialAdapter(storage)

	assert.False(t, credentials.HasToken())

	require.NoError(t, credentials.SetToken("mock-jwt-token"))
	assert.True(t, credentials.HasToken())

	require.NoError(t, credentials.SetToken(""))
	assert.False(t, credentials.HasToken())

	require.NoError(t, credentials.SetToken("mock-jwt-token"))
	require.NoError(t, credentials.ClearToken())
	assert.False(t, credentials.HasToken())
}
