package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSPlatform_CreateWriteRemove(t *testing.T) {
	p := NewOSPlatform()
	path := filepath.Join(t.TempDir(), "out.bin")

	f, err := p.Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, p.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, p.IsNotExist(err))
}

func TestOSPlatform_RemoveMissingIsNotExist(t *testing.T) {
	p := NewOSPlatform()

	err := p.Remove(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, p.IsNotExist(err))

	var platformErr *PlatformError
	assert.ErrorAs(t, err, &platformErr)
	assert.Equal(t, "remove", platformErr.Operation)
}

func TestMockPlatform_FailWriteAfter(t *testing.T) {
	mp := NewMockPlatform()
	mp.FailWriteAfter = 4
	path := filepath.Join(t.TempDir(), "partial.bin")

	f, err := mp.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("abcd"))
	require.NoError(t, err)
	_, err = f.Write([]byte("e"))
	assert.ErrorIs(t, err, errInjectedWrite)

	assert.Equal(t, []string{path}, mp.CreateCalls)
}

func TestMockPlatform_Reset(t *testing.T) {
	mp := NewMockPlatform()
	mp.ShouldFailCreate = true
	mp.ShouldFailRemove = true

	_, err := mp.Create(filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
	assert.Error(t, mp.Remove("x"))

	mp.Reset()
	assert.Empty(t, mp.CreateCalls)
	assert.Empty(t, mp.RemoveCalls)
	assert.False(t, mp.ShouldFailCreate)
	assert.Equal(t, int64(-1), mp.FailWriteAfter)
}
