package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("snapshot payload bytes")
	path := writeTempFile(t, content)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 7)
	n, err := m.ReadAt(buf, 9)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "payload", string(buf))

	// Reads past the end drain what remains and report EOF.
	tail := make([]byte, 32)
	n, err = m.ReadAt(tail, 17)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "bytes", string(tail[:n]))

	n, err = m.ReadAt(buf, int64(len(content)))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMapping_EmptyFile(t *testing.T) {
	path := writeTempFile(t, nil)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Bytes())
	assert.NoError(t, m.Advise(AccessSequential))
}

func TestMapping_CloseIdempotent(t *testing.T) {
	path := writeTempFile(t, []byte{1, 2, 3})

	m, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.Equal(t, ErrClosed, m.Advise(AccessSequential))

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, ErrClosed, err)
}

func TestMapping_Advise(t *testing.T) {
	path := writeTempFile(t, make([]byte, 4096))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	for _, pattern := range []AccessPattern{AccessDefault, AccessSequential, AccessRandom, AccessWillNeed} {
		assert.NoError(t, m.Advise(pattern))
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
