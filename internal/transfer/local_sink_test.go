package transfer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdtp/internal/domain"
	_errors "sdtp/pkg/errors"
	"sdtp/pkg/logger"
	"sdtp/pkg/platform"
)

func testLogger() *logger.Logger {
	return logger.NewWithConfig(logger.Config{Level: logger.ERROR, Output: os.Stderr})
}

func TestLocalSink_WriteAndCommit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	sink := NewLocalSink(dir, platform.NewMockPlatform(), false, testLogger())
	ctx := context.Background()

	h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.bin"), h.Destination())

	part, err := h.Write(ctx, []byte("hello "))
	require.NoError(t, err)
	assert.Zero(t, part.PartNumber)
	_, err = h.Write(ctx, []byte("world"))
	require.NoError(t, err)
	require.NoError(t, h.Commit(ctx, nil))

	got, err := os.ReadFile(h.Destination())
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))

	_, err = h.Write(ctx, []byte("late"))
	assert.ErrorIs(t, err, _errors.ErrSessionClosed)
}

func TestLocalSink_WritesGoToPartialFileUntilCommit(t *testing.T) {
	dir := t.TempDir()
	mock := platform.NewMockPlatform()
	sink := NewLocalSink(dir, mock, false, testLogger())
	ctx := context.Background()

	h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
	require.NoError(t, err)
	_, err = h.Write(ctx, []byte("payload"))
	require.NoError(t, err)

	require.Len(t, mock.CreateCalls, 1)
	partial := mock.CreateCalls[0]
	assert.Equal(t, dir, filepath.Dir(partial))
	assert.NotEqual(t, h.Destination(), partial)
	assert.NoFileExists(t, h.Destination())

	require.NoError(t, h.Commit(ctx, nil))
	assert.NoFileExists(t, partial)
	assert.Equal(t, []string{h.Destination()}, mock.RenameCalls)

	// abort after commit leaves the committed file alone
	require.NoError(t, h.Abort(ctx))
	assert.FileExists(t, h.Destination())
}

func TestLocalSink_AbortRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	mock := platform.NewMockPlatform()
	sink := NewLocalSink(dir, mock, false, testLogger())
	ctx := context.Background()

	h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
	require.NoError(t, err)
	_, err = h.Write(ctx, []byte("partial"))
	require.NoError(t, err)

	require.NoError(t, h.Abort(ctx))
	assert.NoFileExists(t, h.Destination())
	assert.Equal(t, mock.CreateCalls, mock.RemoveCalls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// the file is already gone; a second abort is harmless
	assert.NoError(t, h.Abort(ctx))
}

func TestLocalSink_AbortKeepsExistingDestination(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(existing, []byte("verified earlier"), 0644))

	sink := NewLocalSink(dir, platform.NewMockPlatform(), false, testLogger())
	ctx := context.Background()

	h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
	require.NoError(t, err)
	_, err = h.Write(ctx, []byte("corrupt"))
	require.NoError(t, err)

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "verified earlier", string(got), "open must not truncate")

	require.NoError(t, h.Abort(ctx))
	got, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "verified earlier", string(got))
}

func TestLocalSink_CommitReplacesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	sink := NewLocalSink(dir, platform.NewMockPlatform(), false, testLogger())
	ctx := context.Background()

	h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
	require.NoError(t, err)
	_, err = h.Write(ctx, []byte("new"))
	require.NoError(t, err)
	require.NoError(t, h.Commit(ctx, nil))

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestLocalSink_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		mock := platform.NewMockPlatform()
		mock.ShouldFailCreate = true
		sink := NewLocalSink(t.TempDir(), mock, false, testLogger())

		_, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
		assert.ErrorIs(t, err, _errors.ErrStorage)
	})

	t.Run("write", func(t *testing.T) {
		mock := platform.NewMockPlatform()
		mock.FailWriteAfter = 4
		sink := NewLocalSink(t.TempDir(), mock, false, testLogger())

		h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
		require.NoError(t, err)
		_, err = h.Write(ctx, []byte("hello"))
		assert.ErrorIs(t, err, _errors.ErrStorage)

		var storageErr *_errors.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, SinkLocal, storageErr.Sink)
		assert.Equal(t, "write", storageErr.Op)
	})

	t.Run("sync on commit", func(t *testing.T) {
		mock := platform.NewMockPlatform()
		mock.ShouldFailSync = true
		sink := NewLocalSink(t.TempDir(), mock, false, testLogger())

		h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
		require.NoError(t, err)
		assert.ErrorIs(t, h.Commit(ctx, nil), _errors.ErrStorage)
	})

	t.Run("rename on commit", func(t *testing.T) {
		dir := t.TempDir()
		mock := platform.NewMockPlatform()
		mock.ShouldFailRename = true
		sink := NewLocalSink(dir, mock, false, testLogger())

		h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
		require.NoError(t, err)
		assert.ErrorIs(t, h.Commit(ctx, nil), _errors.ErrStorage)

		// the orchestrator aborts a failed commit, which clears the partial file
		require.NoError(t, h.Abort(ctx))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("remove on abort", func(t *testing.T) {
		mock := platform.NewMockPlatform()
		mock.ShouldFailRemove = true
		sink := NewLocalSink(t.TempDir(), mock, false, testLogger())

		h, err := sink.Open(ctx, domain.FileDescriptor{ID: 1, Name: "a.bin"})
		require.NoError(t, err)
		assert.ErrorIs(t, h.Abort(ctx), _errors.ErrStorage)
	})
}

func TestLocalSink_UnsafeNames(t *testing.T) {
	ctx := context.Background()
	file := domain.FileDescriptor{ID: 9, Name: "../escape.bin"}

	t.Run("refused when configured", func(t *testing.T) {
		mock := platform.NewMockPlatform()
		sink := NewLocalSink(filepath.Join(t.TempDir(), "base"), mock, true, testLogger())

		_, err := sink.Open(ctx, file)
		assert.ErrorIs(t, err, _errors.ErrStorage)
		assert.Empty(t, mock.CreateCalls)
	})

	t.Run("relative names like system directories are allowed", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "base")
		sink := NewLocalSink(base, platform.NewMockPlatform(), true, testLogger())

		h, err := sink.Open(ctx, domain.FileDescriptor{ID: 3, Name: "etc"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "etc"), h.Destination())
		require.NoError(t, h.Commit(ctx, nil))
		assert.FileExists(t, h.Destination())
	})

	t.Run("passed through verbatim otherwise", func(t *testing.T) {
		root := t.TempDir()
		base := filepath.Join(root, "base")
		sink := NewLocalSink(base, platform.NewMockPlatform(), false, testLogger())

		h, err := sink.Open(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "escape.bin"), h.Destination())
		require.NoError(t, h.Abort(ctx))
	})
}

func TestLocalSink_EmptyBasePathUsesName(t *testing.T) {
	sink := NewLocalSink("", platform.NewMockPlatform(), false, testLogger())
	assert.Equal(t, "a.bin", sink.Resolve("a.bin"))
	assert.Equal(t, SinkLocal, sink.Kind())
	assert.Zero(t, sink.SegmentSize())
}
