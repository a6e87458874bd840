package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbd/kanbd/internal/todo"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b := New(filepath.Join(t.TempDir(), "todos"))
	require.NoError(t, b.EnsureDirs())
	return b
}

func addTodo(t *testing.T, b *Board, status todo.Status, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir(status), id), []byte(content), 0o644))
}

func TestNewResolvesRelativeRoot(t *testing.T) {
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	b := New("todos")
	require.NoError(t, b.EnsureDirs())
	addTodo(t, b, todo.StatusPending, "a1.md", "")

	assert.True(t, filepath.IsAbs(b.Root))
	snapshot, err := b.List()
	require.NoError(t, err)
	require.Len(t, snapshot.Pending, 1)
	assert.True(t, filepath.IsAbs(snapshot.Pending[0].Path))
}

func TestEnsureDirsIdempotent(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "todos"))
	require.NoError(t, b.EnsureDirs())
	require.NoError(t, b.EnsureDirs())

	for _, status := range []todo.Status{todo.StatusPending, todo.StatusDone} {
		info, err := os.Stat(b.Dir(status))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestListEmptyBoard(t *testing.T) {
	// Directories not created yet: listing must still succeed.
	b := New(filepath.Join(t.TempDir(), "todos"))

	snapshot, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)
	assert.Empty(t, snapshot.Done)
}

func TestListDerivesStatusFromDirectory(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusPending, "a1.md", "---\ntitle: Fix bug\n---\n")
	addTodo(t, b, todo.StatusDone, "z9.md", "---\ntitle: Shipped\n---\n")

	snapshot, err := b.List()
	require.NoError(t, err)
	require.Len(t, snapshot.Pending, 1)
	require.Len(t, snapshot.Done, 1)
	assert.Equal(t, "Fix bug", snapshot.Pending[0].Title)
	assert.Equal(t, todo.StatusPending, snapshot.Pending[0].Status)
	assert.Equal(t, todo.StatusDone, snapshot.Done[0].Status)
}

func TestMoveRoundTrip(t *testing.T) {
	b := newTestBoard(t)
	content := "---\ntitle: Fix bug\n---\ndetails\n"
	addTodo(t, b, todo.StatusPending, "a1.md", content)

	require.NoError(t, b.Move("a1.md", todo.StatusDone))
	assert.NoFileExists(t, filepath.Join(b.Dir(todo.StatusPending), "a1.md"))
	moved, err := os.ReadFile(filepath.Join(b.Dir(todo.StatusDone), "a1.md"))
	require.NoError(t, err)
	assert.Equal(t, content, string(moved))

	// Moving back restores the original directory membership and content.
	require.NoError(t, b.Move("a1.md", todo.StatusPending))
	assert.NoFileExists(t, filepath.Join(b.Dir(todo.StatusDone), "a1.md"))
	restored, err := os.ReadFile(filepath.Join(b.Dir(todo.StatusPending), "a1.md"))
	require.NoError(t, err)
	assert.Equal(t, content, string(restored))
}

func TestMoveMissingSource(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusPending, "other.md", "")

	err := b.Move("missing.md", todo.StatusDone)
	require.ErrorIs(t, err, ErrNotFound)

	// Neither directory changed.
	snapshot, listErr := b.List()
	require.NoError(t, listErr)
	require.Len(t, snapshot.Pending, 1)
	assert.Empty(t, snapshot.Done)
}

func TestMoveRenameFailureMapsToNotFound(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusPending, "a1.md", "")

	// Knock out the destination lane so the rename itself fails with
	// ENOENT after the source stat succeeded. Same syscall outcome as a
	// concurrent move snatching the file between stat and rename.
	require.NoError(t, os.RemoveAll(b.Dir(todo.StatusDone)))

	err := b.Move("a1.md", todo.StatusDone)
	require.ErrorIs(t, err, ErrNotFound)
	assert.FileExists(t, filepath.Join(b.Dir(todo.StatusPending), "a1.md"))
}

func TestMoveRejectsTraversal(t *testing.T) {
	b := newTestBoard(t)
	outside := filepath.Join(b.Root, "..", "escape.md")
	require.NoError(t, os.WriteFile(outside, []byte("outside"), 0o644))

	for _, id := range []string{"../../etc/passwd", "../escape.md", "pending/a1.md", "a1.txt", ""} {
		err := b.Move(id, todo.StatusDone)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}

	// The file outside the managed directories is untouched.
	assert.FileExists(t, outside)
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusPending, "a1.md", "")

	err := b.Move("a1.md", todo.Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.FileExists(t, filepath.Join(b.Dir(todo.StatusPending), "a1.md"))
}

func TestFind(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusDone, "a1.md", "---\ntitle: Done thing\n---\n")

	item, err := b.Find("a1.md")
	require.NoError(t, err)
	assert.Equal(t, "Done thing", item.Title)
	assert.Equal(t, todo.StatusDone, item.Status)

	_, err = b.Find("missing.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Find("../a1.md")
	assert.ErrorIs(t, err, ErrInvalidID)
}
