// Package board implements the two-directory kanban board: listing todos
// across both status directories and moving files between them.
package board

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kanbd/kanbd/internal/todo"
)

var (
	// ErrInvalidID rejects ids that are not a bare todo filename.
	ErrInvalidID = errors.New("invalid todo id")
	// ErrInvalidStatus rejects unknown move destinations.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNotFound is returned when the inferred source file does not exist,
	// typically because another client moved it first.
	ErrNotFound = errors.New("todo not found")
)

// Board is a pair of sibling status directories under a single root. The
// directories are the only shared mutable state; status is always re-derived
// from a fresh directory read, never cached.
type Board struct {
	Root string
}

// New returns a Board rooted at dir, resolved to an absolute path so item
// paths stay meaningful regardless of the process working directory. The
// directories may not exist yet; EnsureDirs creates them and the read path
// tolerates their absence.
func New(dir string) *Board {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Board{Root: dir}
}

// Dir returns the directory backing the given status lane.
func (b *Board) Dir(status todo.Status) string {
	return filepath.Join(b.Root, string(status))
}

// EnsureDirs creates both status directories. Idempotent.
func (b *Board) EnsureDirs() error {
	for _, status := range []todo.Status{todo.StatusPending, todo.StatusDone} {
		if err := os.MkdirAll(b.Dir(status), 0o755); err != nil {
			return fmt.Errorf("create %s dir: %w", status, err)
		}
	}
	return nil
}

// Snapshot is the combined view of both lanes returned to clients.
type Snapshot struct {
	Pending []todo.Item `json:"pending"`
	Done    []todo.Item `json:"done"`
}

// List scans both status directories. Each call reads the filesystem fresh.
func (b *Board) List() (*Snapshot, error) {
	pending, err := todo.Scan(b.Dir(todo.StatusPending), todo.StatusPending)
	if err != nil {
		return nil, err
	}
	done, err := todo.Scan(b.Dir(todo.StatusDone), todo.StatusDone)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Pending: pending, Done: done}, nil
}

// Find looks id up in the pending lane first, then done.
func (b *Board) Find(id string) (todo.Item, error) {
	if !todo.ValidID(id) {
		return todo.Item{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	for _, status := range []todo.Status{todo.StatusPending, todo.StatusDone} {
		items, err := todo.Scan(b.Dir(status), status)
		if err != nil {
			return todo.Item{}, err
		}
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}

	return todo.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Move transitions a todo to the given status by renaming its backing file.
// The source directory is inferred from the destination: moving to done
// implies the file currently lives in pending, and vice versa.
//
// Validation happens before any filesystem access. The rename itself is a
// single atomic syscall, so the file always lives in exactly one of the two
// directories; concurrent moves of the same id race at the filesystem level
// and the loser observes ErrNotFound.
func (b *Board) Move(id string, to todo.Status) error {
	if !todo.ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	src := filepath.Join(b.Dir(to.Other()), id)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("stat %s: %w", src, err)
	}

	dst := filepath.Join(b.Dir(to), id)
	if err := os.Rename(src, dst); err != nil {
		// The stat above is only a fast path: the file can still vanish
		// before the rename when a concurrent move wins the race.
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("move %s to %s: %w", id, to, err)
	}

	return nil
}
