package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kanbd/kanbd/internal/todo"
)

// debounceWindow coalesces filesystem event bursts. A single rename raises
// separate create/rename events in each directory; clients only need one
// refresh signal per burst.
const debounceWindow = 100 * time.Millisecond

// Watch observes both status directories and invokes notify once per burst
// of changes to todo files. It blocks until ctx is cancelled. The callback
// carries no item data: state is always re-derived by listing, so a stale or
// dropped notification can never desynchronize the board.
func (b *Board) Watch(ctx context.Context, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, status := range []todo.Status{todo.StatusPending, todo.StatusDone} {
		if err := watcher.Add(b.Dir(status)); err != nil {
			return fmt.Errorf("watch %s dir: %w", status, err)
		}
	}

	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, todo.Extension) {
				continue
			}
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(debounceWindow)
			pending = true
		case <-timer.C:
			pending = false
			notify()
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are transient on the platforms we care about;
			// the next successful event still triggers a refresh.
		}
	}
}
