package api

import (
	"fmt"
	"net/http"

	"github.com/kanbd/kanbd/internal/board"
)

// Lister captures the subset of board.Board needed for listing.
type Lister interface {
	List() (*board.Snapshot, error)
}

// NewListHandler returns an HTTP handler serving the combined board
// snapshot. Every request re-scans both directories; there is no cache to
// go stale.
func NewListHandler(b Lister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
			return
		}

		snapshot, err := b.List()
		if err != nil {
			WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list todos: %v", err), "")
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}
