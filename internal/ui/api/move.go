package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/todo"
)

// Mover captures the subset of board.Board needed for status transitions.
type Mover interface {
	Move(id string, to todo.Status) error
}

type moveRequest struct {
	ID string `json:"id"`
	To string `json:"to"`
}

// MoveNotifier is invoked after a successful move so the event stream can
// signal connected clients. May be nil.
type MoveNotifier func()

// NewMoveHandler returns an HTTP handler performing a single status
// transition. Validation failures map to 400, a missing source file to 404,
// rename failures to 500; all are structured JSON and fatal only to the one
// request.
func NewMoveHandler(b Mover, notify MoveNotifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
			return
		}

		defer r.Body.Close()

		var payload moveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}

		to := todo.Status(strings.TrimSpace(payload.To))
		err := b.Move(strings.TrimSpace(payload.ID), to)
		switch {
		case err == nil:
		case errors.Is(err, board.ErrInvalidID), errors.Is(err, board.ErrInvalidStatus):
			WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
			return
		case errors.Is(err, board.ErrNotFound):
			WriteJSONError(w, http.StatusNotFound, err.Error(), "")
			return
		default:
			WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("move failed: %v", err), "")
			return
		}

		if notify != nil {
			notify()
		}

		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}
