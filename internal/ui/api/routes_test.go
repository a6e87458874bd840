package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/todo"
	"github.com/kanbd/kanbd/internal/ui/api"
)

// Full wire scenario: list, move via the registered mux, list again.
func TestRegisteredRoutesEndToEnd(t *testing.T) {
	b := newTestBoard(t)
	addTodo(t, b, todo.StatusPending, "a1.md", "---\ntitle: Fix bug\n---\n")

	mux := http.NewServeMux()
	api.Register(mux, b, api.NewLocalEventDispatcher(4))

	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/todos")
	require.NoError(t, err)
	var before board.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&before))
	resp.Body.Close()
	require.Len(t, before.Pending, 1)
	assert.Equal(t, "Fix bug", before.Pending[0].Title)

	resp, err = http.Post(ts.URL+"/api/move", "application/json",
		bytes.NewBufferString(`{"id":"a1.md","to":"done"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"ok":true}`, string(body))

	resp, err = http.Get(ts.URL + "/api/todos")
	require.NoError(t, err)
	var after board.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
	resp.Body.Close()
	assert.Empty(t, after.Pending)
	require.Len(t, after.Done, 1)
	assert.Equal(t, "a1.md", after.Done[0].ID)
}

func TestRegisterWithoutEventsSkipsStream(t *testing.T) {
	b := newTestBoard(t)

	mux := http.NewServeMux()
	api.Register(mux, b, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
