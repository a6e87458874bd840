package api

import "net/http"

// Backend is the board surface the API needs.
type Backend interface {
	Lister
	Mover
}

// Register wires the board API onto mux. events may be nil, in which case
// the SSE endpoint is not served and moves go unannounced.
func Register(mux *http.ServeMux, b Backend, events *LocalEventDispatcher) {
	var notify MoveNotifier
	if events != nil {
		notify = func() { events.Publish(ChangeEvent{Type: "changed"}) }
		mux.Handle("/api/events", NewEventStreamHandler(events))
	}

	mux.Handle("/api/todos", NewListHandler(b))
	mux.Handle("/api/move", NewMoveHandler(b, notify))
}
