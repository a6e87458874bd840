package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChangeEvent signals that the todo directories changed on disk. It carries
// no item data: clients refetch the list, so a dropped event can never leave
// them holding stale state the next fetch would not correct.
type ChangeEvent struct {
	Type string `json:"type"`
}

// EventSource provides a stream of board change events.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// EventPublisher emits change events to active subscribers.
type EventPublisher interface {
	Publish(evt ChangeEvent)
}

// EventStreamOption configures the SSE handler.
type EventStreamOption func(*eventStreamConfig)

type eventStreamConfig struct {
	heartbeatInterval time.Duration
	now               func() time.Time
}

// WithHeartbeatInterval overrides the interval between heartbeat events.
func WithHeartbeatInterval(interval time.Duration) EventStreamOption {
	return func(cfg *eventStreamConfig) {
		cfg.heartbeatInterval = interval
	}
}

// WithNowFunc injects a custom clock, primarily for tests.
func WithNowFunc(now func() time.Time) EventStreamOption {
	return func(cfg *eventStreamConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// NewEventStreamHandler returns an HTTP handler that serves Server-Sent Events.
func NewEventStreamHandler(source EventSource, opts ...EventStreamOption) http.Handler {
	cfg := eventStreamConfig{
		heartbeatInterval: 30 * time.Second,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteJSONError(w, http.StatusInternalServerError, "streaming unsupported", "")
			return
		}

		ctx := r.Context()
		events, err := source.Subscribe(ctx)
		if err != nil {
			WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("subscribe failed: %v", err), "")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		var heartbeat <-chan time.Time
		if cfg.heartbeatInterval > 0 {
			ticker := time.NewTicker(cfg.heartbeatInterval)
			defer ticker.Stop()
			heartbeat = ticker.C
		}

		// Initial comment to confirm stream start.
		fmt.Fprintf(w, ": stream online %s\n\n", cfg.now().UTC().Format(time.RFC3339))
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				if err := writeSSEEvent(w, evt.Type, evt); err != nil {
					return
				}
				flusher.Flush()
			case <-heartbeat:
				if err := writeSSEEvent(w, "heartbeat", map[string]string{
					"at": cfg.now().UTC().Format(time.RFC3339),
				}); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	})
}

func writeSSEEvent(w http.ResponseWriter, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
