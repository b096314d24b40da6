package events

import (
	"context"
	"log/slog"

	"archipelago/pkg/platform/circuit"
)

// Worker decouples the orchestrator from slow sinks. Publish enqueues without
// blocking and Run forwards queued events to the sink until ctx ends.
type Worker struct {
	sink    Publisher
	inbox   chan Event
	logger  *slog.Logger
	breaker *circuit.Breaker
}

func NewWorker(sink Publisher, buffer int, logger *slog.Logger) *Worker {
	if buffer <= 0 {
		buffer = 256
	}
	return &Worker{
		sink:    sink,
		inbox:   make(chan Event, buffer),
		logger:  logger,
		breaker: circuit.New("event-sink"),
	}
}

// Publish queues event. When the buffer is full the event is dropped.
func (w *Worker) Publish(_ context.Context, event Event) error {
	select {
	case w.inbox <- event:
	default:
		if w.logger != nil {
			w.logger.Warn("event buffer full, dropping event",
				"event_id", event.ID,
				"type", event.Type,
			)
		}
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.forward(ctx, event)
		}
	}
}

// drain flushes whatever is still buffered on shutdown.
func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.forward(context.Background(), event)
		default:
			return
		}
	}
}

// Degraded reports whether the sink has failed often enough to open the
// breaker.
func (w *Worker) Degraded() bool {
	return w.breaker.IsOpen()
}

// forward publishes one event. While the breaker is open, failures are
// counted but not logged individually.
func (w *Worker) forward(ctx context.Context, event Event) {
	err := w.sink.Publish(ctx, event)
	if err == nil {
		if _, change := w.breaker.RecordSuccess(); change.Closed && w.logger != nil {
			w.logger.Info("event sink recovered", "breaker", w.breaker.Name())
		}
		return
	}
	degraded, change := w.breaker.RecordFailure()
	if w.logger == nil {
		return
	}
	switch {
	case change.Opened:
		w.logger.Warn("event sink failing, suppressing errors",
			"breaker", w.breaker.Name(),
			"error", err,
		)
	case !degraded:
		w.logger.Error("failed to publish event",
			"event_id", event.ID,
			"type", event.Type,
			"error", err,
		)
	}
}
