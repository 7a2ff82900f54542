package event

import (
	"context"
	"log/slog"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/domain"
)

// Sink receives cart snapshots for publication.
type Sink interface {
	PublishCartUpdated(ctx context.Context, lines []domain.CartLine) error
}

// Relay bridges the cart's lines feed to a sink. Feed delivery is
// synchronous and must never wait on broker I/O, so the relay hands each
// snapshot to a worker goroutine through a single-slot mailbox: if the
// worker is behind, a newer snapshot replaces the undelivered one and only
// the latest state goes out.
type Relay struct {
	sink   Sink
	logger *slog.Logger

	updates chan []domain.CartLine
	cancel  func()
	done    chan struct{}
}

// NewRelay creates a relay that forwards cart updates to the sink.
func NewRelay(sink Sink, logger *slog.Logger) *Relay {
	return &Relay{
		sink:    sink,
		logger:  logger,
		updates: make(chan []domain.CartLine, 1),
		done:    make(chan struct{}),
	}
}

// Bind subscribes the relay to the feed. The subscribe-time replay lands in
// the mailbox like any other update, so the worker announces the initial
// state once it runs.
func (r *Relay) Bind(feed *cart.Feed[[]domain.CartLine]) {
	r.cancel = feed.Subscribe(r.offer)
}

// Run delivers queued snapshots to the sink until ctx is canceled. Publish
// failures are logged and dropped; the next update carries the full state
// anyway.
func (r *Relay) Run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case lines := <-r.updates:
			if err := r.sink.PublishCartUpdated(ctx, lines); err != nil {
				r.logger.ErrorContext(ctx, "failed to relay cart update",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Close cancels the feed subscription and waits for the worker to exit. The
// context passed to Run must be canceled before or alongside this call.
func (r *Relay) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.done
}

// offer places a snapshot in the mailbox without blocking. Only the worker
// consumes from the channel, so drain-then-retry always terminates.
func (r *Relay) offer(lines []domain.CartLine) {
	for {
		select {
		case r.updates <- lines:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}
