package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cartwheel-io/storefront/internal/cart"
	"github.com/cartwheel-io/storefront/internal/domain"
	apperrors "github.com/cartwheel-io/storefront/pkg/errors"
	"github.com/cartwheel-io/storefront/pkg/httputil"
	"github.com/cartwheel-io/storefront/pkg/logger"
)

// StreamHandler serves the cart's feeds to browsers over server-sent events.
// Each connection carries two named event streams, "lines" and "count",
// mirroring the two cart feeds.
type StreamHandler struct {
	store     *cart.Store
	logger    *slog.Logger
	heartbeat time.Duration
}

// NewStreamHandler creates the SSE handler. The heartbeat interval keeps
// idle connections alive through proxies; non-positive values fall back to
// 15 seconds.
func NewStreamHandler(store *cart.Store, logger *slog.Logger, heartbeat time.Duration) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &StreamHandler{
		store:     store,
		logger:    logger,
		heartbeat: heartbeat,
	}
}

// countPayload is the data carried by a "count" event.
type countPayload struct {
	TotalCount int `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/cart/stream.
//
// Feed callbacks run on the mutating goroutine and must not block, so each
// feed drops its snapshots into a single-slot mailbox: a slow client skips
// intermediate states and always catches up to the newest one. The
// subscribe-time replay lands in the mailboxes before the write loop starts,
// so late joiners receive the current cart state first.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteError(w, r, apperrors.Unavailable("streaming is not supported on this connection"), h.logger)
		return
	}

	linesCh := make(chan []domain.CartLine, 1)
	countCh := make(chan int, 1)

	cancelLines := h.store.Lines().Subscribe(func(lines []domain.CartLine) {
		offer(linesCh, lines)
	})
	defer cancelLines()

	cancelCount := h.store.TotalCount().Subscribe(func(count int) {
		offer(countCh, count)
	})
	defer cancelCount()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log := logger.FromContext(r.Context())
	log.DebugContext(r.Context(), "cart stream opened",
		slog.String("remote_addr", r.RemoteAddr),
	)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "cart stream closed",
				slog.String("remote_addr", r.RemoteAddr),
			)
			return
		case lines := <-linesCh:
			if err := writeEvent(w, "lines", lines); err != nil {
				return
			}
			flusher.Flush()
		case count := <-countCh:
			if err := writeEvent(w, "count", countPayload{TotalCount: count}); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(w, ":heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// offer replaces the mailbox's pending value with v without ever blocking
// the caller.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// writeEvent writes one named SSE event with a JSON payload.
func writeEvent(w io.Writer, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return err
}
