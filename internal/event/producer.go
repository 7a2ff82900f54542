package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cartwheel-io/storefront/internal/domain"
	pkgkafka "github.com/cartwheel-io/storefront/pkg/kafka"
	"github.com/cartwheel-io/storefront/pkg/logger"
)

// TopicCartUpdated carries the full cart state after every mutation.
var TopicCartUpdated = pkgkafka.Topic("cart", "updated")

// EventTypeCartUpdated identifies the cart.updated event.
const EventTypeCartUpdated = "cart.updated"

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event. It is the whole
// state, not a delta, so consumers never need to reconstruct anything.
type CartUpdatedData struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalCount int               `json:"total_count"`
	TotalPrice int64             `json:"total_price"`
}

// Producer publishes cart domain events to Kafka. The cart lives only for
// the lifetime of the process, so the aggregate ID is minted once per
// producer and reused for every event it emits.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
	cartID string
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
		cartID: uuid.New().String(),
	}
}

// PublishCartUpdated publishes a cart.updated event for the given snapshot.
func (p *Producer) PublishCartUpdated(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	data := CartUpdatedData{
		Lines:      lines,
		TotalCount: domain.TotalQuantity(lines),
		TotalPrice: domain.TotalPrice(lines),
	}

	event, err := pkgkafka.NewEvent(EventTypeCartUpdated, p.cartID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if corr := logger.CorrelationIDFromContext(ctx); corr != "" {
		event.WithCorrelationID(corr)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", p.cartID),
		slog.Int("total_count", data.TotalCount),
	)

	return nil
}
