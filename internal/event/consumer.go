package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/burhaniassociates/storefront/pkg/kafka"
)

// Invalidator drops cached catalog reads.
type Invalidator interface {
	Invalidate(ctx context.Context, productIDs ...string) error
}

// Consumer turns catalog change events into cache invalidations.
type Consumer struct {
	cache  Invalidator
	logger *slog.Logger
}

// NewConsumer creates a new catalog change consumer.
func NewConsumer(cache Invalidator, logger *slog.Logger) *Consumer {
	return &Consumer{
		cache:  cache,
		logger: logger,
	}
}

// HandleCatalogChanged invalidates the cached listings and the detail entries
// of every product the event touches. Unknown event types are ignored.
func (c *Consumer) HandleCatalogChanged(ctx context.Context, event *pkgkafka.Event) error {
	ids, ok, err := affectedProducts(event)
	if err != nil {
		return err
	}
	if !ok {
		c.logger.DebugContext(ctx, "ignoring catalog event",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	if err := c.cache.Invalidate(ctx, ids...); err != nil {
		return fmt.Errorf("invalidate after %s %s: %w", event.EventType, event.AggregateID, err)
	}

	c.logger.InfoContext(ctx, "catalog cache invalidated",
		slog.String("event_type", event.EventType),
		slog.String("aggregate_id", event.AggregateID),
		slog.Int("products", len(ids)),
	)
	return nil
}

func affectedProducts(event *pkgkafka.Event) ([]string, bool, error) {
	var data CatalogChangedData
	if len(event.Data) > 0 {
		if err := event.UnmarshalData(&data); err != nil {
			return nil, false, fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
		}
	}

	switch event.EventType {
	case TypeProductUpserted, TypeProductDeleted, TypeInventoryChanged:
		return appendUnique([]string{event.AggregateID}, data.ProductIDs...), true, nil
	case TypeBrandChanged, TypeCategoryChanged:
		return appendUnique(nil, data.ProductIDs...), true, nil
	default:
		return nil, false, nil
	}
}

func appendUnique(ids []string, more ...string) []string {
	seen := make(map[string]struct{}, len(ids)+len(more))
	out := make([]string, 0, len(ids)+len(more))
	for _, id := range append(ids, more...) {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
