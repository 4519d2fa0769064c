package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/burhaniassociates/storefront/pkg/kafka"
)

// SourceSeeder identifies events published by the development seeder.
const SourceSeeder = "storefront-seed"

// Publisher is the subset of *pkgkafka.Producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, events ...*pkgkafka.Event) error
}

// Producer publishes catalog change events.
type Producer struct {
	kafka  Publisher
	source string
	logger *slog.Logger
}

// NewProducer creates a new catalog change producer.
func NewProducer(kafka Publisher, source string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		source: source,
		logger: logger,
	}
}

// PublishProductUpserted announces a created or updated product.
func (p *Producer) PublishProductUpserted(ctx context.Context, productID string) error {
	return p.publish(ctx, TypeProductUpserted, productID, AggregateProduct, nil)
}

// PublishBrandChanged announces a brand change affecting productIDs.
func (p *Producer) PublishBrandChanged(ctx context.Context, brandID string, productIDs []string) error {
	return p.publish(ctx, TypeBrandChanged, brandID, AggregateBrand, productIDs)
}

// PublishCategoryChanged announces a category change affecting productIDs.
func (p *Producer) PublishCategoryChanged(ctx context.Context, categoryID string, productIDs []string) error {
	return p.publish(ctx, TypeCategoryChanged, categoryID, AggregateCategory, productIDs)
}

func (p *Producer) publish(ctx context.Context, eventType, aggregateID, aggregateType string, productIDs []string) error {
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, p.source, CatalogChangedData{ProductIDs: productIDs})
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}

	if err := p.kafka.Publish(ctx, TopicCatalogChanged, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published catalog event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", aggregateID),
		slog.String("event_id", evt.EventID),
	)
	return nil
}
