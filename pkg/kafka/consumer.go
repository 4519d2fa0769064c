package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/burhaniassociates/storefront/pkg/logger"
)

// maxHandlerRetries is how many times a handler runs before the message is
// committed and skipped.
const maxHandlerRetries = 3

const consumerTracerName = "github.com/burhaniassociates/storefront/pkg/kafka"

// Handler processes one event.
type Handler func(ctx context.Context, event *Event) error

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers  []string
	GroupID  string
	Topic    string
	MinBytes int
	MaxBytes int
}

// messageReader is the subset of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads events from one topic within a consumer group.
type Consumer struct {
	reader    messageReader
	topic     string
	group     string
	logger    *slog.Logger
	handler   Handler
	metrics   *Metrics
	backoff   func(attempt int) time.Duration
	closeOnce sync.Once
}

// NewConsumer creates a consumer for cfg.Topic. metrics may be nil.
func NewConsumer(cfg ConsumerConfig, handler Handler, metrics *Metrics, logger *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	return newConsumer(r, cfg.Topic, cfg.GroupID, handler, metrics, logger)
}

func newConsumer(r messageReader, topic, group string, handler Handler, metrics *Metrics, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:  r,
		topic:   topic,
		group:   group,
		logger:  logger.With(slog.String("topic", topic), slog.String("group", group)),
		handler: handler,
		metrics: metrics,
		backoff: func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
	}
}

// Start consumes until ctx is canceled, then closes the reader.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer func() {
		if err := c.Close(); err != nil {
			c.logger.Warn("close consumer", slog.String("error", err.Error()))
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping")
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			c.logger.Error("failed to fetch message", slog.String("error", err.Error()))
			continue
		}
		c.process(ctx, msg)
	}
}

// process handles one message and commits it whatever the outcome, so a
// poison message cannot stall the partition.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	start := time.Now()
	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&msg.Headers))
	ctx, span := otel.Tracer(consumerTracerName).Start(ctx, "kafka.consume "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()
	defer c.commit(ctx, msg)

	event, err := UnmarshalEvent(msg.Value)
	if err != nil {
		c.metrics.incFailed(c.topic, c.group)
		span.SetStatus(codes.Error, "decode event")
		c.logger.ErrorContext(ctx, "failed to decode event",
			slog.String("error", err.Error()),
			slog.Int64("offset", msg.Offset),
		)
		return
	}
	if event.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, event.CorrelationID)
	}

	err = c.handleWithRetry(ctx, event, msg)
	switch {
	case err == nil:
		c.metrics.observeProcessed(c.topic, c.group, time.Since(start).Seconds())
	case errors.Is(err, ErrDuplicateEvent):
		c.metrics.incDuplicate(c.topic, c.group)
	default:
		c.metrics.incFailed(c.topic, c.group)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.ErrorContext(ctx, "handler failed after all retries, skipping message",
			slog.String("event_type", event.EventType),
			slog.String("aggregate_id", event.AggregateID),
			slog.String("error", err.Error()),
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
		)
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, event *Event, msg kafka.Message) error {
	var err error
	for attempt := 1; attempt <= maxHandlerRetries; attempt++ {
		err = c.handler(ctx, event)
		if err == nil || errors.Is(err, ErrDuplicateEvent) {
			return err
		}
		c.logger.WarnContext(ctx, "handler failed, will retry",
			slog.String("event_type", event.EventType),
			slog.String("error", err.Error()),
			slog.Int64("offset", msg.Offset),
			slog.Int("attempt", attempt),
		)
		if attempt == maxHandlerRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("handler retry interrupted: %w", ctx.Err())
		case <-time.After(c.backoff(attempt)):
		}
	}
	return err
}

// commit is skipped on shutdown so the message is redelivered to the next member.
func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if ctx.Err() != nil {
		return
	}
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("failed to commit message",
			slog.String("error", err.Error()),
			slog.Int64("offset", msg.Offset),
		)
	}
}

// Close closes the reader. It is safe to call multiple times.
func (c *Consumer) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.reader.Close()
	})
	return err
}

// TopicPrefix namespaces every topic this module reads or writes.
const TopicPrefix = "storefront"

// Topic builds "storefront.<domain>.<action>".
func Topic(domain, action string) string {
	return fmt.Sprintf("%s.%s.%s", TopicPrefix, domain, action)
}
