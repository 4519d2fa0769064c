package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventMessage(t *testing.T, offset int64, eventID string) kafka.Message {
	t.Helper()
	e, err := NewEvent("product.updated", "p-1", "product", "test", nil)
	require.NoError(t, err)
	if eventID != "" {
		e.EventID = eventID
	}
	raw, err := e.Marshal()
	require.NoError(t, err)
	return kafka.Message{Topic: "storefront.catalog.changed", Offset: offset, Value: raw}
}

// runConsumer runs c until the fake reader is drained and returns.
func runConsumer(t *testing.T, r *fakeReader, c *Consumer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	r.onDrained = cancel

	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestConsumer_ProcessesAndCommits(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 1, ""), eventMessage(t, 2, "")}}
	m := newTestMetrics(t)

	var handled int32
	c := newConsumer(r, "storefront.catalog.changed", "storefront", func(context.Context, *Event) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}, m, discardLogger())

	runConsumer(t, r, c)

	assert.EqualValues(t, 2, atomic.LoadInt32(&handled))
	assert.Len(t, r.committed, 2)
	assert.Equal(t, 1, r.closed)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.processed.WithLabelValues("storefront.catalog.changed", "storefront")))
}

func TestConsumer_PoisonMessageSkippedAfterRetries(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 7, "")}}
	m := newTestMetrics(t)

	var attempts int32
	c := newConsumer(r, "t", "g", func(context.Context, *Event) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("redis down")
	}, m, discardLogger())
	c.backoff = func(int) time.Duration { return time.Millisecond }

	runConsumer(t, r, c)

	assert.EqualValues(t, maxHandlerRetries, atomic.LoadInt32(&attempts))
	require.Len(t, r.committed, 1)
	assert.EqualValues(t, 7, r.committed[0].Offset)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failed.WithLabelValues("t", "g")))
}

func TestConsumer_UndecodableMessageCommitted(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{{Topic: "t", Offset: 3, Value: []byte("garbage")}}}
	called := false
	c := newConsumer(r, "t", "g", func(context.Context, *Event) error {
		called = true
		return nil
	}, nil, discardLogger())

	runConsumer(t, r, c)

	assert.False(t, called)
	assert.Len(t, r.committed, 1)
}

func TestConsumer_DuplicatesCounted(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{eventMessage(t, 1, "evt-1"), eventMessage(t, 2, "evt-1")}}
	m := newTestMetrics(t)

	var handled int32
	inner := func(context.Context, *Event) error {
		atomic.AddInt32(&handled, 1)
		return nil
	}
	store := NewMemoryIdempotencyStore(time.Hour)
	c := newConsumer(r, "t", "g", IdempotentHandler(store, inner, discardLogger()), m, discardLogger())

	runConsumer(t, r, c)

	assert.EqualValues(t, 1, atomic.LoadInt32(&handled))
	assert.Len(t, r.committed, 2)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.duplicate.WithLabelValues("t", "g")))
}

func TestConsumer_CloseIdempotent(t *testing.T) {
	r := &fakeReader{}
	c := newConsumer(r, "t", "g", nil, nil, discardLogger())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, r.closed)
}
