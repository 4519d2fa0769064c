package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "existing", Value: []byte("v1")}}
	c := NewHeaderCarrier(&headers)

	assert.Equal(t, "v1", c.Get("existing"))
	assert.Empty(t, c.Get("missing"))

	c.Set("traceparent", "00-abc-def-01")
	c.Set("existing", "v2")

	assert.Equal(t, "v2", c.Get("existing"))
	assert.Equal(t, []string{"existing", "traceparent"}, c.Keys())
	assert.Len(t, headers, 2)
}
