package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolStatsCollector(t *testing.T) {
	c := NewPoolStatsCollector(nil, "storefront")
	require.NotNil(t, c)
	assert.Equal(t, "storefront", c.service)

	var _ prometheus.Collector = c
}

func TestPoolStatsCollector_Describe(t *testing.T) {
	c := NewPoolStatsCollector(nil, "storefront")

	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)

	var n int
	for range ch {
		n++
	}
	assert.Equal(t, 8, n)
}

func TestRegisterPoolMetrics_DuplicateRejected(t *testing.T) {
	reg := prometheus.NewRegistry()

	require.NoError(t, RegisterPoolMetrics(reg, nil, "storefront"))
	assert.Error(t, RegisterPoolMetrics(reg, nil, "storefront"))
}
