package metrics

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInc(t *testing.T) {
	before := FeedRefreshTotal.Value()
	Inc(FeedRefreshTotal)
	assert.Equal(t, before+1, FeedRefreshTotal.Value())
}

func TestAdd(t *testing.T) {
	before := DedupDropped.Value()
	Add(DedupDropped, 3)
	assert.Equal(t, before+3, DedupDropped.Value())
}

func TestCountersPublished(t *testing.T) {
	for _, name := range []string{
		"lumina_feed_refresh_total",
		"lumina_adapter_failures_total",
		"lumina_comments_rejected_total",
	} {
		assert.NotNil(t, expvar.Get(name), name)
	}
}
