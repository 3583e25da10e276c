package aggregator

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lumina/internal/models"
)

func item(id string, likes int64, ts time.Time) models.FeedItem {
	return models.FeedItem{ID: id, Likes: likes, Timestamp: ts, Caption: "c-" + id}
}

func ids(items []models.FeedItem) []string {
	out := make([]string, 0, len(items))
	for i := range items {
		out = append(out, items[i].ID)
	}
	return out
}

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleResults() [][]models.FeedItem {
	return [][]models.FeedItem{
		{item("a", 5, base.Add(1*time.Hour)), item("b", 50, base.Add(3*time.Hour))},
		{},
		{item("a", 999, base.Add(9*time.Hour)), item("c", 50, base), item("d", 1, base.Add(3*time.Hour))},
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	out := Dedupe(Flatten(sampleResults()))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(out))
	assert.Equal(t, int64(5), out[0].Likes)
}

func TestDedupe_Idempotent(t *testing.T) {
	once := Dedupe(Flatten(sampleResults()))
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestAggregate_NoDuplicateIDs(t *testing.T) {
	for _, s := range []models.SortOption{models.SortTop, models.SortLatest, models.SortRandom} {
		out := Aggregate(sampleResults(), s, rand.New(rand.NewPCG(1, 2)))
		seen := map[string]bool{}
		for _, it := range out {
			require.False(t, seen[it.ID], "duplicate %s for %s", it.ID, s)
			seen[it.ID] = true
		}
		assert.Len(t, out, 4)
	}
}

func TestAggregate_TopNonIncreasingWithIDTieBreak(t *testing.T) {
	out := Aggregate(sampleResults(), models.SortTop, nil)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(out))
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Likes, out[i].Likes)
	}
}

func TestAggregate_LatestNonIncreasingWithIDTieBreak(t *testing.T) {
	out := Aggregate(sampleResults(), models.SortLatest, nil)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(out))
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].Timestamp.After(out[i-1].Timestamp))
	}
}

func TestAggregate_RandomReachesDifferentOrders(t *testing.T) {
	results := [][]models.FeedItem{{
		item("1", 0, base), item("2", 0, base), item("3", 0, base),
	}}
	rnd := rand.New(rand.NewPCG(42, 7))
	orders := map[string]bool{}
	for range 200 {
		orders[strings.Join(ids(Aggregate(results, models.SortRandom, rnd)), ",")] = true
	}
	assert.Len(t, orders, 6, "all 3! permutations should appear")
}

func TestAggregate_RandomTwoItemsNotFixed(t *testing.T) {
	results := [][]models.FeedItem{{item("x", 0, base), item("y", 0, base)}}
	rnd := rand.New(rand.NewPCG(3, 4))
	first := 0
	const runs = 100
	for range runs {
		if Aggregate(results, models.SortRandom, rnd)[0].ID == "x" {
			first++
		}
	}
	assert.Greater(t, first, 0)
	assert.Less(t, first, runs)
}

func TestAggregate_EmptyNeverNil(t *testing.T) {
	out := Aggregate(nil, models.SortTop, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	results := sampleResults()
	_ = Aggregate(results, models.SortTop, nil)
	assert.Equal(t, "a", results[0][0].ID)
	assert.Equal(t, "b", results[0][1].ID)
}
