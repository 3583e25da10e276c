// Package aggregator merges adapter results into one ordered feed.
package aggregator

import (
	"sort"

	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
)

// Shuffler permutes n elements uniformly; *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Aggregate flattens results in the given order, drops later duplicates of
// an id and applies the ordering for sortBy:
//
//	top     likes descending
//	latest  timestamp descending
//	random  uniform permutation via rnd
//
// Ties in top and latest are broken by id ascending. An unknown sort option
// behaves like random. The result is never nil.
func Aggregate(results [][]models.FeedItem, sortBy models.SortOption, rnd Shuffler) []models.FeedItem {
	items := Dedupe(Flatten(results))

	switch sortBy {
	case models.SortTop:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Likes != items[j].Likes {
				return items[i].Likes > items[j].Likes
			}
			return items[i].ID < items[j].ID
		})
	case models.SortLatest:
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].Timestamp.Equal(items[j].Timestamp) {
				return items[i].Timestamp.After(items[j].Timestamp)
			}
			return items[i].ID < items[j].ID
		})
	default:
		if rnd != nil {
			rnd.Shuffle(len(items), func(i, j int) {
				items[i], items[j] = items[j], items[i]
			})
		}
	}
	return items
}

// Flatten concatenates results preserving order.
func Flatten(results [][]models.FeedItem) []models.FeedItem {
	n := 0
	for _, r := range results {
		n += len(r)
	}
	out := make([]models.FeedItem, 0, n)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// Dedupe keeps the first occurrence of every id. The input is not modified.
func Dedupe(items []models.FeedItem) []models.FeedItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.FeedItem, 0, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; dup {
			continue
		}
		seen[items[i].ID] = struct{}{}
		out = append(out, items[i])
	}
	if dropped := len(items) - len(out); dropped > 0 {
		metrics.Add(metrics.DedupDropped, dropped)
	}
	return out
}
