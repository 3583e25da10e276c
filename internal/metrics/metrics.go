// Package metrics provides application-level counters using stdlib expvar.
// Counters are automatically exported on the /debug/vars HTTP endpoint
// served by the local API.
package metrics

import "expvar"

// Feed pipeline counters.
var (
	FeedRefreshTotal      = expvar.NewInt("lumina_feed_refresh_total")
	FeedFallbackFixtures  = expvar.NewInt("lumina_feed_fallback_fixtures_total")
	FeedFallbackGenerated = expvar.NewInt("lumina_feed_fallback_generated_total")
	FeedEmptyTotal        = expvar.NewInt("lumina_feed_empty_total")
	AdapterCallsTotal     = expvar.NewInt("lumina_adapter_calls_total")
	AdapterFailuresTotal  = expvar.NewInt("lumina_adapter_failures_total")
	DedupDropped          = expvar.NewInt("lumina_dedup_dropped_total")
)

// AI and enrichment counters.
var (
	ExpansionFailures   = expvar.NewInt("lumina_expansion_failures_total")
	GenerationFailures  = expvar.NewInt("lumina_generation_failures_total")
	ThreadContextTotal  = expvar.NewInt("lumina_thread_context_total")
	CommentsRejected    = expvar.NewInt("lumina_comments_rejected_total")
	ItemsEnriched       = expvar.NewInt("lumina_items_enriched_total")
	IdentityGraphSaves  = expvar.NewInt("lumina_identity_graph_saves_total")
	StoreCorruptEntries = expvar.NewInt("lumina_store_corrupt_entries_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Add increments the given counter by n.
func Add(counter *expvar.Int, n int) { counter.Add(int64(n)) }
