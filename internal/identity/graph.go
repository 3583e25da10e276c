// Package identity owns the curated identity graph: a persisted mapping of
// profile id to IdentityProfile used to resolve free-text person filters.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/store"
)

// StorageKey is the KV key holding the graph snapshot.
const StorageKey = "lumina_identity_graph"

var (
	// ErrNotObject is returned by Import when the document is not a JSON object.
	ErrNotObject = errors.New("identity graph document is not a JSON object")
	// ErrNotFound is returned when a profile id does not exist.
	ErrNotFound = errors.New("identity not found")
	// ErrInvalidProfile is returned by Put for a profile without an id or
	// with a source link on an unknown platform.
	ErrInvalidProfile = errors.New("invalid identity profile")
)

// Intner picks uniform random indexes; *rand.Rand satisfies it.
type Intner interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Snapshot is the whole graph keyed by profile id.
type Snapshot = map[string]models.IdentityProfile

// Option configures a Graph.
type Option func(*Graph)

// WithRand injects the random source used by PickImage.
func WithRand(r Intner) Option {
	return func(g *Graph) {
		if r != nil {
			g.rnd = r
		}
	}
}

// Graph reads and writes the identity graph through a KV store and notifies
// subscribers after every save.
type Graph struct {
	kv     store.KV
	logger *slog.Logger
	rnd    Intner

	// mu serializes read-modify-write cycles; last save wins.
	mu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewGraph creates a Graph backed by kv.
func NewGraph(kv store.KV, logger *slog.Logger, opts ...Option) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Graph{
		kv:     kv,
		logger: logger,
		rnd:    globalRand{},
		subs:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get returns the persisted graph, or the built-in default set when nothing
// is stored or the stored snapshot is unreadable.
func (g *Graph) Get(ctx context.Context) Snapshot {
	raw, err := g.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Warn("reading identity graph, using defaults", "error", err)
		}
		return fixtures.Identities()
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap == nil {
		metrics.Inc(metrics.StoreCorruptEntries)
		g.logger.Warn("corrupt identity graph snapshot, using defaults", "error", err)
		return fixtures.Identities()
	}
	return snap
}

// Save replaces the persisted graph wholesale and notifies subscribers.
func (g *Graph) Save(ctx context.Context, snap Snapshot) error {
	g.mu.Lock()
	err := g.save(ctx, snap)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify(snap)
	return nil
}

func (g *Graph) save(ctx context.Context, snap Snapshot) error {
	if snap == nil {
		snap = Snapshot{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding identity graph: %w", err)
	}
	if err := g.kv.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("saving identity graph: %w", err)
	}
	metrics.Inc(metrics.IdentityGraphSaves)
	g.logger.Debug("identity graph saved", "profiles", len(snap))
	return nil
}

// Subscribe registers fn to be called with the new snapshot after every save.
// The returned function removes the subscription.
func (g *Graph) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	return func() {
		g.subMu.Lock()
		defer g.subMu.Unlock()
		delete(g.subs, id)
	}
}

func (g *Graph) notify(snap Snapshot) {
	g.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(g.subs))
	for _, fn := range g.subs {
		fns = append(fns, fn)
	}
	g.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// List returns all profiles sorted by id.
func (g *Graph) List(ctx context.Context) []models.IdentityProfile {
	return sortedProfiles(g.Get(ctx))
}

// Lookup returns the profile with the given id.
func (g *Graph) Lookup(ctx context.Context, id string) (models.IdentityProfile, error) {
	p, ok := g.Get(ctx)[id]
	if !ok {
		return models.IdentityProfile{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// Put inserts or replaces one profile.
func (g *Graph) Put(ctx context.Context, p models.IdentityProfile) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProfile)
	}
	for _, link := range p.Sources {
		if !link.Platform.IsValid() {
			return fmt.Errorf("%w: unknown platform %q", ErrInvalidProfile, link.Platform)
		}
	}
	g.mu.Lock()
	snap := g.Get(ctx)
	snap[p.ID] = p
	err := g.save(ctx, snap)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify(snap)
	return nil
}

// Delete removes one profile by id.
func (g *Graph) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	snap := g.Get(ctx)
	if _, ok := snap[id]; !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(snap, id)
	err := g.save(ctx, snap)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify(snap)
	return nil
}

// FindByText returns the first profile, in id order, with an alias contained
// in query. Matching is case-insensitive.
func (g *Graph) FindByText(ctx context.Context, query string) (*models.IdentityProfile, bool) {
	return findIn(g.Get(ctx), query)
}

func findIn(snap Snapshot, query string) (*models.IdentityProfile, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil, false
	}
	for _, p := range sortedProfiles(snap) {
		for _, alias := range p.Aliases {
			a := strings.ToLower(strings.TrimSpace(alias))
			if a != "" && strings.Contains(normalized, a) {
				return &p, true
			}
		}
	}
	return nil, false
}

// PickImage returns a uniformly random image of the profile, or of the
// general pool when the profile is unknown or has no images.
func (g *Graph) PickImage(ctx context.Context, id string) string {
	pool := fixtures.GeneralImages()
	if p, ok := g.Get(ctx)[id]; ok && len(p.ImagePool) > 0 {
		pool = p.ImagePool
	}
	return pool[g.rnd.IntN(len(pool))]
}

// PromptContext emits one line per resolvable person describing what to focus
// on and which handles to imitate. Unresolved names are skipped.
func (g *Graph) PromptContext(ctx context.Context, names []string) string {
	snap := g.Get(ctx)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		p, ok := findIn(snap, name)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("For %s, focus on: %s. Use handles like %s or subreddit r/%s.",
			p.Name,
			strings.Join(p.ContextKeywords, ", "),
			p.FirstSource(models.PlatformInstagram),
			p.FirstSource(models.PlatformReddit)))
	}
	return strings.Join(lines, "\n")
}

// DisplayName returns the profile name for id, or id itself when the profile
// does not exist (dangling relationship targets).
func (g *Graph) DisplayName(ctx context.Context, id string) string {
	if p, ok := g.Get(ctx)[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}

// Export writes the graph as an indented JSON object.
func (g *Graph) Export(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Get(ctx)); err != nil {
		return fmt.Errorf("exporting identity graph: %w", err)
	}
	return nil
}

// Import replaces the graph with the JSON object read from r. Documents that
// are not a JSON object fail with ErrNotObject; no further schema validation
// is applied.
func (g *Graph) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading identity graph document: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return ErrNotObject
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	g.logger.Info("importing identity graph", "profiles", len(snap))
	return g.Save(ctx, snap)
}

func sortedProfiles(snap Snapshot) []models.IdentityProfile {
	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.IdentityProfile, 0, len(ids))
	for _, id := range ids {
		out = append(out, snap[id])
	}
	return out
}
