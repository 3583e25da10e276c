// Package planner turns a FilterState into the set of adapter calls that make
// up one feed refresh.
package planner

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/source"
)

// DefaultExplorePool is sampled when no filter is selected.
var DefaultExplorePool = []string{
	"LocalLLaMA", "SillyTavernAI", "ArtificialInteligence", "unixporn",
	"Midjourney", "StableDiffusion", "AnimeFigures", "ClassroomOfTheElite",
}

const (
	explorePicks = 3
	// DefaultExploreProbability is the chance of adding an imageboard to exploration mode.
	DefaultExploreProbability = 0.2
	exploreBoard              = "g"
)

// slangTags are tags that also pull in the 4chan /b/ catalog.
var slangTags = map[string]bool{"irl": true, "b": true, "gif": true, "wsg": true}

// Directive is one adapter call. Terms filter imageboard catalogs.
type Directive struct {
	Source source.Descriptor `json:"source"`
	Terms  []string          `json:"terms,omitempty"`
}

// Resolver resolves a free-text person name to an identity.
type Resolver interface {
	FindByText(ctx context.Context, query string) (*models.IdentityProfile, bool)
}

// Expander suggests subreddits and a refined search term for a query.
type Expander interface {
	ExpandQuery(ctx context.Context, query string) (subreddits []string, refined string, err error)
}

// Rand is the random source used in exploration mode; *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// globalRand uses the package-level generator, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Option configures a Planner.
type Option func(*Planner)

// WithExpander enables AI query expansion.
func WithExpander(e Expander) Option {
	return func(p *Planner) { p.expander = e }
}

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(p *Planner) {
		if r != nil {
			p.rnd = r
		}
	}
}

// WithExploreProbability sets the chance of the exploration imageboard fetch.
func WithExploreProbability(prob float64) Option {
	return func(p *Planner) { p.exploreProb = prob }
}

// Planner evaluates the planning rules. All applicable rules contribute
// directives; none excludes another.
type Planner struct {
	identities  Resolver
	expander    Expander
	rnd         Rand
	exploreProb float64
	logger      *slog.Logger
}

// New creates a Planner. identities may be nil, in which case person filters
// produce no directives.
func New(identities Resolver, logger *slog.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Planner{
		identities:  identities,
		rnd:         globalRand{},
		exploreProb: DefaultExploreProbability,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the directives for f in rule order: persons, sources, tags,
// search query, exploration. A descriptor planned by an earlier rule is not
// repeated; all imageboard directives of one plan share the same terms.
func (p *Planner) Plan(ctx context.Context, f models.FilterState) []Directive {
	terms := filterTerms(f)
	var out []Directive
	seen := make(map[string]bool)
	add := func(d source.Descriptor) {
		key := d.Key()
		if seen[key] {
			return
		}
		seen[key] = true
		dir := Directive{Source: d}
		if d.Kind == source.KindImageboard && len(terms) > 0 {
			dir.Terms = append([]string(nil), terms...)
		}
		out = append(out, dir)
	}

	if p.identities != nil {
		for _, name := range f.Persons {
			profile, ok := p.identities.FindByText(ctx, name)
			if !ok {
				p.logger.Debug("person not in identity graph", "person", name)
				continue
			}
			for _, link := range profile.VisibleSources() {
				if d, ok := source.FromLink(link); ok {
					add(d)
				}
			}
		}
	}

	for _, s := range f.Sources {
		if d, ok := source.Parse(s); ok {
			add(d)
		} else {
			p.logger.Debug("source has no live adapter", "source", s)
		}
	}

	for _, tag := range f.Tags {
		clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if clean == "" {
			continue
		}
		add(source.Search(clean))
		if slangTags[strings.ToLower(clean)] {
			add(source.Imageboard(source.FourChanDomain, source.DefaultFourChanBoard))
		}
	}

	if strings.TrimSpace(f.SearchQuery) != "" {
		add(source.Search(f.SearchQuery))
		p.expand(ctx, f.SearchQuery, add)
	}

	if f.IsEmpty() {
		for _, sub := range p.pick(DefaultExplorePool, explorePicks) {
			add(source.Subreddit(sub))
		}
		if p.rnd.Float64() < p.exploreProb {
			out = append(out, Directive{Source: source.Imageboard(source.FourChanDomain, exploreBoard)})
		}
	}

	if out == nil {
		out = []Directive{}
	}
	return out
}

func (p *Planner) expand(ctx context.Context, query string, add func(source.Descriptor)) {
	if p.expander == nil {
		return
	}
	subs, refined, err := p.expander.ExpandQuery(ctx, query)
	if err != nil {
		metrics.Inc(metrics.ExpansionFailures)
		p.logger.Warn("query expansion failed", "query", query, "error", err)
		return
	}
	for _, sub := range subs {
		d := source.Subreddit(sub)
		if d.Subreddit != "" {
			add(d)
		}
	}
	if refined = strings.TrimSpace(refined); refined != "" && refined != query {
		add(source.Search(refined))
	}
}

// pick returns n distinct entries of pool chosen uniformly at random.
func (p *Planner) pick(pool []string, n int) []string {
	cp := append([]string(nil), pool...)
	if n > len(cp) {
		n = len(cp)
	}
	for i := 0; i < n; i++ {
		j := i + p.rnd.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}

// filterTerms are the lowercased tags (without "#") plus the lowercased query.
func filterTerms(f models.FilterState) []string {
	terms := make([]string, 0, len(f.Tags)+1)
	for _, t := range f.Tags {
		if t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))); t != "" {
			terms = append(terms, t)
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.SearchQuery)); q != "" {
		terms = append(terms, q)
	}
	return terms
}
