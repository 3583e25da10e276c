package fixtures

import (
	"strings"

	"github.com/ajitpratap0/lumina/internal/models"
)

// Match filters items by the same predicates used for live filtering.
// Each non-empty predicate group must match (AND across groups, OR within a
// group); comparisons are case-insensitive substring checks with "r/" and "#"
// prefixes stripped from the filter values.
func Match(items []models.FeedItem, f models.FilterState) []models.FeedItem {
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	out := make([]models.FeedItem, 0)
	for i := range items {
		it := &items[i]
		if matchSources(it, f.Sources) && matchPersons(it, f.Persons) &&
			matchTags(it, f.Tags) && matchQuery(it, query) {
			out = append(out, *it)
		}
	}
	return out
}

func matchSources(it *models.FeedItem, sources []string) bool {
	if len(sources) == 0 {
		return true
	}
	src := strings.ToLower(it.Source)
	for _, s := range sources {
		if strings.Contains(src, stripPrefix(strings.ToLower(s), "r/")) {
			return true
		}
	}
	return false
}

func matchPersons(it *models.FeedItem, persons []string) bool {
	if len(persons) == 0 {
		return true
	}
	for _, p := range persons {
		p = strings.ToLower(strings.TrimSpace(p))
		if strings.Contains(strings.ToLower(it.Author.Name), p) ||
			strings.Contains(strings.ToLower(it.Caption), p) ||
			anyTagContains(it.Tags, p) {
			return true
		}
	}
	return false
}

func matchTags(it *models.FeedItem, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		t = stripPrefix(strings.ToLower(strings.TrimSpace(t)), "#")
		if anyTagContains(it.Tags, t) || strings.Contains(strings.ToLower(it.Caption), t) {
			return true
		}
	}
	return false
}

func matchQuery(it *models.FeedItem, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Caption), query) ||
		strings.Contains(strings.ToLower(it.Source), query) ||
		anyTagContains(it.Tags, query)
}

func anyTagContains(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func stripPrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}
