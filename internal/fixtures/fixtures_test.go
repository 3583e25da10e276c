package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lumina/internal/models"
)

func ids(items []models.FeedItem) []string {
	out := make([]string, 0, len(items))
	for i := range items {
		out = append(out, items[i].ID)
	}
	return out
}

func TestMatch(t *testing.T) {
	items := FeedItems(time.Now())

	tests := []struct {
		name    string
		filters models.FilterState
		want    []string
	}{
		{"empty filter keeps all", models.InitialFilters(), []string{"lulu-shrug-1", "lulu-discussion-1", "laufey-christmas-1", "taylor-eras-1"}},
		{"source strips r/", models.FilterState{Sources: []string{"r/Laufey"}}, []string{"laufey-christmas-1"}},
		{"person on author", models.FilterState{Persons: []string{"Taylor Swift"}}, []string{"taylor-eras-1"}},
		{"person on tag", models.FilterState{Persons: []string{"lauvers"}}, []string{"laufey-christmas-1"}},
		{"tag strips #", models.FilterState{Tags: []string{"#Discussion"}}, []string{"lulu-discussion-1"}},
		{"query on caption", models.FilterState{SearchQuery: "  PINK "}, []string{"lulu-shrug-1"}},
		{"groups are ANDed", models.FilterState{Sources: []string{"r/lululemon"}, Tags: []string{"#christmas"}}, []string{}},
		{"no match", models.FilterState{Persons: []string{"nobody"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Match(items, tt.filters)))
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := Identities()
	p := g["taylor-swift"]
	p.Aliases[0] = "mutated"
	assert.Equal(t, "taylor swift", Identities()["taylor-swift"].Aliases[0])

	b := Boards()
	b[0].Filters.Sources[0] = "mutated"
	assert.Equal(t, "r/lululemon", Boards()[0].Filters.Sources[0])
}

func TestDefaults(t *testing.T) {
	g := Identities()
	require.Len(t, g, 4)
	for id, p := range g {
		assert.Equal(t, id, p.ID)
	}
	_, ok := g[g["taylor-swift"].Relationships[0].TargetID]
	assert.False(t, ok, "dangling relationship is part of the demo data")

	assert.Len(t, GeneralImages(), 3)
	assert.Equal(t, []string{"#zit", "#z-image-turbo", "#LocalLLaMA"}, FollowedTags())
	assert.NotNil(t, Tasks()[0].EstPrice)
	assert.NotEmpty(t, Library(time.Now())[0].Content)
	assert.Equal(t, models.DraftDrafting, Drafts(time.Now())[0].Status)
}
