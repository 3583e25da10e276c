package models

import "strings"

// SortOption selects the ordering applied to an aggregated feed.
type SortOption string

const (
	SortLatest SortOption = "latest"
	SortTop    SortOption = "top"
	SortRandom SortOption = "random"
)

// IsValid returns true if the sort option is recognized.
func (s SortOption) IsValid() bool {
	return s == SortLatest || s == SortTop || s == SortRandom
}

// FilterState is the transient selection that drives the query planner.
type FilterState struct {
	Persons     []string   `json:"persons"`
	Sources     []string   `json:"sources"`
	Tags        []string   `json:"tags"`
	SearchQuery string     `json:"searchQuery"`
	SortBy      SortOption `json:"sortBy"`
}

// InitialFilters returns the filter state a fresh session starts with.
func InitialFilters() FilterState {
	return FilterState{
		Persons: []string{},
		Sources: []string{},
		Tags:    []string{},
		SortBy:  SortRandom,
	}
}

// IsEmpty reports whether nothing at all is selected (exploration mode).
func (f FilterState) IsEmpty() bool {
	return len(f.Persons) == 0 && len(f.Sources) == 0 && len(f.Tags) == 0 &&
		strings.TrimSpace(f.SearchQuery) == ""
}

// Clone returns a deep copy so saved snapshots never alias session state.
func (f FilterState) Clone() FilterState {
	out := f
	out.Persons = cloneStrings(f.Persons)
	out.Sources = cloneStrings(f.Sources)
	out.Tags = cloneStrings(f.Tags)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// SavedBoard is a named, persisted filter snapshot.
type SavedBoard struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Filters   FilterState `json:"filters"`
	CreatedAt int64       `json:"createdAt"`
}

// Theme is the UI theme selector.
type Theme string

const (
	ThemeDefault  Theme = "default"
	ThemeKanagawa Theme = "kanagawa"
)

// IsValid returns true if the theme is recognized.
func (t Theme) IsValid() bool {
	return t == ThemeDefault || t == ThemeKanagawa
}
