package feed

import (
	"reflect"
	"testing"

	"github.com/pixelpost/pixelpost/app/headlines"
)

func TestProject_DateFilter(t *testing.T) {
	articles := []headlines.Article{
		{URL: "a", PublishedAt: ts("2024-01-15T10:00:00Z")},
		{URL: "b", PublishedAt: ts("2024-01-16T10:00:00Z")},
	}

	result := Project(articles, "", "2024-01-15")

	if len(result) != 1 || result[0].URL != "a" {
		t.Errorf("Expected only article 'a' to match 2024-01-15, got %+v", result)
	}
}

func TestProject_DateFilterRequiresTimestamp(t *testing.T) {
	articles := []headlines.Article{
		{URL: "a", PublishedAt: ts("2024-01-15T23:30:00Z")},
		{URL: "b"}, // no published timestamp
	}

	result := Project(articles, "", "2024-01-15")

	if len(result) != 1 || result[0].URL != "a" {
		t.Errorf("Expected articles without publishedAt to never match a date filter, got %+v", result)
	}
}

func TestProject_SearchFilter(t *testing.T) {
	articles := []headlines.Article{
		{URL: "a", Title: "Election results"},
		{URL: "b", Title: "Weather today"},
	}

	result := Project(articles, "election", "")

	if len(result) != 1 || result[0].URL != "a" {
		t.Errorf("Expected only the election article to match, got %+v", result)
	}
}

func TestProject_SearchMatchesAnyTextField(t *testing.T) {
	articles := []headlines.Article{
		{URL: "title", Title: "Elections ahead"},
		{URL: "description", Description: "An election preview"},
		{URL: "content", Content: "The election was held on Monday."},
		{URL: "none", Title: "Weather", Description: "Sunny", Content: "Rain later"},
	}

	result := Project(articles, "election", "")

	if len(result) != 3 {
		t.Fatalf("Expected 3 matches across title/description/content, got %d", len(result))
	}
	for _, a := range result {
		if a.URL == "none" {
			t.Error("Expected non-matching article to be excluded")
		}
	}
}

func TestProject_SearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	articles := []headlines.Article{
		{URL: "a", Title: "ELECTION Results"},
	}

	result := Project(articles, "  eLeCtIoN  ", "")

	if len(result) != 1 {
		t.Errorf("Expected a trimmed, case-insensitive match, got %d results", len(result))
	}
}

func TestProject_EmptyFiltersPassEverything(t *testing.T) {
	articles := []headlines.Article{{URL: "a"}, {URL: "b"}}

	result := Project(articles, "", "")

	if len(result) != 2 {
		t.Errorf("Expected all articles with no filters, got %d", len(result))
	}
}

func TestProject_CombinedFilters(t *testing.T) {
	articles := []headlines.Article{
		{URL: "a", Title: "Election results", PublishedAt: ts("2024-01-15T10:00:00Z")},
		{URL: "b", Title: "Election preview", PublishedAt: ts("2024-01-16T10:00:00Z")},
		{URL: "c", Title: "Weather today", PublishedAt: ts("2024-01-15T10:00:00Z")},
	}

	result := Project(articles, "election", "2024-01-15")

	if len(result) != 1 || result[0].URL != "a" {
		t.Errorf("Expected both predicates to apply, got %+v", result)
	}
}

func TestProjector_MemoizesOnInputs(t *testing.T) {
	projector := NewProjector()
	state := State{
		Articles: []headlines.Article{{URL: "a", Title: "Election results"}},
		Version:  7,
	}

	first := projector.Project(state, "election", "")
	second := projector.Project(state, "election", "")

	if reflect.ValueOf(first).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Error("Expected identical inputs to return the cached projection")
	}

	// A new state version invalidates the cache.
	state.Version = 8
	third := projector.Project(state, "election", "")
	if len(third) != 1 {
		t.Errorf("Expected recomputed projection to match, got %d results", len(third))
	}

	// So does a changed predicate.
	fourth := projector.Project(state, "weather", "")
	if len(fourth) != 0 {
		t.Errorf("Expected no matches for a changed search, got %d", len(fourth))
	}
}
