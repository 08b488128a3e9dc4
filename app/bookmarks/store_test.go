package bookmarks

import (
	"errors"
	"sync"
	"testing"

	"github.com/pixelpost/pixelpost/app/headlines"
)

type fakeLocalState struct {
	mu      sync.Mutex
	values  map[string]string
	sets    int
	failGet bool
}

func newFakeLocalState() *fakeLocalState {
	return &fakeLocalState{values: make(map[string]string)}
}

func (f *fakeLocalState) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", false, errors.New("storage unavailable")
	}
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *fakeLocalState) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.sets++
	return nil
}

func article(url string) headlines.Article {
	return headlines.Article{URL: url, Title: url}
}

func TestStore_ToggleInsertsAtHead(t *testing.T) {
	store := NewStore(newFakeLocalState())

	if added, err := store.Toggle(article("https://example.com/1")); err != nil || !added {
		t.Fatalf("Expected first toggle to add, got added=%v err=%v", added, err)
	}
	if added, err := store.Toggle(article("https://example.com/2")); err != nil || !added {
		t.Fatalf("Expected second toggle to add, got added=%v err=%v", added, err)
	}

	records := store.List()
	if len(records) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(records))
	}
	if records[0].URL != "https://example.com/2" {
		t.Errorf("Expected the newest bookmark at the head, got %s", records[0].URL)
	}
	if records[0].ExtractionStatus != ExtractionPending {
		t.Errorf("Expected new bookmarks to await extraction, got %q", records[0].ExtractionStatus)
	}
}

func TestStore_ToggleTwiceRestoresMembership(t *testing.T) {
	store := NewStore(newFakeLocalState())

	store.Toggle(article("https://example.com/keep"))

	if added, _ := store.Toggle(article("https://example.com/1")); !added {
		t.Fatal("Expected the toggle to add")
	}
	if added, _ := store.Toggle(article("https://example.com/1")); added {
		t.Fatal("Expected the second toggle to remove")
	}

	if store.Contains("https://example.com/1") {
		t.Error("Expected the article to be gone after a double toggle")
	}
	if !store.Contains("https://example.com/keep") {
		t.Error("Expected unrelated bookmarks to be untouched")
	}
}

func TestStore_WritesThroughOnEveryMutation(t *testing.T) {
	repo := newFakeLocalState()
	store := NewStore(repo)

	store.Toggle(article("https://example.com/1"))
	store.Toggle(article("https://example.com/2"))
	store.Toggle(article("https://example.com/1"))

	if repo.sets != 3 {
		t.Errorf("Expected 3 write-throughs, got %d", repo.sets)
	}
}

func TestStore_RoundTripPreservesMembership(t *testing.T) {
	repo := newFakeLocalState()
	store := NewStore(repo)

	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	for _, url := range urls {
		store.Toggle(article(url))
	}

	reloaded := NewStore(repo)
	if reloaded.Count() != len(urls) {
		t.Fatalf("Expected %d bookmarks after reload, got %d", len(urls), reloaded.Count())
	}
	for _, url := range urls {
		if !reloaded.Contains(url) {
			t.Errorf("Expected %s to survive the round trip", url)
		}
	}
}

func TestStore_CorruptPayloadFallsBackToEmpty(t *testing.T) {
	repo := newFakeLocalState()
	repo.values[storageKey] = "{not json"

	store := NewStore(repo)
	if store.Count() != 0 {
		t.Errorf("Expected an empty set for a corrupt payload, got %d", store.Count())
	}
}

func TestStore_ReadFailureFallsBackToEmpty(t *testing.T) {
	repo := newFakeLocalState()
	repo.failGet = true

	store := NewStore(repo)
	if store.Count() != 0 {
		t.Errorf("Expected an empty set when storage is unreadable, got %d", store.Count())
	}
}

func TestStore_ExtractionLifecycle(t *testing.T) {
	repo := newFakeLocalState()
	store := NewStore(repo)

	store.Toggle(article("https://example.com/1"))
	store.Toggle(article("https://example.com/2"))

	pending := store.PendingExtraction(10)
	if len(pending) != 2 {
		t.Fatalf("Expected 2 pending extractions, got %d", len(pending))
	}

	if err := store.SetExtracted("https://example.com/1", "<p>Full text</p>"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := store.MarkExtractionFailed("https://example.com/2"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := store.PendingExtraction(10); len(got) != 0 {
		t.Errorf("Expected no pending extractions, got %d", len(got))
	}

	for _, record := range store.List() {
		switch record.URL {
		case "https://example.com/1":
			if record.ExtractionStatus != ExtractionSuccess || record.Content != "<p>Full text</p>" {
				t.Errorf("Expected extracted content to be stored, got %+v", record)
			}
		case "https://example.com/2":
			if record.ExtractionStatus != ExtractionFailed {
				t.Errorf("Expected a failed status, got %q", record.ExtractionStatus)
			}
		}
	}

	// Extraction results survive a reload.
	reloaded := NewStore(repo)
	if got := reloaded.PendingExtraction(10); len(got) != 0 {
		t.Errorf("Expected extraction state to persist, got %d pending", len(got))
	}
}

func TestStore_FinishExtractionForRemovedBookmark(t *testing.T) {
	store := NewStore(newFakeLocalState())

	store.Toggle(article("https://example.com/1"))
	store.Toggle(article("https://example.com/1"))

	// The bookmark was toggled away while extraction ran; this must not fail.
	if err := store.SetExtracted("https://example.com/1", "content"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
