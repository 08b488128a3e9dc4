package bookmarks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixelpost/pixelpost/app/database"
	"github.com/pixelpost/pixelpost/app/headlines"
)

// storageKey is the fixed key the bookmark list is persisted under.
const storageKey = "bookmarks"

const (
	ExtractionPending = "pending"
	ExtractionSuccess = "success"
	ExtractionFailed  = "failed"
)

// Record is one saved article plus its content extraction bookkeeping.
type Record struct {
	headlines.Article
	ExtractionStatus string     `json:"extractionStatus,omitempty"`
	ExtractedAt      *time.Time `json:"extractedAt,omitempty"`
}

// Store is the persisted bookmark set, keyed by article URL. Every
// mutation is written through to durable storage; reads serve from memory.
type Store struct {
	mu      sync.Mutex
	repo    database.LocalStateRepository
	records []Record
}

// NewStore loads the persisted bookmark list once at startup. A read
// failure or corrupt payload falls back to an empty set, never an error.
func NewStore(repo database.LocalStateRepository) *Store {
	s := &Store{repo: repo}

	value, ok, err := repo.Get(storageKey)
	if err != nil {
		slog.Warn("Failed to read persisted bookmarks, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	if err := json.Unmarshal([]byte(value), &s.records); err != nil {
		slog.Warn("Corrupt bookmark payload, starting empty", "error", err)
		s.records = nil
	}
	return s
}

// Toggle removes the article when already bookmarked, otherwise inserts it
// at the head. Returns whether the article is now bookmarked.
func (s *Store) Toggle(article headlines.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.records {
		if record.URL == article.URL {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return false, s.saveLocked()
		}
	}

	record := Record{Article: article, ExtractionStatus: ExtractionPending}
	s.records = append([]Record{record}, s.records...)
	return true, s.saveLocked()
}

// List returns a snapshot of the bookmark set.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.URL == url {
			return true
		}
	}
	return false
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// PendingExtraction returns up to limit bookmarks awaiting content
// extraction. Failed extractions are not re-attempted.
func (s *Store) PendingExtraction(limit int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, record := range s.records {
		if record.ExtractionStatus != ExtractionPending {
			continue
		}
		out = append(out, record)
		if len(out) == limit {
			break
		}
	}
	return out
}

// SetExtracted stores readable content for a bookmarked article.
func (s *Store) SetExtracted(url, content string) error {
	return s.finishExtraction(url, content, ExtractionSuccess)
}

// MarkExtractionFailed records a terminal extraction failure.
func (s *Store) MarkExtractionFailed(url string) error {
	return s.finishExtraction(url, "", ExtractionFailed)
}

func (s *Store) finishExtraction(url, content, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].URL != url {
			continue
		}
		if content != "" {
			s.records[i].Content = content
		}
		now := time.Now().UTC()
		s.records[i].ExtractionStatus = status
		s.records[i].ExtractedAt = &now
		return s.saveLocked()
	}

	// The bookmark may have been toggled away while extraction ran.
	return nil
}

func (s *Store) saveLocked() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}
	if err := s.repo.Set(storageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist bookmarks: %w", err)
	}
	return nil
}
