package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixelpost/pixelpost/app/database"
)

// storageKey is the fixed key the signed-in profile is persisted under.
const storageKey = "user"

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store holds the signed-in user profile, written through to durable
// storage on every change and read once at startup.
type Store struct {
	mu      sync.Mutex
	repo    database.LocalStateRepository
	profile Profile
}

// NewStore loads the persisted profile. A read failure or corrupt payload
// falls back to an empty profile.
func NewStore(repo database.LocalStateRepository) *Store {
	s := &Store{repo: repo}

	value, ok, err := repo.Get(storageKey)
	if err != nil {
		slog.Warn("Failed to read persisted profile, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	if err := json.Unmarshal([]byte(value), &s.profile); err != nil {
		slog.Warn("Corrupt profile payload, starting empty", "error", err)
		s.profile = Profile{}
	}
	return s
}

func (s *Store) Get() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Store) Set(profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = profile

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.repo.Set(storageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}
