package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pixelpost/pixelpost/app/headlines"
)

// Session is one mounted feed pipeline: controller, projector, search
// debouncer and scroll trigger wired together. It lives from mount
// (Open) to unmount (Close or idle pruning).
type Session struct {
	ID        string
	CreatedAt time.Time

	ctrl      *Controller
	projector *Projector
	debouncer *Debouncer
	trigger   *Trigger
	cancel    context.CancelFunc

	mu       sync.Mutex
	lastSeen time.Time
}

// Snapshot returns the current pagination state alongside the projected
// (visible) article list. Projection uses the raw search value so typing
// refines the view immediately, before the debounced commit resets the run.
func (s *Session) Snapshot() (State, []headlines.Article) {
	state := s.ctrl.State()
	filters := s.ctrl.Filters()
	visible := s.projector.Project(state, s.debouncer.Raw(), filters.PublishedDate)
	return state, visible
}

// UpdateFilters applies a new filter selection. Date and category changes
// reset the run immediately; the search value goes through the debouncer
// and commits only after the quiet period.
func (s *Session) UpdateFilters(search, publishedDate, category string) {
	s.debouncer.Update(search)
	s.ctrl.ApplySelection(publishedDate, category)
}

func (s *Session) RequestNextPage() {
	s.ctrl.RequestNextPage()
}

// ReportSentinel feeds one sentinel visibility observation to the scroll
// trigger and returns whether a next-page request was issued.
func (s *Session) ReportSentinel(ratio float64) bool {
	return s.trigger.Observe(ratio)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen)
}

func (s *Session) close() {
	s.trigger.Detach()
	s.debouncer.Stop()
	s.cancel()
}

// Manager owns the live feed sessions.
type Manager struct {
	mu        sync.Mutex
	fetcher   Fetcher
	debounce  time.Duration
	threshold float64
	sessions  map[string]*Session
}

func NewManager(fetcher Fetcher, debounce time.Duration, threshold float64) *Manager {
	return &Manager{
		fetcher:   fetcher,
		debounce:  debounce,
		threshold: threshold,
		sessions:  make(map[string]*Session),
	}
}

// Open mounts a new pipeline and triggers its initial load. sortByDate
// orders each fetched page newest-first, the profile view's behavior.
func (m *Manager) Open(sortByDate bool) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := NewController(ctx, m.fetcher, sortByDate)

	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ctrl:      ctrl,
		projector: NewProjector(),
		debouncer: NewDebouncer(m.debounce, ctrl.CommitSearch),
		trigger:   NewTrigger(ctrl, m.threshold),
		cancel:    cancel,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	ctrl.ResetAndReload()
	return session
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		session.touch()
	}
	return session, ok
}

func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		session.close()
	}
	return ok
}

// PruneIdle closes sessions untouched for longer than ttl and returns how
// many were closed.
func (m *Manager) PruneIdle(ttl time.Duration) int {
	m.mu.Lock()
	var idle []*Session
	for id, session := range m.sessions {
		if session.idleFor() > ttl {
			idle = append(idle, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range idle {
		session.close()
	}
	return len(idle)
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
