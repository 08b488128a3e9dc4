package feed

import (
	"strings"
	"sync"

	"github.com/pixelpost/pixelpost/app/headlines"
)

// Project derives the visible article list from the accumulated results.
// The date predicate compares calendar days; an article without a published
// timestamp never matches a date filter. The search predicate is a trimmed,
// case-insensitive substring match over title, description and content.
// Category is not re-applied here: the upstream API partitions by category
// server-side, so the fetch query already covers it.
func Project(articles []headlines.Article, search, publishedDate string) []headlines.Article {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]headlines.Article, 0, len(articles))
	for _, article := range articles {
		if publishedDate != "" {
			if article.PublishedAt == nil {
				continue
			}
			if article.PublishedAt.UTC().Format("2006-01-02") != publishedDate {
				continue
			}
		}
		if search != "" && !matchesSearch(article, search) {
			continue
		}
		out = append(out, article)
	}
	return out
}

func matchesSearch(article headlines.Article, search string) bool {
	return strings.Contains(strings.ToLower(article.Title), search) ||
		strings.Contains(strings.ToLower(article.Description), search) ||
		strings.Contains(strings.ToLower(article.Content), search)
}

type projectionKey struct {
	version       uint64
	search        string
	publishedDate string
}

// Projector memoizes Project on the identity of its inputs: the state
// version plus the two client-side predicates.
type Projector struct {
	mu     sync.Mutex
	key    projectionKey
	cached []headlines.Article
	valid  bool
}

func NewProjector() *Projector {
	return &Projector{}
}

func (p *Projector) Project(state State, search, publishedDate string) []headlines.Article {
	key := projectionKey{version: state.Version, search: search, publishedDate: publishedDate}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid && p.key == key {
		return p.cached
	}

	p.cached = Project(state.Articles, search, publishedDate)
	p.key = key
	p.valid = true
	return p.cached
}
