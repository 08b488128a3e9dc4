package feed

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/pixelpost/pixelpost/app/headlines"
)

// Fetcher retrieves one page of articles for the current filter selection.
type Fetcher interface {
	Fetch(ctx context.Context, page int, publishedDate, category string) ([]headlines.Article, error)
}

var _ Fetcher = (*headlines.Client)(nil)

// Controller drives a single pagination run: it owns the accumulated
// article list, the page counter and the exhaustion flag, and guarantees at
// most one in-flight fetch. A fetch started before a filter-driven reset is
// not aborted at the transport level; its completion is matched against an
// epoch counter and discarded when superseded.
type Controller struct {
	mu         sync.Mutex
	ctx        context.Context
	fetcher    Fetcher
	sortByDate bool
	filters    Filters
	state      State
	epoch      uint64

	// called after every processed completion, including discarded ones
	onFetchDone func()
}

func NewController(ctx context.Context, fetcher Fetcher, sortByDate bool) *Controller {
	return &Controller{
		ctx:        ctx,
		fetcher:    fetcher,
		sortByDate: sortByDate,
		state:      State{Page: 1, HasMore: true},
	}
}

// State returns a snapshot of the pagination state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.state
	snapshot.Articles = make([]headlines.Article, len(c.state.Articles))
	copy(snapshot.Articles, c.state.Articles)
	return snapshot
}

func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// ResetAndReload starts a fresh pagination run with the current filters.
func (c *Controller) ResetAndReload() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// ApplySelection replaces the date and category predicates. Any change
// resets the run; an unchanged selection is a no-op.
func (c *Controller) ApplySelection(publishedDate, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filters.PublishedDate == publishedDate && c.filters.Category == category {
		return
	}
	c.filters.PublishedDate = publishedDate
	c.filters.Category = category
	c.resetLocked()
}

// CommitSearch installs a debounce-committed search value. A changed value
// resets the run.
func (c *Controller) CommitSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filters.Search == search {
		return
	}
	c.filters.Search = search
	c.resetLocked()
}

// RequestNextPage advances the page counter and fetches it. No-op while a
// fetch is in flight or after exhaustion.
func (c *Controller) RequestNextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Loading || !c.state.HasMore {
		return
	}
	c.state.Page++
	c.startFetchLocked()
}

func (c *Controller) resetLocked() {
	c.epoch++
	c.state.Page = 1
	c.state.Articles = nil
	c.state.HasMore = true
	c.state.Err = ""
	c.startFetchLocked()
}

func (c *Controller) startFetchLocked() {
	c.state.Loading = true
	c.state.Version++

	epoch := c.epoch
	page := c.state.Page
	filters := c.filters

	go func() {
		articles, err := c.fetcher.Fetch(c.ctx, page, filters.PublishedDate, filters.Category)
		c.complete(epoch, page, articles, err)
	}()
}

func (c *Controller) complete(epoch uint64, page int, articles []headlines.Article, err error) {
	c.mu.Lock()
	c.applyLocked(epoch, page, articles, err)
	done := c.onFetchDone
	c.mu.Unlock()

	if done != nil {
		done()
	}
}

func (c *Controller) applyLocked(epoch uint64, page int, articles []headlines.Article, err error) {
	if epoch != c.epoch {
		slog.Debug("Discarding stale fetch result", "fetch_epoch", epoch, "current_epoch", c.epoch, "page", page)
		return
	}

	c.state.Loading = false
	c.state.Version++

	if err != nil {
		c.state.HasMore = false

		var upstream *headlines.UpstreamError
		if errors.As(err, &upstream) {
			c.state.Err = upstream.Message
			if page == 1 {
				c.state.Articles = nil
			}
		} else {
			slog.Error("Headline fetch failed", "page", page, "error", err)
			c.state.Err = "Failed to fetch news."
		}
		return
	}

	if c.sortByDate {
		sortPublishedDesc(articles)
	}

	if page == 1 {
		c.state.Articles = articles
	} else {
		c.state.Articles = append(c.state.Articles, articles...)
	}
	c.state.HasMore = len(articles) > 0
}

// sortPublishedDesc orders a fetched page newest-first before it is
// appended. Articles without a published date sort last.
func sortPublishedDesc(articles []headlines.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PublishedAt, articles[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}
