package headlines

import (
	"time"
)

// Article is a single headline as returned by the upstream API.
// Articles are immutable once received; the URL is the identity.
type Article struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Image       string     `json:"image,omitempty"`
	Source      Source     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// envelope is the upstream response shape. A missing articles key with a
// message is how the API reports failures, including on 2xx responses.
type envelope struct {
	Articles *[]Article `json:"articles"`
	Message  string     `json:"message"`
}

// UpstreamError carries the message the headline API returned in place of
// an article list. It ends the current pagination run.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}
