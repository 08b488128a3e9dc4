package feed

import (
	"github.com/pixelpost/pixelpost/app/headlines"
)

// Filters holds the user-chosen predicates for a pagination run. Search is
// the committed value; the raw input lives in the Debouncer until the quiet
// period elapses.
type Filters struct {
	Search        string
	PublishedDate string // calendar date, YYYY-MM-DD
	Category      string
}

// State is the observable pagination state. Version increases on every
// mutation and keys projection memoization.
type State struct {
	Articles []headlines.Article
	Page     int
	HasMore  bool
	Loading  bool
	Err      string
	Version  uint64
}
