package headlines

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// FirstPageSize is one short of the regular page size: the layout
	// reserves a card slot on page one. Fixed policy, not a bug.
	FirstPageSize = 9
	PageSize      = 10
)

// Client queries the upstream headline API one page at a time.
type Client struct {
	endpoint   string
	apiKey     string
	lang       string
	userAgent  string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey, lang, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		lang:       lang,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Fetch retrieves one page of headlines. publishedDate, when set, is a
// calendar date (YYYY-MM-DD) expanded to the full UTC day for the upstream
// query. An empty article list is a valid result and signals exhaustion;
// a response without an article list becomes an UpstreamError.
func (c *Client) Fetch(ctx context.Context, page int, publishedDate, category string) ([]Article, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}

	max := PageSize
	if page == 1 {
		max = FirstPageSize
	}

	params := url.Values{}
	params.Set("lang", c.lang)
	params.Set("max", strconv.Itoa(max))
	params.Set("page", strconv.Itoa(page))
	params.Set("apikey", c.apiKey)
	if publishedDate != "" {
		params.Set("from", publishedDate+"T00:00:00Z")
		params.Set("to", publishedDate+"T23:59:59Z")
	}
	if category != "" {
		params.Set("topic", category)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Non-2xx responses and failure-shaped 2xx responses are not
	// distinguished: both surface the upstream message and end the run.
	if env.Articles == nil {
		return nil, &UpstreamError{Message: cmp.Or(env.Message, "No news found.")}
	}

	slog.Debug("Headlines fetched", "page", page, "count", len(*env.Articles), "status", resp.StatusCode)

	return *env.Articles, nil
}
