package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pixelpost/pixelpost/app/bookmarks"
	"github.com/pixelpost/pixelpost/app/headlines"
)

const (
	extractionBatchSize = 10
	extractionTimeout   = 30 * time.Second
)

// ExtractContentTask fetches the full article body for bookmarks that
// still carry the truncated upstream snippet.
type ExtractContentTask struct {
	Task
	bookmarkStore    *bookmarks.Store
	httpClient       *http.Client
	contentExtractor *headlines.ContentExtractor
	userAgent        string
}

func NewExtractContentTask(bookmarkStore *bookmarks.Store, httpClient *http.Client, contentExtractor *headlines.ContentExtractor, userAgent string) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, "bookmarks"),
		bookmarkStore:    bookmarkStore,
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		userAgent:        userAgent,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pending := t.bookmarkStore.PendingExtraction(extractionBatchSize)
	if len(pending) == 0 {
		slog.Debug("No bookmarks need content extraction")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, record := range pending {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		extractCtx, cancel := context.WithTimeout(ctx, extractionTimeout)

		err := t.extractContentForBookmark(extractCtx, record)
		cancel()

		if err != nil {
			slog.Error("Failed to extract content for bookmark", "url", record.URL, "error", err)
			errorCount++

			if err := t.bookmarkStore.MarkExtractionFailed(record.URL); err != nil {
				slog.Error("Failed to update content extraction status", "url", record.URL, "error", err)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForBookmark(ctx context.Context, record bookmarks.Record) error {
	if record.URL == "" {
		return fmt.Errorf("bookmark has no URL")
	}

	data, err := t.fetchArticleContent(ctx, record.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch article content: %w", err)
	}

	extractedContent, err := t.contentExtractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	if err := t.bookmarkStore.SetExtracted(record.URL, extractedContent); err != nil {
		return fmt.Errorf("failed to store extracted content: %w", err)
	}

	slog.Debug("Content extracted successfully", "url", record.URL, "content_length", len(extractedContent))
	return nil
}

func (t *ExtractContentTask) fetchArticleContent(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
