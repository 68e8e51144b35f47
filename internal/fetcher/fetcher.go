// Package fetcher retrieves facility pages. Retrieval is the one
// externally blocking step; it runs before the pipeline and a failed
// fetch never aborts a batch, it only marks the page's record.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// DefaultUserAgent identifies the scraper politely.
const DefaultUserAgent = "schwimmzeiten/1.0 (+https://github.com/klabast/schwimmzeiten)"

// Config holds fetcher settings.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: DefaultUserAgent,
		Timeout:   10 * time.Second,
	}
}

// Result is one fetched page.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}

// Static fetches server-rendered pages using Colly.
type Static struct {
	config Config
}

// NewStatic creates a static fetcher.
func NewStatic(cfg Config) *Static {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Static{config: cfg}
}

// Fetch retrieves one page. The context bounds the whole request.
func (f *Static) Fetch(ctx context.Context, targetURL string) (Result, error) {
	result := Result{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	// A fresh collector per request keeps fetches independent.
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
			fetchErr = ctx.Err()
		default:
		}
	})

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.HTML = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}

	if fetchErr != nil {
		return result, fetchErr
	}

	return result, nil
}
