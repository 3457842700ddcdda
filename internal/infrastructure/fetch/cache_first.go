package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"ListingDashboard/internal/ports"
)

// ErrFetch marks a failed network acquisition; the run cannot continue.
var ErrFetch = errors.New("fetch markup")

// Options configure the single outbound request.
type Options struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
}

// CacheFirst serves markup from a cache file and falls back to one HTTP GET.
type CacheFirst struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ ports.Acquirer = (*CacheFirst)(nil)

// NewCacheFirst wires a resty client without retries; timeout defaults to 15s.
func NewCacheFirst(opts Options, log *slog.Logger) *CacheFirst {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.AcceptLanguage != "" {
		client.SetHeader("Accept-Language", opts.AcceptLanguage)
	}

	return &CacheFirst{http: client, logger: log}
}

// Acquire returns the cached markup when cachePath holds content; otherwise it
// fetches target once and writes the body verbatim to cachePath.
func (c *CacheFirst) Acquire(ctx context.Context, target, cachePath string) (string, ports.MarkupSource, error) {
	cached, ok, err := readCache(cachePath)
	if err != nil {
		return "", "", err
	}
	if ok {
		c.debug("cache hit", "path", cachePath, "bytes", len(cached))
		return cached, ports.SourceCache, nil
	}

	c.debug("cache miss, fetching", "path", cachePath, "url", target)
	body, err := c.fetch(ctx, target)
	if err != nil {
		return "", "", err
	}

	if err := writeCache(cachePath, body); err != nil {
		return "", "", err
	}
	c.debug("cache written", "path", cachePath, "bytes", len(body))

	return body, ports.SourceNetwork, nil
}

func (c *CacheFirst) fetch(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("%w: no target url configured", ErrFetch)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, target, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", ErrFetch, target, resp.Status())
	}

	return string(resp.Body()), nil
}

func readCache(path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache %s: %w", path, err)
	}
	if len(raw) == 0 {
		return "", false, nil
	}
	return string(raw), true, nil
}

func writeCache(path, body string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	return nil
}

func (c *CacheFirst) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
