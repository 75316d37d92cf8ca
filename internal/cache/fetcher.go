package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the conjugation site queried for verbs.
const DefaultBaseURL = "http://cooljugator.com/ru"

// ErrFetch wraps every failure to obtain a page from the network.
var ErrFetch = errors.New("fetch failed")

// Options configures a Fetcher.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Fetcher returns conjugation pages, serving them from a Store when possible.
type Fetcher struct {
	baseURL string
	http    *resty.Client
	store   *Store
	log     *slog.Logger
}

// NewFetcher creates a Fetcher backed by store.
func NewFetcher(store *Store, opts Options, logger *slog.Logger) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Fetcher{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    client,
		store:   store,
		log:     logger.With("component", "cache"),
	}
}

// Store returns the underlying store.
func (f *Fetcher) Store() *Store {
	return f.store
}

// BaseURL returns the site prefix all verb URLs share.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// URL returns the canonical page URL for verb.
func (f *Fetcher) URL(verb string) string {
	return f.baseURL + "/" + url.PathEscape(strings.ToLower(verb))
}

// Fetch returns the page text for verb. A cached page is returned without
// network access; otherwise the page is downloaded and cached. Failing to
// write the cache only logs a warning.
func (f *Fetcher) Fetch(ctx context.Context, verb string) (string, error) {
	u := f.URL(verb)
	log := f.log.With("url", u)

	text, ok, err := f.store.Get(u)
	if err != nil {
		log.WarnContext(ctx, "ignoring unreadable cache entry", "err", err)
	}
	if ok {
		log.DebugContext(ctx, "cache hit")
		return text, nil
	}

	log.DebugContext(ctx, "fetching page")
	res, err := f.http.R().
		SetContext(ctx).
		Get(u)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetch, u, err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("%w: %s: unexpected status %d", ErrFetch, u, res.StatusCode())
	}

	body := res.Body()
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: %s: response is not valid UTF-8", ErrFetch, u)
	}
	text = string(body)

	if err := f.store.Put(u, text); err != nil {
		log.WarnContext(ctx, "could not cache page", "path", f.store.Path(u), "err", err)
	}

	return text, nil
}
