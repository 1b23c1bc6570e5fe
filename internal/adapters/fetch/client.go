// internal/adapters/fetch/client.go
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotels_xml/internal/adapters/observability"
)

var (
	ErrNotFound     = errors.New("fetch: not found")
	ErrUnauthorized = errors.New("fetch: unauthorized")
	ErrForbidden    = errors.New("fetch: forbidden")
	ErrTooLarge     = errors.New("fetch: document exceeds size limit")
)

// StatusError is a non-2xx response other than 401/403/404.
type StatusError struct {
	Status int
	Body   string // first bytes of the response, trimmed
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status %d", e.Status)
	}
	return fmt.Sprintf("bad status %d: %s", e.Status, e.Body)
}

type Options struct {
	Timeout  time.Duration
	RPS      int
	MaxBytes int64
}

// Client reads documents from http(s) URLs, file:// URLs and local paths.
// It does not retry: one failed attempt is returned to the caller as is.
type Client struct {
	hc       *http.Client
	rl       *rate.Limiter
	maxBytes int64
}

func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 8 << 20
	}
	return &Client{
		hc:       &http.Client{Timeout: o.Timeout},
		rl:       rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		maxBytes: o.MaxBytes,
	}
}

func (c *Client) Fetch(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	// single-letter schemes are Windows drive letters
	if err != nil || len(u.Scheme) <= 1 {
		return c.readFile(location)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return c.get(ctx, u)
	case "file":
		return c.readFile(u.Path)
	default:
		return nil, fmt.Errorf("fetch %s: unsupported scheme %q", location, u.Scheme)
	}
}

func (c *Client) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return c.readCapped(f)
}

// get performs a single GET with client-side rate limiting.
func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", "hotels-xml/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("fetch", u.Host, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("fetch", u.Host, resp.StatusCode, time.Since(start))
	log.Debug().Str("url", u.String()).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("fetch")

	switch resp.StatusCode {
	case http.StatusOK:
		return c.readCapped(resp.Body)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusForbidden:
		return nil, ErrForbidden
	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

func (c *Client) readCapped(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > c.maxBytes {
		return nil, ErrTooLarge
	}
	return b, nil
}
