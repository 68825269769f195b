// Package fetch downloads the image referenced by a verification request.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
)

var (
	ErrInvalidURL       = errors.New("invalid image url")
	ErrUnexpectedStatus = errors.New("unexpected status fetching image")
	ErrTooLarge         = imagemeta.ErrTooLarge
)

// Config holds the fetcher settings.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   10 * time.Second,
		MaxBytes:  10 << 20,
		UserAgent: "icaocheck/1.0",
	}
}

// Fetcher downloads images over HTTP(S).
type Fetcher struct {
	httpClient *http.Client
	config     Config
}

// New creates a Fetcher.
func New(config Config) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// ParseURL accepts only absolute http and https URLs with a host.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// Fetch downloads rawURL and extracts its metadata. Any non-2xx answer is an
// error; the body is capped at Config.MaxBytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, imagemeta.Metadata, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, imagemeta.Metadata{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, imagemeta.Metadata{}, fmt.Errorf("create request: %w", err)
	}
	if f.config.UserAgent != "" {
		req.Header.Set("User-Agent", f.config.UserAgent)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, imagemeta.Metadata{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, imagemeta.Metadata{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return imagemeta.Read(resp.Body, f.config.MaxBytes)
}
