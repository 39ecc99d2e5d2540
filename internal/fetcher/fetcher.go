// Package fetcher downloads web pages and reduces them to indexable plain text.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"webqa/internal/pkg/htmltext"
	"webqa/internal/pkg/pdfextract"
)

const defaultMaxBytes = 10 << 20

// FetchError reports why a single URL could not be turned into text.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to scrape %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// New builds a Fetcher. There are no retries; timeout bounds the whole exchange
// including the body read.
func New(timeout time.Duration, userAgent string, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// Fetch performs a GET on rawURL and returns its whitespace-normalized text.
// HTML pages lose script, style, nav, header and footer content; PDF responses are
// extracted page by page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("read body failed: %w", err)}
	}
	if int64(len(body)) > f.maxBytes {
		return "", &FetchError{URL: rawURL, Err: fmt.Errorf("body exceeds %d bytes", f.maxBytes)}
	}

	text, err := extract(resp.Header.Get("Content-Type"), body)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}
	return text, nil
}

func extract(contentType string, body []byte) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/pdf" {
		text, err := pdfextract.ExtractText(body)
		if err != nil {
			return "", err
		}
		return htmltext.CollapseSpace(text), nil
	}
	return htmltext.Extract(bytes.NewReader(body))
}
