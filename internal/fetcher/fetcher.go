package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDocumentSize caps a downloaded manual. The aria2 manual is well under a
// megabyte.
const maxDocumentSize = 32 << 20

// Fetcher downloads the manual over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Response is a downloaded manual.
type Response struct {
	Body        []byte
	ContentType string
}

// IsHTML reports whether the server labelled the body as HTML.
func (r *Response) IsHTML() bool {
	return strings.HasPrefix(strings.ToLower(r.ContentType), "text/html")
}

func New(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads the manual at url. A gzip-encoded body, or any body of a
// .gz URL, is decompressed. Bodies over maxDocumentSize are rejected.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html, text/markdown;q=0.9, text/plain;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading manual: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("manual at %s: unexpected status %s", url, resp.Status)
	}

	body := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" || strings.HasSuffix(url, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("manual at %s is not valid gzip: %w", url, err)
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading manual from %s: %w", url, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("manual at %s exceeds %d bytes", url, maxDocumentSize)
	}

	return &Response{Body: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
