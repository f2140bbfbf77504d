// Package httpx wraps HTTP transport for the download adapters.
//
// Client carries a fixed timeout and User-Agent and normalizes
// transport and status failures to the shared error taxonomy, so the
// adapters above it never see a raw *url.Error.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

const defaultUserAgent = "NavidromeServer-sub000"

// Client wraps HTTP operations for remote audio acquisition.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient returns a Client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
	}
}

// ProgressWriter wraps a writer to track download progress. OnUpdate,
// when set, is called after each write with (written, totalExpected).
type ProgressWriter struct {
	Writer   io.Writer
	Total    int64
	Written  int64
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
// Transport failures and non-2xx statuses surface as ErrClientPlatform.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrClientPlatform, "download", "get", url, err)
	}
	return body, nil
}

// GetString performs a GET request and returns the body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetFileSize returns the remote file size via a HEAD request. Servers
// that omit Content-Length yield an error.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, errs.Wrap(errs.ErrClientPlatform, "download", "head",
			"no Content-Length for "+url, nil)
	}
	return resp.ContentLength, nil
}

// DownloadFile streams the response body to destPath, avoiding loading
// the whole file in memory. onProgress may be nil.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return errs.Wrap(errs.ErrInvalidPath, "relocate", "create", destPath, err)
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		// A short read leaves a truncated file; drop it so a retry
		// starts clean.
		file.Close()
		os.Remove(destPath)
		return errs.Wrap(errs.ErrClientPlatform, "download", "copy", url, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrClientPlatform, "download", "request",
			"malformed source "+url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.ErrClientPlatform, "download", "request", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errs.Wrap(errs.ErrClientPlatform, "download", "request",
			fmt.Sprintf("%s: HTTP %d", url, resp.StatusCode), nil)
	}
	return resp, nil
}
