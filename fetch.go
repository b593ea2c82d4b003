package launcher

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// Fetcher is the capability to fetch a resource by URL or path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher fetches resources with plain GET requests.
type HTTPFetcher struct {
	// Client is the HTTP client to use. Nil means http.DefaultClient, whose
	// lack of a timeout is accepted: a hung fetch leaves the previous state.
	Client *http.Client
}

// Fetch performs a GET request and returns the body. Any non-2xx response is
// reported as a *StatusError.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrNoPath
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// FileFetcher reads resources from a file system. Leading slashes are
// stripped because fs.FS paths are always relative.
type FileFetcher struct {
	FS fs.FS
}

// Fetch reads the named file. Absolute http(s) URLs are rejected.
func (f FileFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNoPath
	}
	if isAbsoluteURL(name) {
		return nil, fmt.Errorf("file fetcher cannot load %s", name)
	}
	return fs.ReadFile(f.FS, strings.TrimLeft(name, "/"))
}

// multiFetcher routes absolute URLs to HTTP and everything else to files.
type multiFetcher struct {
	http HTTPFetcher
	file FileFetcher
}

func (m multiFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if isAbsoluteURL(url) {
		return m.http.Fetch(ctx, url)
	}
	return m.file.Fetch(ctx, url)
}

// NewFetcher returns a Fetcher suited to a deployment: absolute URLs go over
// HTTP and other paths are read from fsys. fsys may be nil when every asset
// is served over HTTP.
func NewFetcher(fsys fs.FS) Fetcher {
	if fsys == nil {
		return HTTPFetcher{}
	}
	return multiFetcher{file: FileFetcher{FS: fsys}}
}
