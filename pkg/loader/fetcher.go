package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
)

// Fetcher retrieves the raw translation document for a locale. The returned
// bytes are parser input; fetchers do not interpret payload structure.
type Fetcher interface {
	Fetch(ctx context.Context, locale string) ([]byte, error)
}

// HTTPFetcher loads translation documents from a remote endpoint using the
// conventional {baseURL}/{locale}.{ext} layout.
type HTTPFetcher struct {
	baseURL string
	ext     string
	client  *http.Client
	header  http.Header
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithExtension overrides the document extension (default "json").
func WithExtension(ext string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.ext = strings.TrimPrefix(ext, ".")
	}
}

// WithHeader adds a header to every fetch request.
func WithHeader(key, value string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.header.Set(key, value)
	}
}

// NewHTTPFetcher returns a fetcher for the given base URL.
func NewHTTPFetcher(baseURL string, opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		ext:     "json",
		client:  &http.Client{Timeout: 10 * time.Second},
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads {baseURL}/{locale}.{ext}. Transport failures and non-2xx
// responses are reported as network errors carrying the request URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, locale string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s.%s", f.baseURL, url.PathEscape(locale), f.ext)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, i18nerr.NewNetworkError("fetch", u, err)
	}
	for key, values := range f.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, i18nerr.NewNetworkError("fetch", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil, i18nerr.NewNetworkError("fetch", u, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, i18nerr.NewNetworkError("fetch", u, err)
	}
	return body, nil
}

// FSFetcher loads translation documents from a filesystem, typically an
// embed.FS shipped with the binary or a directory via os.DirFS.
type FSFetcher struct {
	fsys fs.FS
	ext  string
}

// NewFSFetcher returns a fetcher reading {locale}.{ext} from fsys.
func NewFSFetcher(fsys fs.FS, ext string) *FSFetcher {
	return &FSFetcher{fsys: fsys, ext: strings.TrimPrefix(ext, ".")}
}

// Fetch reads the locale document from the filesystem. A missing file is a
// network error so the recovery policy treats local and remote sources
// uniformly.
func (f *FSFetcher) Fetch(_ context.Context, locale string) ([]byte, error) {
	name := locale + "." + f.ext
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return nil, i18nerr.NewNetworkError("read", name, err)
	}
	return data, nil
}
