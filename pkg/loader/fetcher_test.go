package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lazyi18n/pkg/i18nerr"
	"github.com/dmitrymomot/lazyi18n/pkg/loader"
)

func TestHTTPFetcherFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		switch r.URL.Path {
		case "/en.json":
			w.Write([]byte(enDoc)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := loader.NewHTTPFetcher(srv.URL+"/", loader.WithHeader("X-Api-Key", "secret"))

	data, err := f.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, enDoc, string(data))
}

func TestHTTPFetcherNon2xxIsNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := loader.NewHTTPFetcher(srv.URL)

	_, err := f.Fetch(context.Background(), "en")
	require.Error(t, err)

	var netErr *i18nerr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.URL, "/en.json")
	assert.Equal(t, i18nerr.CategoryNetwork, i18nerr.CategoryOf(err))
}

func TestHTTPFetcherConnectionRefused(t *testing.T) {
	t.Parallel()

	f := loader.NewHTTPFetcher("http://127.0.0.1:1")

	_, err := f.Fetch(context.Background(), "en")
	var netErr *i18nerr.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestFSFetcherFetch(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yaml": &fstest.MapFile{Data: []byte("common:\n  hello: Hello\n")},
	}
	f := loader.NewFSFetcher(fsys, "yaml")

	data, err := f.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	_, err = f.Fetch(context.Background(), "vi")
	var netErr *i18nerr.NetworkError
	require.ErrorAs(t, err, &netErr)
}
